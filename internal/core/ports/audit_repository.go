package ports

import (
	"context"

	"workorders/internal/core/domain/model/audit"
)

// AuditRepository is the append-only store of audit events.
type AuditRepository interface {
	// Append stores one event. Events are never updated.
	Append(ctx context.Context, event *audit.Event) error

	// Get returns one event or errs.ObjectNotFoundError.
	Get(ctx context.Context, id string) (*audit.Event, error)

	// Find returns one page of the events matching filter, newest first, and
	// the number of matching events across all pages. A zero Limit means no limit.
	Find(ctx context.Context, filter audit.Filter) ([]*audit.Event, int, error)

	// Count returns the number of stored events.
	Count(ctx context.Context) (int, error)
}

// AuditExporter writes events to an external document format.
type AuditExporter interface {
	ContentType() string
	FileExtension() string
	Export(ctx context.Context, events []*audit.Event) ([]byte, error)
}
