package auditlog

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"github.com/oklog/ulid/v2"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
	DefaultUserLimit = 100
	MaxUserLimit     = 1000
)

// Entry is the caller supplied part of an audit event.
type Entry struct {
	ActorUserID   string
	Action        audit.Action
	EntityType    string
	EntityID      string
	Before        audit.Snapshot
	After         audit.Snapshot
	CorrelationID string
}

// Page is one page of events plus the total across pages.
type Page struct {
	Items  []*audit.Event
	Total  int
	Limit  int
	Offset int
}

func (p Page) HasMore() bool {
	return p.Offset+len(p.Items) < p.Total
}

// Recorder appends events to the audit trail and answers queries over it.
//
// Record accepts any input as given; only id generation and storage
// failures are returned.
// Event ids are ULIDs, so they sort by creation time.
type Recorder struct {
	repo ports.AuditRepository
	now  func() time.Time
	ids  *idSource
}

type Option func(*Recorder)

func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// WithEntropy sets the randomness behind event ids.
func WithEntropy(r io.Reader) Option {
	return func(rec *Recorder) {
		rec.ids = newIDSource(r)
	}
}

func NewRecorder(repo ports.AuditRepository, opts ...Option) *Recorder {
	r := &Recorder{
		repo: repo,
		now:  time.Now,
		ids:  newIDSource(rand.Reader),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithRepository returns a recorder writing to repo, typically the audit
// repository of an open unit of work, so the event commits with the change
// it describes.
func (r *Recorder) WithRepository(repo ports.AuditRepository) *Recorder {
	cp := *r
	cp.repo = repo
	return &cp
}

// Record appends one event built from entry.
func (r *Recorder) Record(ctx context.Context, entry Entry) (*audit.Event, error) {
	at := r.now().UTC()
	id, err := r.ids.next(at)
	if err != nil {
		return nil, fmt.Errorf("generate audit id: %w", err)
	}
	event := &audit.Event{
		ID:            id,
		At:            at,
		ActorUserID:   strings.TrimSpace(entry.ActorUserID),
		Action:        entry.Action,
		EntityType:    entry.EntityType,
		EntityID:      entry.EntityID,
		Before:        entry.Before.Clone(),
		After:         entry.After.Clone(),
		CorrelationID: entry.CorrelationID,
	}
	if err := r.repo.Append(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List returns one page of events matching filter, newest first.
// Limit defaults to 50 and is clamped to 1..100; a negative offset is 0.
func (r *Recorder) List(ctx context.Context, filter audit.Filter) (Page, error) {
	filter.Limit = clampLimit(filter.Limit, DefaultListLimit, MaxListLimit)
	filter.Offset = max(filter.Offset, 0)

	items, total, err := r.repo.Find(ctx, filter)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// GetByID returns one event or errs.ObjectNotFoundError.
func (r *Recorder) GetByID(ctx context.Context, id string) (*audit.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errs.NewValueIsRequiredError("auditId")
	}
	return r.repo.Get(ctx, id)
}

// GetHistory returns every event of one entity, newest first.
func (r *Recorder) GetHistory(ctx context.Context, entityType, entityID string) ([]*audit.Event, int, error) {
	return r.repo.Find(ctx, audit.Filter{EntityType: entityType, EntityID: entityID})
}

// GetByUser returns the latest events of one actor. Limit defaults to 100
// and is clamped to 1..1000.
func (r *Recorder) GetByUser(ctx context.Context, actorUserID string, limit int) ([]*audit.Event, error) {
	items, _, err := r.repo.Find(ctx, audit.Filter{
		ActorUserID: actorUserID,
		Limit:       clampLimit(limit, DefaultUserLimit, MaxUserLimit),
	})
	return items, err
}

// GetByDateRange returns the events with from <= At <= to, newest first.
func (r *Recorder) GetByDateRange(ctx context.Context, from, to time.Time) ([]*audit.Event, error) {
	if to.Before(from) {
		return nil, errs.NewValueIsInvalidError("to is before from")
	}
	items, _, err := r.repo.Find(ctx, audit.Filter{From: &from, To: &to})
	return items, err
}

func (r *Recorder) Count(ctx context.Context) (int, error) {
	return r.repo.Count(ctx)
}

// Export renders every event matching filter, ignoring its paging.
func (r *Recorder) Export(ctx context.Context, exporter ports.AuditExporter, filter audit.Filter) ([]byte, error) {
	filter.Limit, filter.Offset = 0, 0
	items, _, err := r.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return exporter.Export(ctx, items)
}

// clampLimit maps a missing limit to def and bounds the rest to 1..hi.
func clampLimit(limit, def, hi int) int {
	if limit == 0 {
		return def
	}
	return min(max(limit, 1), hi)
}

// idSource hands out monotonic ULIDs; ulid.MonotonicEntropy is not safe for
// concurrent use on its own.
type idSource struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newIDSource(r io.Reader) *idSource {
	return &idSource{entropy: ulid.Monotonic(r, 0)}
}

func (s *idSource) next(at time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(at), s.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
