package ports

import (
	"context"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
)

// WorkOrderRepository defines the persistence contract for work order aggregates.
// Work orders are never deleted.
type WorkOrderRepository interface {
	// Add persists a new work order.
	Add(ctx context.Context, aggregate *workorder.WorkOrder) error

	// Update persists aggregate if the stored version still equals baseVersion.
	// Returns errs.VersionConflictError when it does not and
	// errs.ObjectNotFoundError when the work order does not exist.
	Update(ctx context.Context, aggregate *workorder.WorkOrder, baseVersion int) error

	// Get returns the work order or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)

	// List returns every work order, newest first.
	List(ctx context.Context) ([]*workorder.WorkOrder, error)
}
