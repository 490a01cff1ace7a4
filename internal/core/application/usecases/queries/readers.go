// Package queries contains the read side: work orders with their allowed
// transitions, stock projections, the audit trail and ledger reconciliation.
// Queries never change state and run without a unit of work.
package queries

import (
	"context"
	"time"

	"workorders/internal/core/application/auditlog"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
)

// WorkOrderReader loads stored work orders.
type WorkOrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)
	List(ctx context.Context) ([]*workorder.WorkOrder, error)
}

// InventoryReader is the read side of the inventory ledger.
type InventoryReader interface {
	ListInventory(ctx context.Context, branchID string) ([]inventory.StockView, error)
	ListBranches(ctx context.Context) ([]inventory.Branch, error)
	ListProducts(ctx context.Context) ([]inventory.Product, error)
	Reconcile(ctx context.Context) (inventory.ReconciliationReport, error)
}

// AuditReader is the query side of the audit recorder.
type AuditReader interface {
	List(ctx context.Context, filter audit.Filter) (auditlog.Page, error)
	GetByID(ctx context.Context, id string) (*audit.Event, error)
	GetHistory(ctx context.Context, entityType, entityID string) ([]*audit.Event, int, error)
	GetByUser(ctx context.Context, actorUserID string, limit int) ([]*audit.Event, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*audit.Event, error)
	Export(ctx context.Context, exporter ports.AuditExporter, filter audit.Filter) ([]byte, error)
}
