// Package commands contains the operations that change work orders and stock.
// Every command follows the same shape: a constructed, validated command value
// and a handler that runs it inside a unit of work.
package commands

import (
	"context"

	"workorders/internal/core/application/ledger"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/ports"
)

// Unit of work views used by the handlers.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// WorkOrderRepoFactory provides the work order repository of a transaction.
	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	// AuditRepoFactory provides the audit repository of a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// WorkOrderUoW commits a work order change together with its audit event.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.WorkOrderRepository().Update(ctx, wo, baseVersion)
	//   _, err = recorder.WithRepository(uow.AuditRepository()).Record(ctx, entry)
	//
	//   err = uow.Commit(ctx)
	WorkOrderUoW interface {
		TxManager
		WorkOrderRepoFactory
		AuditRepoFactory
	}

	// WorkOrderUoWFactory creates work order units of work.
	WorkOrderUoWFactory interface {
		Create() WorkOrderUoW
	}

	// AuditUoW appends audit events for changes committed elsewhere.
	AuditUoW interface {
		TxManager
		AuditRepoFactory
	}

	// AuditUoWFactory creates audit units of work.
	AuditUoWFactory interface {
		Create() AuditUoW
	}
)

// InventoryLedger is the part of the ledger the orchestrator and the
// inventory commands call.
type InventoryLedger interface {
	Reserve(ctx context.Context, workOrderID, branchID string, items []kernel.LineItem) (*inventory.Reservation, error)
	Release(ctx context.Context, workOrderID string) (*inventory.Reservation, error)
}

// CatalogBootstrapper seeds the ledger.
type CatalogBootstrapper interface {
	Bootstrap(ctx context.Context, catalog inventory.Catalog) (ledger.BootstrapResult, error)
}

// FuncWorkOrderUoWFactory adapts a function to WorkOrderUoWFactory.
type FuncWorkOrderUoWFactory func() WorkOrderUoW

func (f FuncWorkOrderUoWFactory) Create() WorkOrderUoW {
	return f()
}

// FuncAuditUoWFactory adapts a function to AuditUoWFactory.
type FuncAuditUoWFactory func() AuditUoW

func (f FuncAuditUoWFactory) Create() AuditUoW {
	return f()
}
