package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary over every repository.
//
// Writes made between Begin and Commit become visible together or not at all.
// Repositories used without Begin write immediately.
type UnitOfWork interface {
	// Begin starts a transaction.
	Begin(ctx context.Context) error

	// Commit makes every write since Begin visible.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback discards every write since Begin.
	// Returns an error if no transaction is active.
	Rollback(ctx context.Context) error

	// WorkOrderRepository returns a repository bound to the current transaction.
	WorkOrderRepository() WorkOrderRepository

	// StockRepository returns a repository bound to the current transaction.
	StockRepository() StockRepository

	// ReservationRepository returns a repository bound to the current transaction.
	ReservationRepository() ReservationRepository

	// CatalogRepository returns a repository bound to the current transaction.
	CatalogRepository() CatalogRepository

	// AuditRepository returns a repository bound to the current transaction.
	AuditRepository() AuditRepository
}
