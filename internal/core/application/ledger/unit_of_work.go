package ledger

import (
	"context"

	"workorders/internal/core/ports"
)

type (
	// UoW is the transaction view the ledger needs: stock, reservations and catalog.
	UoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error

		StockRepository() ports.StockRepository
		ReservationRepository() ports.ReservationRepository
		CatalogRepository() ports.CatalogRepository
	}

	// UoWFactory creates a ledger unit of work per operation.
	UoWFactory interface {
		Create() UoW
	}
)

// FuncUoWFactory adapts a function to UoWFactory.
type FuncUoWFactory func() UoW

func (f FuncUoWFactory) Create() UoW {
	return f()
}
