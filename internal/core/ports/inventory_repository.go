package ports

import (
	"context"

	"workorders/internal/core/domain/model/inventory"
)

// StockRepository stores the counters of the inventory ledger.
type StockRepository interface {
	// Add inserts rows that do not exist yet and leaves existing rows untouched.
	// It returns the number of inserted rows.
	Add(ctx context.Context, rows ...*inventory.StockRow) (int, error)

	// GetMany returns the rows of branchID for productIDs keyed by product id.
	// Unknown products are absent from the result. Inside a transaction the
	// rows stay locked until it ends.
	GetMany(ctx context.Context, branchID string, productIDs []string) (map[string]*inventory.StockRow, error)

	// Save writes the counters of existing rows.
	Save(ctx context.Context, rows ...*inventory.StockRow) error

	// ListByBranch returns the rows of one branch ordered by product id.
	// An unknown branch yields an empty slice.
	ListByBranch(ctx context.Context, branchID string) ([]*inventory.StockRow, error)

	// ListAll returns every row ordered by branch and product.
	ListAll(ctx context.Context) ([]*inventory.StockRow, error)
}

// ReservationRepository stores the one-per-work-order reservation index.
type ReservationRepository interface {
	// Get returns the reservation of workOrderID or errs.ReservationNotFoundError.
	Get(ctx context.Context, workOrderID string) (*inventory.Reservation, error)

	// Add stores a reservation. A second reservation for the same work order
	// fails with errs.ReservationConflictError.
	Add(ctx context.Context, reservation *inventory.Reservation) error

	// Delete removes the reservation of workOrderID or returns
	// errs.ReservationNotFoundError.
	Delete(ctx context.Context, workOrderID string) error

	// List returns every live reservation ordered by work order id.
	List(ctx context.Context) ([]*inventory.Reservation, error)
}

// CatalogRepository stores branches and products.
type CatalogRepository interface {
	// AddBranches and AddProducts insert missing entries and return how many were new.
	AddBranches(ctx context.Context, branches ...inventory.Branch) (int, error)
	AddProducts(ctx context.Context, products ...inventory.Product) (int, error)

	ListBranches(ctx context.Context) ([]inventory.Branch, error)
	ListProducts(ctx context.Context) ([]inventory.Product, error)
}
