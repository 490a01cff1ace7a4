package services

import (
	"time"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

// ReservationPlanner applies a reservation request to a set of stock rows
// with all-or-nothing semantics.
//
// Key responsibilities:
//   - Validating the request before any row is looked at
//   - Checking every requested product before mutating any row
//   - Naming every short product, not only the first one found
//
// The planner does no locking and no I/O. Callers load the rows under the
// locks of their keys and persist them afterwards.
//
// Example usage:
//
//	planner := services.NewReservationPlanner()
//	rows, _ := stockRepo.GetMany(ctx, branchID, kernel.ProductIDs(items))
//	reservation, err := planner.Reserve(workOrderID, branchID, items, rows, time.Now())
//	if errors.Is(err, errs.ErrInsufficientStock) {
//	    // nothing in rows was changed
//	}
type ReservationPlanner struct{}

func NewReservationPlanner() ReservationPlanner {
	return ReservationPlanner{}
}

// Reserve checks, then commits, a reservation against rows.
//
// Parameters:
//   - workOrderID, branchID: required
//   - items: at least one line item; repeated products are summed
//   - rows: the branch rows keyed by product id; absent products count as short
//   - now: stamped on every mutated row and on the reservation
//
// Returns:
//   - the reservation on success, with every affected row mutated
//   - a validation error for a malformed request
//   - *errs.InsufficientStockError listing short products in request order,
//     with no row mutated
func (p ReservationPlanner) Reserve(
	workOrderID, branchID string,
	items []kernel.LineItem,
	rows map[string]*inventory.StockRow,
	now time.Time,
) (*inventory.Reservation, error) {
	reservation, err := inventory.NewReservation(workOrderID, branchID, items, now)
	if err != nil {
		return nil, err
	}

	wanted := reservation.Quantities()
	productIDs := kernel.ProductIDs(items)

	var short []string
	for _, productID := range productIDs {
		row, ok := rows[productID]
		if !ok || row.Validate() != nil || row.BranchID() != reservation.BranchID() || !row.CanCover(wanted[productID]) {
			short = append(short, productID)
		}
	}
	if len(short) > 0 {
		return nil, errs.NewInsufficientStockError(reservation.BranchID(), short)
	}

	for _, productID := range productIDs {
		if err := rows[productID].Reserve(wanted[productID], now); err != nil {
			return nil, err
		}
	}

	return reservation, nil
}

// Release gives back every unit held by reservation.
//
// Rows missing from rows are skipped and returned, so a row deleted out of
// band does not block the release of the others.
func (p ReservationPlanner) Release(
	reservation *inventory.Reservation,
	rows map[string]*inventory.StockRow,
	now time.Time,
) (missing []string, err error) {
	if err := reservation.Validate(); err != nil {
		return nil, err
	}

	quantities := reservation.Quantities()
	for _, productID := range kernel.ProductIDs(reservation.Items()) {
		row, ok := rows[productID]
		if !ok {
			missing = append(missing, productID)
			continue
		}
		if err := row.Release(quantities[productID], now); err != nil {
			return nil, err
		}
	}

	return missing, nil
}
