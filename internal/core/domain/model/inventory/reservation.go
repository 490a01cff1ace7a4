package inventory

import (
	"errors"
	"slices"
	"strings"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrReservationIsNotConstructed = errors.New("Reservation must be created via NewReservation")

// Reservation records the stock held for one work order. It is the only
// record of what Release must give back, so its items are stored exactly as
// requested.
type Reservation struct {
	workOrderID string
	branchID    string
	items       []kernel.LineItem
	reservedAt  time.Time

	guard guard.ConstructorGuard
}

// NewReservation requires non-empty ids and at least one item.
func NewReservation(workOrderID, branchID string, items []kernel.LineItem, reservedAt time.Time) (*Reservation, error) {
	if err := ValidateRequest(workOrderID, branchID, items); err != nil {
		return nil, err
	}
	return &Reservation{
		workOrderID: strings.TrimSpace(workOrderID),
		branchID:    strings.TrimSpace(branchID),
		items:       slices.Clone(items),
		reservedAt:  reservedAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// ValidateRequest checks the preconditions shared by reserve requests and
// stored reservations. Every violation is joined into the result.
func ValidateRequest(workOrderID, branchID string, items []kernel.LineItem) error {
	var errList []error
	if strings.TrimSpace(workOrderID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("workOrderId"))
	}
	if strings.TrimSpace(branchID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("branchId"))
	}
	if len(items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("items"))
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("items", err))
		}
	}
	return errors.Join(errList...)
}

func (r *Reservation) Validate() error {
	if r == nil {
		return ErrReservationIsNotConstructed
	}
	return r.guard.Validate(ErrReservationIsNotConstructed)
}

func (r *Reservation) WorkOrderID() string {
	return r.workOrderID
}

func (r *Reservation) BranchID() string {
	return r.branchID
}

func (r *Reservation) Items() []kernel.LineItem {
	return slices.Clone(r.items)
}

func (r *Reservation) ReservedAt() time.Time {
	return r.reservedAt
}

// Quantities sums item quantities per product.
func (r *Reservation) Quantities() map[string]int {
	return SumByProduct(r.items)
}

// StockKeys returns the keys of the rows this reservation touches, in
// first-appearance order of their products.
func (r *Reservation) StockKeys() []StockKey {
	ids := kernel.ProductIDs(r.items)
	keys := make([]StockKey, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, StockKey{BranchID: r.branchID, ProductID: id})
	}
	return keys
}

// SumByProduct aggregates quantities of repeated products.
func SumByProduct(items []kernel.LineItem) map[string]int {
	out := make(map[string]int, len(items))
	for _, item := range items {
		out[item.ProductID()] += item.Qty()
	}
	return out
}
