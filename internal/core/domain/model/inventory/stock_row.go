package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrStockRowIsNotConstructed = errors.New("StockRow must be created via NewStockRow or RestoreStockRow")

// StockKey identifies a stock row.
type StockKey struct {
	BranchID  string `json:"branchId"`
	ProductID string `json:"productId"`
}

func (k StockKey) String() string {
	return k.BranchID + "/" + k.ProductID
}

// StockRow holds the counters of one product in one branch.
//
// Invariants:
//   - QtyAvailable and QtyReserved are never negative
//   - QtyAvailable + QtyReserved is unchanged by a Reserve/Release pair
type StockRow struct {
	key          StockKey
	qtyAvailable int
	qtyReserved  int
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// NewStockRow creates a row with nothing reserved.
func NewStockRow(branchID, productID string, qtyAvailable int, now time.Time) (*StockRow, error) {
	var errList []error
	if qtyAvailable < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("qtyAvailable", qtyAvailable, 0, "unbounded"))
	}
	row, err := RestoreStockRow(branchID, productID, qtyAvailable, 0, now)
	if err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return row, nil
}

// RestoreStockRow rebuilds a row from storage. Counters are taken as stored,
// negative ones included, so Reconcile can report them.
func RestoreStockRow(branchID, productID string, qtyAvailable, qtyReserved int, updatedAt time.Time) (*StockRow, error) {
	branchID = strings.TrimSpace(branchID)
	productID = strings.TrimSpace(productID)

	var errList []error
	if branchID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("branchId"))
	}
	if productID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("productId"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &StockRow{
		key:          StockKey{BranchID: branchID, ProductID: productID},
		qtyAvailable: qtyAvailable,
		qtyReserved:  qtyReserved,
		updatedAt:    updatedAt.UTC(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (r *StockRow) Validate() error {
	if r == nil {
		return ErrStockRowIsNotConstructed
	}
	return r.guard.Validate(ErrStockRowIsNotConstructed)
}

func (r *StockRow) Key() StockKey {
	return r.key
}

func (r *StockRow) BranchID() string {
	return r.key.BranchID
}

func (r *StockRow) ProductID() string {
	return r.key.ProductID
}

func (r *StockRow) QtyAvailable() int {
	return r.qtyAvailable
}

func (r *StockRow) QtyReserved() int {
	return r.qtyReserved
}

func (r *StockRow) UpdatedAt() time.Time {
	return r.updatedAt
}

// CanCover reports whether qty units are available.
func (r *StockRow) CanCover(qty int) bool {
	return qty > 0 && r.qtyAvailable >= qty
}

// Reserve moves qty units from available to reserved.
func (r *StockRow) Reserve(qty int, at time.Time) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, "unbounded")
	}
	if r.qtyAvailable < qty {
		return errs.NewInsufficientStockError(r.key.BranchID, []string{r.key.ProductID})
	}
	r.qtyAvailable -= qty
	r.qtyReserved += qty
	r.updatedAt = at.UTC()
	return nil
}

// Release moves qty units from reserved back to available.
func (r *StockRow) Release(qty int, at time.Time) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, "unbounded")
	}
	if r.qtyReserved < qty {
		return errs.NewValueIsOutOfRangeErrorWithCause("qty", qty, 1, r.qtyReserved,
			fmt.Errorf("row %s has only %d reserved", r.key, r.qtyReserved))
	}
	r.qtyReserved -= qty
	r.qtyAvailable += qty
	r.updatedAt = at.UTC()
	return nil
}

// Clone returns an independent copy.
func (r *StockRow) Clone() *StockRow {
	cp := *r
	return &cp
}
