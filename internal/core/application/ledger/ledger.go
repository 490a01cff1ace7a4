package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/services"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/keylock"
)

// Ledger owns the stock counters and the reservation index.
//
// Every reservation attempt locks the reservation key of its work order and
// the keys of every stock row it touches, in sorted order, before checking
// availability. Two reservations against the same rows therefore never
// interleave between check and commit. Storage adapters add row locks of
// their own inside the transaction.
//
// Ledger is safe for concurrent use.
type Ledger struct {
	uowFactory UoWFactory
	locks      *keylock.Locker
	snapshot   sync.RWMutex // mutations hold it shared, Reconcile exclusively
	planner    services.ReservationPlanner
	now        func() time.Time
}

type Option func(*Ledger)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithLocker shares a locker between ledgers over the same store.
func WithLocker(locks *keylock.Locker) Option {
	return func(l *Ledger) {
		l.locks = locks
	}
}

func New(uowFactory UoWFactory, opts ...Option) *Ledger {
	l := &Ledger{
		uowFactory: uowFactory,
		locks:      keylock.New(),
		planner:    services.NewReservationPlanner(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func reservationKey(workOrderID string) string {
	return "reservation:" + workOrderID
}

func stockKey(branchID, productID string) string {
	return "stock:" + inventory.StockKey{BranchID: branchID, ProductID: productID}.String()
}

// Reserve holds stock of branchID for the items of one work order.
//
// Returns:
//   - the stored reservation
//   - a validation error for an empty id, branch or item list
//   - *errs.ReservationConflictError if the work order already holds one
//   - *errs.InsufficientStockError naming every short product; no row changes
func (l *Ledger) Reserve(ctx context.Context, workOrderID, branchID string, items []kernel.LineItem) (*inventory.Reservation, error) {
	workOrderID, branchID = strings.TrimSpace(workOrderID), strings.TrimSpace(branchID)
	if err := inventory.ValidateRequest(workOrderID, branchID, items); err != nil {
		return nil, err
	}

	productIDs := kernel.ProductIDs(items)
	keys := make([]string, 0, len(productIDs)+1)
	keys = append(keys, reservationKey(workOrderID))
	for _, productID := range productIDs {
		keys = append(keys, stockKey(branchID, productID))
	}
	l.snapshot.RLock()
	defer l.snapshot.RUnlock()
	unlock := l.locks.Lock(keys...)
	defer unlock()

	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	reservationRepo := uow.ReservationRepository()
	_, err := reservationRepo.Get(ctx, workOrderID)
	switch {
	case err == nil:
		return nil, errs.NewReservationConflictError(workOrderID)
	case !errors.Is(err, errs.ErrReservationNotFound):
		return nil, err
	}

	stockRepo := uow.StockRepository()
	rows, err := stockRepo.GetMany(ctx, branchID, productIDs)
	if err != nil {
		return nil, err
	}

	reservation, err := l.planner.Reserve(workOrderID, branchID, items, rows, l.now())
	if err != nil {
		return nil, err
	}

	touched := make([]*inventory.StockRow, 0, len(productIDs))
	for _, productID := range productIDs {
		touched = append(touched, rows[productID])
	}
	if err = stockRepo.Save(ctx, touched...); err != nil {
		return nil, err
	}
	if err = reservationRepo.Add(ctx, reservation); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return reservation, nil
}

// Release gives back the stock held for workOrderID and deletes the reservation.
//
// Rows that no longer exist are skipped. Returns the removed reservation or
// *errs.ReservationNotFoundError.
func (l *Ledger) Release(ctx context.Context, workOrderID string) (*inventory.Reservation, error) {
	workOrderID = strings.TrimSpace(workOrderID)
	if workOrderID == "" {
		return nil, errs.NewValueIsRequiredError("workOrderId")
	}

	l.snapshot.RLock()
	defer l.snapshot.RUnlock()
	unlockReservation := l.locks.Lock(reservationKey(workOrderID))
	defer unlockReservation()

	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	reservationRepo := uow.ReservationRepository()
	reservation, err := reservationRepo.Get(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	productIDs := kernel.ProductIDs(reservation.Items())
	keys := make([]string, 0, len(productIDs))
	for _, productID := range productIDs {
		keys = append(keys, stockKey(reservation.BranchID(), productID))
	}
	unlockStock := l.locks.Lock(keys...)
	defer unlockStock()

	stockRepo := uow.StockRepository()
	rows, err := stockRepo.GetMany(ctx, reservation.BranchID(), productIDs)
	if err != nil {
		return nil, err
	}

	if _, err = l.planner.Release(reservation, rows, l.now()); err != nil {
		return nil, err
	}

	touched := make([]*inventory.StockRow, 0, len(rows))
	for _, productID := range productIDs {
		if row, ok := rows[productID]; ok {
			touched = append(touched, row)
		}
	}
	if len(touched) > 0 {
		if err = stockRepo.Save(ctx, touched...); err != nil {
			return nil, err
		}
	}
	if err = reservationRepo.Delete(ctx, workOrderID); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return reservation, nil
}

// ListInventory returns the stock of one branch with product names.
// An unknown branch yields an empty slice.
func (l *Ledger) ListInventory(ctx context.Context, branchID string) ([]inventory.StockView, error) {
	uow := l.uowFactory.Create()

	rows, err := uow.StockRepository().ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []inventory.StockView{}, nil
	}

	products, err := uow.CatalogRepository().ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	views := make([]inventory.StockView, 0, len(rows))
	for _, row := range rows {
		views = append(views, inventory.NewStockView(row, names))
	}
	return views, nil
}

func (l *Ledger) ListBranches(ctx context.Context) ([]inventory.Branch, error) {
	return l.uowFactory.Create().CatalogRepository().ListBranches(ctx)
}

func (l *Ledger) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	return l.uowFactory.Create().CatalogRepository().ListProducts(ctx)
}

// BootstrapResult counts the entries a Bootstrap call inserted.
type BootstrapResult struct {
	Branches int
	Products int
	Rows     int
}

// Bootstrap seeds branches, products and stock rows from catalog. Existing
// entries are kept as they are, so calling it again is harmless.
func (l *Ledger) Bootstrap(ctx context.Context, catalog inventory.Catalog) (BootstrapResult, error) {
	if err := catalog.Validate(); err != nil {
		return BootstrapResult{}, err
	}

	now := l.now()
	rows := make([]*inventory.StockRow, 0, len(catalog.Stock))
	for _, level := range catalog.Stock {
		row, err := inventory.NewStockRow(level.BranchID, level.ProductID, level.QtyAvailable, now)
		if err != nil {
			return BootstrapResult{}, err
		}
		rows = append(rows, row)
	}

	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BootstrapResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		result BootstrapResult
		err    error
	)
	catalogRepo := uow.CatalogRepository()
	if result.Branches, err = catalogRepo.AddBranches(ctx, catalog.Branches...); err != nil {
		return BootstrapResult{}, err
	}
	if result.Products, err = catalogRepo.AddProducts(ctx, catalog.Products...); err != nil {
		return BootstrapResult{}, err
	}
	if result.Rows, err = uow.StockRepository().Add(ctx, rows...); err != nil {
		return BootstrapResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BootstrapResult{}, err
	}
	return result, nil
}

// Reconcile checks the conservation invariants over the whole ledger.
// Reservations and releases of this ledger wait while it reads.
func (l *Ledger) Reconcile(ctx context.Context) (inventory.ReconciliationReport, error) {
	l.snapshot.Lock()
	defer l.snapshot.Unlock()

	uow := l.uowFactory.Create()

	rows, err := uow.StockRepository().ListAll(ctx)
	if err != nil {
		return inventory.ReconciliationReport{}, err
	}
	reservations, err := uow.ReservationRepository().List(ctx)
	if err != nil {
		return inventory.ReconciliationReport{}, err
	}
	return inventory.Reconcile(rows, reservations), nil
}
