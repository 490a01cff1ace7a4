package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/pkg/errs"
)

type StockRepository struct {
	uow *UnitOfWork
}

// Add inserts rows whose key is not stored yet and reports how many.
func (r *StockRepository) Add(_ context.Context, rows ...*inventory.StockRow) (int, error) {
	fresh := make([]*inventory.StockRow, 0, len(rows))
	r.uow.store.read(func(st *state) {
		seen := make(map[inventory.StockKey]struct{}, len(rows))
		for _, row := range rows {
			if _, ok := st.stock[row.Key()]; ok {
				continue
			}
			if _, ok := seen[row.Key()]; ok {
				continue
			}
			seen[row.Key()] = struct{}{}
			fresh = append(fresh, row.Clone())
		}
	})
	if len(fresh) == 0 {
		return 0, nil
	}

	err := r.uow.write(func(st *state) (func(), error) {
		var added []inventory.StockKey
		for _, row := range fresh {
			if _, ok := st.stock[row.Key()]; ok {
				continue
			}
			st.stock[row.Key()] = row
			added = append(added, row.Key())
		}
		return func() {
			for _, key := range added {
				delete(st.stock, key)
			}
		}, nil
	})
	if err != nil {
		return 0, err
	}
	return len(fresh), nil
}

func (r *StockRepository) GetMany(_ context.Context, branchID string, productIDs []string) (map[string]*inventory.StockRow, error) {
	out := make(map[string]*inventory.StockRow, len(productIDs))
	r.uow.store.read(func(st *state) {
		for _, productID := range productIDs {
			if row, ok := st.stock[inventory.StockKey{BranchID: branchID, ProductID: productID}]; ok {
				out[productID] = row.Clone()
			}
		}
	})
	return out, nil
}

// Save overwrites existing rows.
func (r *StockRepository) Save(_ context.Context, rows ...*inventory.StockRow) error {
	saved := make([]*inventory.StockRow, 0, len(rows))
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return err
		}
		saved = append(saved, row.Clone())
	}

	return r.uow.write(func(st *state) (func(), error) {
		prev := make(map[inventory.StockKey]*inventory.StockRow, len(saved))
		for _, row := range saved {
			old, ok := st.stock[row.Key()]
			if !ok {
				return nil, errs.NewObjectNotFoundError("stockRow", row.Key().String())
			}
			if _, seen := prev[row.Key()]; !seen {
				prev[row.Key()] = old
			}
		}
		for _, row := range saved {
			st.stock[row.Key()] = row
		}
		return func() {
			for key, old := range prev {
				st.stock[key] = old
			}
		}, nil
	})
}

func (r *StockRepository) ListByBranch(_ context.Context, branchID string) ([]*inventory.StockRow, error) {
	var out []*inventory.StockRow
	r.uow.store.read(func(st *state) {
		for key, row := range st.stock {
			if key.BranchID == branchID {
				out = append(out, row.Clone())
			}
		}
	})
	slices.SortFunc(out, compareRows)
	return out, nil
}

func (r *StockRepository) ListAll(_ context.Context) ([]*inventory.StockRow, error) {
	var out []*inventory.StockRow
	r.uow.store.read(func(st *state) {
		out = make([]*inventory.StockRow, 0, len(st.stock))
		for _, row := range st.stock {
			out = append(out, row.Clone())
		}
	})
	slices.SortFunc(out, compareRows)
	return out, nil
}

func compareRows(a, b *inventory.StockRow) int {
	return cmp.Or(
		strings.Compare(a.BranchID(), b.BranchID()),
		strings.Compare(a.ProductID(), b.ProductID()),
	)
}

type ReservationRepository struct {
	uow *UnitOfWork
}

func (r *ReservationRepository) Get(_ context.Context, workOrderID string) (*inventory.Reservation, error) {
	var res *inventory.Reservation
	r.uow.store.read(func(st *state) {
		res = st.reservations[workOrderID]
	})
	if res == nil {
		return nil, errs.NewReservationNotFoundError(workOrderID)
	}
	return res, nil
}

func (r *ReservationRepository) Add(_ context.Context, reservation *inventory.Reservation) error {
	if err := reservation.Validate(); err != nil {
		return err
	}

	id := reservation.WorkOrderID()
	return r.uow.write(func(st *state) (func(), error) {
		if _, ok := st.reservations[id]; ok {
			return nil, errs.NewReservationConflictError(id)
		}
		st.reservations[id] = reservation
		return func() { delete(st.reservations, id) }, nil
	})
}

func (r *ReservationRepository) Delete(_ context.Context, workOrderID string) error {
	return r.uow.write(func(st *state) (func(), error) {
		prev, ok := st.reservations[workOrderID]
		if !ok {
			return nil, errs.NewReservationNotFoundError(workOrderID)
		}
		delete(st.reservations, workOrderID)
		return func() { st.reservations[workOrderID] = prev }, nil
	})
}

func (r *ReservationRepository) List(_ context.Context) ([]*inventory.Reservation, error) {
	var out []*inventory.Reservation
	r.uow.store.read(func(st *state) {
		out = make([]*inventory.Reservation, 0, len(st.reservations))
		for _, res := range st.reservations {
			out = append(out, res)
		}
	})
	slices.SortFunc(out, func(a, b *inventory.Reservation) int {
		return strings.Compare(a.WorkOrderID(), b.WorkOrderID())
	})
	return out, nil
}

type CatalogRepository struct {
	uow *UnitOfWork
}

func (r *CatalogRepository) AddBranches(_ context.Context, branches ...inventory.Branch) (int, error) {
	return addMissing(r.uow, branches, func(b inventory.Branch) string { return b.ID },
		func(st *state) map[string]inventory.Branch { return st.branches })
}

func (r *CatalogRepository) AddProducts(_ context.Context, products ...inventory.Product) (int, error) {
	return addMissing(r.uow, products, func(p inventory.Product) string { return p.ID },
		func(st *state) map[string]inventory.Product { return st.products })
}

func (r *CatalogRepository) ListBranches(_ context.Context) ([]inventory.Branch, error) {
	var out []inventory.Branch
	r.uow.store.read(func(st *state) {
		out = sortedValues(st.branches)
	})
	return out, nil
}

func (r *CatalogRepository) ListProducts(_ context.Context) ([]inventory.Product, error) {
	var out []inventory.Product
	r.uow.store.read(func(st *state) {
		out = sortedValues(st.products)
	})
	return out, nil
}

func addMissing[T any](uow *UnitOfWork, items []T, id func(T) string, table func(*state) map[string]T) (int, error) {
	var fresh []T
	uow.store.read(func(st *state) {
		seen := map[string]struct{}{}
		for _, item := range items {
			key := strings.TrimSpace(id(item))
			if _, ok := table(st)[key]; ok {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			fresh = append(fresh, item)
		}
	})
	if len(fresh) == 0 {
		return 0, nil
	}

	err := uow.write(func(st *state) (func(), error) {
		m := table(st)
		var added []string
		for _, item := range fresh {
			key := strings.TrimSpace(id(item))
			if _, ok := m[key]; ok {
				continue
			}
			m[key] = item
			added = append(added, key)
		}
		return func() {
			for _, key := range added {
				delete(m, key)
			}
		}, nil
	})
	if err != nil {
		return 0, err
	}
	return len(fresh), nil
}

func sortedValues[T any](m map[string]T) []T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
