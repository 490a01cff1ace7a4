package services_test

import (
	"testing"
	"time"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/services"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func rowsOf(t *testing.T, branchID string, available map[string]int) map[string]*inventory.StockRow {
	t.Helper()
	out := make(map[string]*inventory.StockRow, len(available))
	for productID, qty := range available {
		row, err := inventory.NewStockRow(branchID, productID, qty, now.Add(-time.Hour))
		require.NoError(t, err)
		out[productID] = row
	}
	return out
}

func lineItems(t *testing.T, specs ...kernel.LineItemSpec) []kernel.LineItem {
	t.Helper()
	items, err := kernel.NewLineItems(specs)
	require.NoError(t, err)
	return items
}

func TestReservationPlanner_Reserve(t *testing.T) {
	planner := services.NewReservationPlanner()

	t.Run("should move requested units to reserved", func(t *testing.T) {
		rows := rowsOf(t, "br_main", map[string]int{"p1": 5, "p2": 1})

		res, err := planner.Reserve("wo-1", "br_main",
			lineItems(t, kernel.LineItemSpec{ProductID: "p1", Qty: 3}, kernel.LineItemSpec{ProductID: "p2", Qty: 1}), rows, now)

		require.NoError(t, err)
		assert.Equal(t, "wo-1", res.WorkOrderID())
		assert.Equal(t, now, res.ReservedAt())
		assert.Equal(t, 2, rows["p1"].QtyAvailable())
		assert.Equal(t, 3, rows["p1"].QtyReserved())
		assert.Equal(t, 0, rows["p2"].QtyAvailable())
		assert.Equal(t, now, rows["p1"].UpdatedAt())
	})

	t.Run("should sum repeated products before checking", func(t *testing.T) {
		rows := rowsOf(t, "br_main", map[string]int{"p1": 4})

		_, err := planner.Reserve("wo-1", "br_main",
			lineItems(t, kernel.LineItemSpec{ProductID: "p1", Qty: 3}, kernel.LineItemSpec{ProductID: "p1", Qty: 2}), rows, now)

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		assert.Equal(t, 4, rows["p1"].QtyAvailable())
	})

	t.Run("should name every short product and touch nothing", func(t *testing.T) {
		rows := rowsOf(t, "br_main", map[string]int{"p1": 1, "p2": 10, "p3": 0})

		_, err := planner.Reserve("wo-1", "br_main", lineItems(t,
			kernel.LineItemSpec{ProductID: "p3", Qty: 1},
			kernel.LineItemSpec{ProductID: "p2", Qty: 2},
			kernel.LineItemSpec{ProductID: "missing", Qty: 1},
			kernel.LineItemSpec{ProductID: "p1", Qty: 2},
		), rows, now)

		var shortage *errs.InsufficientStockError
		require.ErrorAs(t, err, &shortage)
		assert.Equal(t, []string{"p3", "missing", "p1"}, shortage.ProductIDs)
		assert.Equal(t, "br_main", shortage.BranchID)
		assert.Equal(t, "insufficient stock for products: p3, missing, p1 in branch br_main", err.Error())
		assert.Equal(t, 10, rows["p2"].QtyAvailable())
		assert.Equal(t, 0, rows["p2"].QtyReserved())
	})

	t.Run("should treat rows of another branch as short", func(t *testing.T) {
		rows := rowsOf(t, "br_other", map[string]int{"p1": 5})

		_, err := planner.Reserve("wo-1", "br_main", lineItems(t, kernel.LineItemSpec{ProductID: "p1", Qty: 1}), rows, now)

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
	})

	t.Run("should reject malformed requests before looking at stock", func(t *testing.T) {
		_, err := planner.Reserve("", "", nil, nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.NotErrorIs(t, err, errs.ErrInsufficientStock)
	})
}

func TestReservationPlanner_ReserveThenReleaseConserves(t *testing.T) {
	planner := services.NewReservationPlanner()
	rows := rowsOf(t, "br_main", map[string]int{"p1": 5, "p2": 7})
	items := lineItems(t, kernel.LineItemSpec{ProductID: "p1", Qty: 2}, kernel.LineItemSpec{ProductID: "p2", Qty: 7},
		kernel.LineItemSpec{ProductID: "p1", Qty: 3})

	res, err := planner.Reserve("wo-1", "br_main", items, rows, now)
	require.NoError(t, err)
	assert.Equal(t, 0, rows["p1"].QtyAvailable())

	missing, err := planner.Release(res, rows, now.Add(time.Minute))

	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Equal(t, 5, rows["p1"].QtyAvailable())
	assert.Equal(t, 0, rows["p1"].QtyReserved())
	assert.Equal(t, 7, rows["p2"].QtyAvailable())
	assert.Equal(t, 0, rows["p2"].QtyReserved())
}

func TestReservationPlanner_ReleaseSkipsMissingRows(t *testing.T) {
	planner := services.NewReservationPlanner()
	rows := rowsOf(t, "br_main", map[string]int{"p1": 5, "p2": 5})
	res, err := planner.Reserve("wo-1", "br_main",
		lineItems(t, kernel.LineItemSpec{ProductID: "p1", Qty: 1}, kernel.LineItemSpec{ProductID: "p2", Qty: 2}), rows, now)
	require.NoError(t, err)

	delete(rows, "p2")
	missing, err := planner.Release(res, rows, now)

	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, missing)
	assert.Equal(t, 5, rows["p1"].QtyAvailable())
}

func TestReservationPlanner_ReleaseRejectsZeroReservation(t *testing.T) {
	_, err := services.NewReservationPlanner().Release(&inventory.Reservation{}, nil, now)

	require.ErrorIs(t, err, inventory.ErrReservationIsNotConstructed)
}
