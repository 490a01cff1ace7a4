package memory_test

import (
	"testing"
	"time"

	"workorders/internal/adapters/out/memory"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func newWorkOrder(t *testing.T, createdAt time.Time) *workorder.WorkOrder {
	t.Helper()
	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), workorder.TypeEquipmentOnlySale, "cust-1", workorder.Details{}, createdAt)
	require.NoError(t, err)
	return wo
}

func newRow(t *testing.T, branchID, productID string, qty int) *inventory.StockRow {
	t.Helper()
	row, err := inventory.NewStockRow(branchID, productID, qty, now)
	require.NoError(t, err)
	return row
}

func TestUnitOfWork_Commit(t *testing.T) {
	t.Run("should hide staged writes until commit", func(t *testing.T) {
		store := memory.NewStore()
		uow := store.Create()
		wo := newWorkOrder(t, now)

		require.NoError(t, uow.Begin(t.Context()))
		require.NoError(t, uow.WorkOrderRepository().Add(t.Context(), wo))

		_, err := store.Create().WorkOrderRepository().Get(t.Context(), wo.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		require.NoError(t, uow.Commit(t.Context()))

		got, err := store.Create().WorkOrderRepository().Get(t.Context(), wo.ID())
		require.NoError(t, err)
		assert.Equal(t, wo.ID(), got.ID())
	})

	t.Run("should discard staged writes on rollback", func(t *testing.T) {
		store := memory.NewStore()
		uow := store.Create()
		wo := newWorkOrder(t, now)

		require.NoError(t, uow.Begin(t.Context()))
		require.NoError(t, uow.WorkOrderRepository().Add(t.Context(), wo))
		require.NoError(t, uow.Rollback(t.Context()))

		_, err := store.Create().WorkOrderRepository().Get(t.Context(), wo.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should apply nothing when one staged write fails", func(t *testing.T) {
		store := memory.NewStore()
		ctx := t.Context()
		_, err := store.Create().StockRepository().Add(ctx, newRow(t, "br_main", "p1", 5))
		require.NoError(t, err)
		item, err := kernel.NewLineItem("p1", 1)
		require.NoError(t, err)
		res, err := inventory.NewReservation("wo-1", "br_main", []kernel.LineItem{item}, now)
		require.NoError(t, err)
		require.NoError(t, store.Create().ReservationRepository().Add(ctx, res))

		uow := store.Create()
		require.NoError(t, uow.Begin(ctx))
		row := newRow(t, "br_main", "p1", 5)
		require.NoError(t, row.Reserve(2, now))
		require.NoError(t, uow.StockRepository().Save(ctx, row))
		require.NoError(t, uow.ReservationRepository().Add(ctx, res))

		err = uow.Commit(ctx)

		require.ErrorIs(t, err, errs.ErrReservationConflict)
		rows, err := store.Create().StockRepository().GetMany(ctx, "br_main", []string{"p1"})
		require.NoError(t, err)
		assert.Equal(t, 5, rows["p1"].QtyAvailable())
		assert.Equal(t, 0, rows["p1"].QtyReserved())
	})

	t.Run("should fail commit and rollback without begin", func(t *testing.T) {
		uow := memory.NewStore().Create()

		require.ErrorIs(t, uow.Commit(t.Context()), memory.ErrNoTransaction)
		require.ErrorIs(t, uow.Rollback(t.Context()), memory.ErrNoTransaction)
	})
}

func TestWorkOrderRepository_Update(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	wo := newWorkOrder(t, now)
	require.NoError(t, store.Create().WorkOrderRepository().Add(ctx, wo))

	moved := wo.Clone()
	require.NoError(t, moved.ChangeStatus(workorder.Submitted, now))

	require.NoError(t, store.Create().WorkOrderRepository().Update(ctx, moved, 0))

	err := store.Create().WorkOrderRepository().Update(ctx, moved, 0)
	var conflict *errs.VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.Actual)

	got, err := store.Create().WorkOrderRepository().Get(ctx, wo.ID())
	require.NoError(t, err)
	assert.Equal(t, workorder.Submitted, got.Status())
	assert.Equal(t, 1, got.Version())
}

func TestWorkOrderRepository_List(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	older := newWorkOrder(t, now)
	newer := newWorkOrder(t, now.Add(time.Minute))
	repo := store.Create().WorkOrderRepository()
	require.NoError(t, repo.Add(ctx, older))
	require.NoError(t, repo.Add(ctx, newer))

	list, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID(), list[0].ID())
	assert.Equal(t, older.ID(), list[1].ID())
}

func TestStockRepository_Add(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewStore().Create().StockRepository()

	n, err := repo.Add(ctx, newRow(t, "br_main", "p1", 5), newRow(t, "br_main", "p2", 1))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.Add(ctx, newRow(t, "br_main", "p1", 99), newRow(t, "br_north", "p1", 3))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "br_main", rows[0].BranchID())
	assert.Equal(t, 5, rows[0].QtyAvailable())
	assert.Equal(t, "br_north", rows[2].BranchID())
}

func TestAuditRepository_Find(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewStore().Create().AuditRepository()
	for i, id := range []string{"01A", "01B", "01C"} {
		require.NoError(t, repo.Append(ctx, &audit.Event{
			ID:         id,
			At:         now.Add(time.Duration(i) * time.Minute),
			Action:     audit.ActionWorkOrderStatus,
			EntityType: audit.EntityWorkOrder,
			EntityID:   "wo-1",
		}))
	}

	t.Run("should page newest first", func(t *testing.T) {
		items, total, err := repo.Find(ctx, audit.Filter{Limit: 2, Offset: 1})

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, items, 2)
		assert.Equal(t, "01B", items[0].ID)
		assert.Equal(t, "01A", items[1].ID)
	})

	t.Run("should return an empty page past the end", func(t *testing.T) {
		items, total, err := repo.Find(ctx, audit.Filter{Limit: 2, Offset: 10})

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, items)
	})

	t.Run("should reject a duplicate id", func(t *testing.T) {
		err := repo.Append(ctx, &audit.Event{ID: "01A", At: now})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
