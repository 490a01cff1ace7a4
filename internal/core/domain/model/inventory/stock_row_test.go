package inventory_test

import (
	"testing"
	"time"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

func TestNewStockRow(t *testing.T) {
	row, err := inventory.NewStockRow(" br_main ", "p1", 5, t0)

	require.NoError(t, err)
	require.NoError(t, row.Validate())
	assert.Equal(t, inventory.StockKey{BranchID: "br_main", ProductID: "p1"}, row.Key())
	assert.Equal(t, "br_main/p1", row.Key().String())
	assert.Equal(t, 5, row.QtyAvailable())
	assert.Equal(t, 0, row.QtyReserved())

	_, err = inventory.NewStockRow("", "", -1, t0)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	_, err = inventory.NewStockRow("br_main", "p1", -1, t0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.NotErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestStockRow_ReserveRelease(t *testing.T) {
	t.Run("pair conserves the total", func(t *testing.T) {
		row, err := inventory.NewStockRow("br_main", "p1", 5, t0)
		require.NoError(t, err)

		require.NoError(t, row.Reserve(3, t0.Add(time.Minute)))
		assert.Equal(t, 2, row.QtyAvailable())
		assert.Equal(t, 3, row.QtyReserved())
		assert.Equal(t, t0.Add(time.Minute), row.UpdatedAt())

		require.NoError(t, row.Release(3, t0.Add(2*time.Minute)))
		assert.Equal(t, 5, row.QtyAvailable())
		assert.Equal(t, 0, row.QtyReserved())
	})

	t.Run("reserve beyond available fails without change", func(t *testing.T) {
		row, err := inventory.NewStockRow("br_main", "p1", 2, t0)
		require.NoError(t, err)

		err = row.Reserve(3, t0.Add(time.Minute))

		var shortage *errs.InsufficientStockError
		require.ErrorAs(t, err, &shortage)
		assert.Equal(t, []string{"p1"}, shortage.ProductIDs)
		assert.Equal(t, 2, row.QtyAvailable())
		assert.Equal(t, t0, row.UpdatedAt())
	})

	t.Run("release beyond reserved fails without change", func(t *testing.T) {
		row, err := inventory.RestoreStockRow("br_main", "p1", 0, 1, t0)
		require.NoError(t, err)

		require.ErrorIs(t, row.Release(2, t0), errs.ErrValueIsOutOfRange)
		assert.Equal(t, 1, row.QtyReserved())
	})

	t.Run("non positive quantities are rejected", func(t *testing.T) {
		row, err := inventory.NewStockRow("br_main", "p1", 2, t0)
		require.NoError(t, err)

		require.ErrorIs(t, row.Reserve(0, t0), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, row.Release(-1, t0), errs.ErrValueIsOutOfRange)
		assert.False(t, row.CanCover(0))
		assert.True(t, row.CanCover(2))
		assert.False(t, row.CanCover(3))
	})
}

func TestStockRow_CloneIsIndependent(t *testing.T) {
	row, err := inventory.NewStockRow("br_main", "p1", 2, t0)
	require.NoError(t, err)

	cp := row.Clone()
	require.NoError(t, cp.Reserve(1, t0))

	assert.Equal(t, 2, row.QtyAvailable())
	assert.Equal(t, 1, cp.QtyAvailable())
}

func TestStockRow_ZeroValueIsInvalid(t *testing.T) {
	var row inventory.StockRow
	require.ErrorIs(t, row.Validate(), inventory.ErrStockRowIsNotConstructed)
}
