package commands_test

import (
	"context"
	"errors"
	"testing"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingAudit rejects every append.
type failingAudit struct {
	ports.AuditRepository
	err error
}

func (f failingAudit) Append(context.Context, *audit.Event) error {
	return f.err
}

type auditUoW struct {
	ports.UnitOfWork
	audit ports.AuditRepository
}

func (u auditUoW) AuditRepository() ports.AuditRepository {
	return u.audit
}

func TestReserveInventoryCommandHandler_Handle(t *testing.T) {
	stock := inventory.StockLevel{BranchID: "br_main", ProductID: "p1", QtyAvailable: 4}

	t.Run("should reserve and record AUD-07", func(t *testing.T) {
		e := newEnv(t, stock)
		h := commands.NewReserveInventoryCommandHandler(e.ledger,
			commands.FuncAuditUoWFactory(func() commands.AuditUoW { return e.store.Create() }), e.recorder)
		cmd, err := commands.NewReserveInventoryCommand("wo-1", "br_main",
			[]kernel.LineItemSpec{{ProductID: "p1", Qty: 4}}, commands.NewCaller("u-9", "c_9"))
		require.NoError(t, err)

		res, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "wo-1", res.WorkOrderID())
		assert.Equal(t, 0, e.row(t, "p1").QtyAvailable)
		events, _, err := e.recorder.GetHistory(t.Context(), audit.EntityReservation, "wo-1")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.ActionInventoryReserved, events[0].Action)
		assert.Nil(t, events[0].Before)
		assert.Equal(t, "br_main", events[0].After["branchId"])
		assert.Equal(t, "u-9", events[0].ActorUserID)
	})

	t.Run("should release again when the audit append fails", func(t *testing.T) {
		e := newEnv(t, stock)
		appendErr := errors.New("audit down")
		h := commands.NewReserveInventoryCommandHandler(e.ledger,
			commands.FuncAuditUoWFactory(func() commands.AuditUoW {
				return auditUoW{UnitOfWork: e.store.Create(), audit: failingAudit{err: appendErr}}
			}), e.recorder)
		cmd, err := commands.NewReserveInventoryCommand("wo-1", "br_main",
			[]kernel.LineItemSpec{{ProductID: "p1", Qty: 2}}, commands.Caller{})
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, appendErr)
		assert.Equal(t, 4, e.row(t, "p1").QtyAvailable)
		assert.Equal(t, 0, e.row(t, "p1").QtyReserved)
	})

	t.Run("should pass ledger errors through", func(t *testing.T) {
		e := newEnv(t, stock)
		h := commands.NewReserveInventoryCommandHandler(e.ledger,
			commands.FuncAuditUoWFactory(func() commands.AuditUoW { return e.store.Create() }), e.recorder)
		cmd, err := commands.NewReserveInventoryCommand("wo-1", "br_main",
			[]kernel.LineItemSpec{{ProductID: "p1", Qty: 5}}, commands.Caller{})
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		count, err := e.recorder.Count(t.Context())
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestReleaseInventoryCommandHandler_Handle(t *testing.T) {
	stock := inventory.StockLevel{BranchID: "br_main", ProductID: "p1", QtyAvailable: 4}

	t.Run("should release and record AUD-08", func(t *testing.T) {
		e := newEnv(t, stock)
		_, err := e.ledger.Reserve(t.Context(), "wo-1", "br_main", []kernel.LineItem{mustItem(t, "p1", 3)})
		require.NoError(t, err)
		h := commands.NewReleaseInventoryCommandHandler(e.ledger,
			commands.FuncAuditUoWFactory(func() commands.AuditUoW { return e.store.Create() }), e.recorder)
		cmd, err := commands.NewReleaseInventoryCommand("wo-1", commands.Caller{})
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, 4, e.row(t, "p1").QtyAvailable)
		events, _, err := e.recorder.GetHistory(t.Context(), audit.EntityReservation, "wo-1")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.ActionInventoryReleased, events[0].Action)
		assert.NotNil(t, events[0].Before)
		assert.Nil(t, events[0].After)
	})

	t.Run("should report a missing reservation", func(t *testing.T) {
		e := newEnv(t, stock)
		h := commands.NewReleaseInventoryCommandHandler(e.ledger,
			commands.FuncAuditUoWFactory(func() commands.AuditUoW { return e.store.Create() }), e.recorder)
		cmd, err := commands.NewReleaseInventoryCommand("wo-1", commands.Caller{})
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("should reserve again when the audit append fails", func(t *testing.T) {
		e := newEnv(t, stock)
		_, err := e.ledger.Reserve(t.Context(), "wo-1", "br_main", []kernel.LineItem{mustItem(t, "p1", 3)})
		require.NoError(t, err)
		appendErr := errors.New("audit down")
		h := commands.NewReleaseInventoryCommandHandler(e.ledger,
			commands.FuncAuditUoWFactory(func() commands.AuditUoW {
				return auditUoW{UnitOfWork: e.store.Create(), audit: failingAudit{err: appendErr}}
			}), e.recorder)
		cmd, err := commands.NewReleaseInventoryCommand("wo-1", commands.Caller{})
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, appendErr)
		assert.Equal(t, 1, e.row(t, "p1").QtyAvailable)
		assert.Equal(t, 3, e.row(t, "p1").QtyReserved)
	})
}

func TestBootstrapCatalogCommandHandler_Handle(t *testing.T) {
	e := newEnv(t)
	catalog := inventory.Catalog{
		Branches: []inventory.Branch{{ID: "br_main"}, {ID: "br_south", Name: "South"}},
		Products: []inventory.Product{{ID: "p3", Name: "Antenna"}},
		Stock:    []inventory.StockLevel{{BranchID: "br_south", ProductID: "p3", QtyAvailable: 7}},
	}
	cmd, err := commands.NewBootstrapCatalogCommand(catalog)
	require.NoError(t, err)
	h := commands.NewBootstrapCatalogCommandHandler(e.ledger)

	result, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Branches)
	assert.Equal(t, 1, result.Products)
	assert.Equal(t, 1, result.Rows)

	_, err = commands.NewBootstrapCatalogCommand(inventory.Catalog{
		Stock: []inventory.StockLevel{{BranchID: "nowhere", ProductID: "p3"}},
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = h.Handle(t.Context(), commands.BootstrapCatalogCommand{})
	require.ErrorIs(t, err, commands.ErrBootstrapCatalogCommandIsNotConstructed)
}
