package commands_test

import (
	"testing"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateWorkOrderCommand(t *testing.T) {
	t.Run("should parse type and items", func(t *testing.T) {
		cmd, err := commands.NewCreateWorkOrderCommand(commands.WorkOrderInput{
			Type:       " EQUIPMENT_ONLY_SALE ",
			CustomerID: "cust-1",
			BranchID:   "br_main",
			PlanID:     "plan-9",
			Items:      []kernel.LineItemSpec{{ProductID: "p1", Qty: 3}},
		}, commands.NewCaller(" u-1 ", "c_1"))

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, workorder.TypeEquipmentOnlySale, cmd.Type())
		assert.Equal(t, "cust-1", cmd.CustomerID())
		assert.Equal(t, "plan-9", cmd.Details().PlanID)
		require.Len(t, cmd.Details().Items, 1)
		assert.Equal(t, "u-1", cmd.Caller().ActorUserID)
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		_, err := commands.NewCreateWorkOrderCommand(commands.WorkOrderInput{
			Type:  "TELEPORT",
			Items: []kernel.LineItemSpec{{ProductID: "p1", Qty: 0}},
		}, commands.Caller{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		err := commands.CreateWorkOrderCommand{}.Validate()

		require.ErrorIs(t, err, commands.ErrCreateWorkOrderCommandIsNotConstructed)
	})
}

func TestNewUpdateWorkOrderStatusCommand(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should parse id and status", func(t *testing.T) {
		cmd, err := commands.NewUpdateWorkOrderStatusCommand(id.String(), "SUBMITTED", 0, commands.Caller{})

		require.NoError(t, err)
		assert.Equal(t, id, cmd.WorkOrderID())
		assert.Equal(t, workorder.Submitted, cmd.Status())
		assert.Equal(t, 0, cmd.BaseVersion())
	})

	t.Run("should reject a bad id, status and version together", func(t *testing.T) {
		_, err := commands.NewUpdateWorkOrderStatusCommand("nope", "FLYING", -1, commands.Caller{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		err := commands.UpdateWorkOrderStatusCommand{}.Validate()

		require.ErrorIs(t, err, commands.ErrUpdateWorkOrderStatusCommandIsNotConstructed)
	})
}

func TestNewReserveInventoryCommand(t *testing.T) {
	t.Run("should trim ids", func(t *testing.T) {
		cmd, err := commands.NewReserveInventoryCommand(" wo-1 ", " br_main ",
			[]kernel.LineItemSpec{{ProductID: "p1", Qty: 1}}, commands.Caller{})

		require.NoError(t, err)
		assert.Equal(t, "wo-1", cmd.WorkOrderID())
		assert.Equal(t, "br_main", cmd.BranchID())
	})

	t.Run("should require ids and items", func(t *testing.T) {
		_, err := commands.NewReserveInventoryCommand("", "", nil, commands.Caller{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non positive quantities", func(t *testing.T) {
		_, err := commands.NewReserveInventoryCommand("wo-1", "br_main",
			[]kernel.LineItemSpec{{ProductID: "p1", Qty: -2}}, commands.Caller{})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewReleaseInventoryCommand(t *testing.T) {
	_, err := commands.NewReleaseInventoryCommand("  ", commands.Caller{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewReleaseInventoryCommand("wo-1", commands.Caller{})
	require.NoError(t, err)
	assert.Equal(t, "wo-1", cmd.WorkOrderID())
}
