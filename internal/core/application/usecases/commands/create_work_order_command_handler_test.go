package commands_test

import (
	"errors"
	"testing"

	"workorders/internal/core/application/auditlog"
	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T) commands.CreateWorkOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateWorkOrderCommand(commands.WorkOrderInput{
		Type:       "EQUIPMENT_ONLY_SALE",
		CustomerID: "cust-1",
		BranchID:   "br_main",
		Items:      []kernel.LineItemSpec{{ProductID: "p1", Qty: 3}},
	}, commands.NewCaller("u-1", "c_1"))
	require.NoError(t, err)
	return cmd
}

func TestCreateWorkOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	repo := new(MockWorkOrderRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockWorkOrderUoW)
	var appended *audit.Event
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkOrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*workorder.WorkOrder")).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Event")).
			Run(func(args mock.Arguments) { appended = args.Get(1).(*audit.Event) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWorkOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateWorkOrderCommandHandler(factory, auditlog.NewRecorder(nil))
	wo, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, workorder.Draft, wo.Status())
	assert.Equal(t, 0, wo.Version())
	require.NotNil(t, appended)
	assert.Equal(t, audit.ActionWorkOrderCreated, appended.Action)
	assert.Equal(t, wo.ID().String(), appended.EntityID)
	assert.Nil(t, appended.Before)
	assert.Equal(t, "DRAFT", appended.After["status"])
	assert.Equal(t, "c_1", appended.CorrelationID)
	repo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateWorkOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockWorkOrderUoWFactory)
	h := commands.NewCreateWorkOrderCommandHandler(factory, auditlog.NewRecorder(nil))

	_, err := h.Handle(t.Context(), commands.CreateWorkOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateWorkOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateWorkOrderCommandHandler_Handle_AuditError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	repo := new(MockWorkOrderRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockWorkOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkOrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*workorder.WorkOrder")).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Event")).Return(errors.New("disk full")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWorkOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateWorkOrderCommandHandler(factory, auditlog.NewRecorder(nil))
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "disk full")
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestCreateWorkOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	uow := new(MockWorkOrderUoW)
	factory := new(MockWorkOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateWorkOrderCommandHandler(factory, auditlog.NewRecorder(nil))
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateWorkOrderCommandHandler_Handle_RecordsInMemory(t *testing.T) {
	e := newEnv(t)

	wo := e.createWorkOrder(t, "NEW_SERVICE_INSTALL")

	events := e.history(t, wo.ID())
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionWorkOrderCreated, events[0].Action)
	assert.Equal(t, "u-1", events[0].ActorUserID)
}
