package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"workorders/internal/adapters/out/memory"
	"workorders/internal/core/application/auditlog"
	"workorders/internal/core/application/ledger"
	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

type MockWorkOrderRepository struct{ mock.Mock }

func (m *MockWorkOrderRepository) Add(ctx context.Context, wo *workorder.WorkOrder) error {
	args := m.Called(ctx, wo)
	return args.Error(0)
}
func (m *MockWorkOrderRepository) Update(ctx context.Context, wo *workorder.WorkOrder, baseVersion int) error {
	args := m.Called(ctx, wo, baseVersion)
	return args.Error(0)
}
func (m *MockWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, id)
	wo, _ := args.Get(0).(*workorder.WorkOrder)
	return wo, args.Error(1)
}
func (m *MockWorkOrderRepository) List(_ context.Context) ([]*workorder.WorkOrder, error) {
	return nil, errors.New("not implemented in mock")
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, e *audit.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockAuditRepository) Get(_ context.Context, _ string) (*audit.Event, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAuditRepository) Find(_ context.Context, _ audit.Filter) ([]*audit.Event, int, error) {
	return nil, 0, errors.New("not implemented in mock")
}
func (m *MockAuditRepository) Count(_ context.Context) (int, error) {
	return 0, errors.New("not implemented in mock")
}

type MockWorkOrderUoW struct{ mock.Mock }

func (m *MockWorkOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockWorkOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockWorkOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWorkOrderUoW) WorkOrderRepository() ports.WorkOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkOrderRepository)
}

func (m *MockWorkOrderUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockWorkOrderUoWFactory struct{ mock.Mock }

func (m *MockWorkOrderUoWFactory) Create() commands.WorkOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkOrderUoW)
}

type MockInventoryLedger struct{ mock.Mock }

func (m *MockInventoryLedger) Reserve(ctx context.Context, workOrderID, branchID string, items []kernel.LineItem) (*inventory.Reservation, error) {
	args := m.Called(ctx, workOrderID, branchID, items)
	res, _ := args.Get(0).(*inventory.Reservation)
	return res, args.Error(1)
}
func (m *MockInventoryLedger) Release(ctx context.Context, workOrderID string) (*inventory.Reservation, error) {
	args := m.Called(ctx, workOrderID)
	res, _ := args.Get(0).(*inventory.Reservation)
	return res, args.Error(1)
}

// failingCommit wraps a memory unit of work whose Commit always fails after
// discarding the staged writes.
type failingCommit struct {
	ports.UnitOfWork
	err error
}

func (f failingCommit) Commit(ctx context.Context) error {
	_ = f.UnitOfWork.Rollback(ctx)
	return f.err
}

// env is a service wired over one memory store.
type env struct {
	store    *memory.Store
	ledger   *ledger.Ledger
	recorder *auditlog.Recorder
	create   commands.CreateWorkOrderCommandHandler
	update   commands.UpdateWorkOrderStatusCommandHandler
}

func newEnv(t *testing.T, stock ...inventory.StockLevel) env {
	t.Helper()
	store := memory.NewStore()
	l := ledger.New(ledger.FuncUoWFactory(func() ledger.UoW { return store.Create() }))
	_, err := l.Bootstrap(t.Context(), inventory.Catalog{
		Branches: []inventory.Branch{{ID: "br_main", Name: "Main", IsMain: true}},
		Products: []inventory.Product{{ID: "p1", Name: "Router"}, {ID: "p2", Name: "Cable"}},
		Stock:    stock,
	})
	require.NoError(t, err)

	recorder := auditlog.NewRecorder(store.Create().AuditRepository())
	uowFactory := commands.FuncWorkOrderUoWFactory(func() commands.WorkOrderUoW { return store.Create() })
	return env{
		store:    store,
		ledger:   l,
		recorder: recorder,
		create:   commands.NewCreateWorkOrderCommandHandler(uowFactory, recorder),
		update:   commands.NewUpdateWorkOrderStatusCommandHandler(uowFactory, l, recorder, nil),
	}
}

func (e env) createWorkOrder(t *testing.T, typ string, items ...kernel.LineItemSpec) *workorder.WorkOrder {
	t.Helper()
	cmd, err := commands.NewCreateWorkOrderCommand(commands.WorkOrderInput{
		Type:       typ,
		CustomerID: "cust-1",
		BranchID:   "br_main",
		Items:      items,
	}, commands.NewCaller("u-1", "c_test"))
	require.NoError(t, err)
	wo, err := e.create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return wo
}

func (e env) move(t *testing.T, id kernel.UUID, status string, baseVersion int) (*workorder.WorkOrder, error) {
	t.Helper()
	cmd, err := commands.NewUpdateWorkOrderStatusCommand(id.String(), status, baseVersion, commands.NewCaller("u-1", "c_test"))
	require.NoError(t, err)
	return e.update.Handle(t.Context(), cmd)
}

func (e env) row(t *testing.T, productID string) inventory.StockView {
	t.Helper()
	views, err := e.ledger.ListInventory(t.Context(), "br_main")
	require.NoError(t, err)
	for _, v := range views {
		if v.ProductID == productID {
			return v
		}
	}
	t.Fatalf("no stock row for %s", productID)
	return inventory.StockView{}
}

func (e env) history(t *testing.T, id kernel.UUID) []*audit.Event {
	t.Helper()
	items, _, err := e.recorder.GetHistory(t.Context(), audit.EntityWorkOrder, id.String())
	require.NoError(t, err)
	return items
}
