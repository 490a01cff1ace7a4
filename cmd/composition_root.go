package cmd

import (
	"context"
	"log/slog"

	httpadapter "workorders/internal/adapters/in/http"
	"workorders/internal/adapters/out/seed"
	"workorders/internal/adapters/out/xlsx"
	"workorders/internal/core/application/auditlog"
	"workorders/internal/core/application/ledger"
	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/ports"
	"workorders/internal/jobs"
	"workorders/internal/pkg/keylock"
)

// CompositionRoot wires handlers over one storage backend. All handlers share
// the ledger, the recorder and the key locker.
type CompositionRoot struct {
	config     Config
	storage    Storage
	logger     *slog.Logger
	locks      *keylock.Locker
	ledger     *ledger.Ledger
	recorder   *auditlog.Recorder
	workOrders ports.WorkOrderRepository
}

func NewCompositionRoot(config Config, storage Storage, logger *slog.Logger) *CompositionRoot {
	locks := keylock.New()
	uowFactory := storage.UoWFactory

	return &CompositionRoot{
		config:  config,
		storage: storage,
		logger:  logger,
		locks:   locks,
		ledger:  ledger.New(
			ledger.FuncUoWFactory(func() ledger.UoW { return uowFactory.Create() }),
			ledger.WithLocker(locks),
		),
		recorder:   auditlog.NewRecorder(uowFactory.Create().AuditRepository()),
		workOrders: uowFactory.Create().WorkOrderRepository(),
	}
}

func (c *CompositionRoot) workOrderUoWFactory() commands.WorkOrderUoWFactory {
	return commands.FuncWorkOrderUoWFactory(func() commands.WorkOrderUoW {
		return c.storage.UoWFactory.Create()
	})
}

func (c *CompositionRoot) auditUoWFactory() commands.AuditUoWFactory {
	return commands.FuncAuditUoWFactory(func() commands.AuditUoW {
		return c.storage.UoWFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateWorkOrderCommandHandler() commands.CreateWorkOrderCommandHandler {
	return commands.NewCreateWorkOrderCommandHandler(c.workOrderUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateUpdateWorkOrderStatusCommandHandler() commands.UpdateWorkOrderStatusCommandHandler {
	return commands.NewUpdateWorkOrderStatusCommandHandler(c.workOrderUoWFactory(), c.ledger, c.recorder, c.locks)
}

func (c *CompositionRoot) CreateReserveInventoryCommandHandler() commands.ReserveInventoryCommandHandler {
	return commands.NewReserveInventoryCommandHandler(c.ledger, c.auditUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateReleaseInventoryCommandHandler() commands.ReleaseInventoryCommandHandler {
	return commands.NewReleaseInventoryCommandHandler(c.ledger, c.auditUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateBootstrapCatalogCommandHandler() commands.BootstrapCatalogCommandHandler {
	return commands.NewBootstrapCatalogCommandHandler(c.ledger)
}

func (c *CompositionRoot) CreateReconcileInventoryQueryHandler() queries.ReconcileInventoryQueryHandler {
	return queries.NewReconcileInventoryQueryHandler(c.ledger)
}

// CreateHTTPHandlers collects every handler the HTTP adapter routes to.
func (c *CompositionRoot) CreateHTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateWorkOrder:       c.CreateCreateWorkOrderCommandHandler(),
		UpdateWorkOrderStatus: c.CreateUpdateWorkOrderStatusCommandHandler(),
		ReserveInventory:      c.CreateReserveInventoryCommandHandler(),
		ReleaseInventory:      c.CreateReleaseInventoryCommandHandler(),

		GetWorkOrder:              queries.NewGetWorkOrderQueryHandler(c.workOrders),
		ListWorkOrders:            queries.NewListWorkOrdersQueryHandler(c.workOrders),
		ListInventory:             queries.NewListInventoryQueryHandler(c.ledger),
		ListBranches:              queries.NewListBranchesQueryHandler(c.ledger),
		ListProducts:              queries.NewListProductsQueryHandler(c.ledger),
		ReconcileInventory:        c.CreateReconcileInventoryQueryHandler(),
		ListAuditEvents:           queries.NewListAuditEventsQueryHandler(c.recorder),
		ExportAuditEvents:         queries.NewExportAuditEventsQueryHandler(c.recorder, xlsx.NewExporter()),
		GetAuditEvent:             queries.NewGetAuditEventQueryHandler(c.recorder),
		GetAuditHistory:           queries.NewGetAuditHistoryQueryHandler(c.recorder),
		GetAuditEventsByUser:      queries.NewGetAuditEventsByUserQueryHandler(c.recorder),
		GetAuditEventsByDateRange: queries.NewGetAuditEventsByDateRangeQueryHandler(c.recorder),
	}
}

func (c *CompositionRoot) CreateServer() (*httpadapter.Server, error) {
	return httpadapter.NewServer(c.CreateHTTPHandlers(), c.storage.Idempotency, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileInventoryQueryHandler(), c.config.ReconcileSchedule, c.logger)
}

// BootstrapCatalog seeds the configured catalog. Rows that already exist are
// left untouched, so it runs on every start.
func (c *CompositionRoot) BootstrapCatalog(ctx context.Context) (ledger.BootstrapResult, error) {
	catalog, err := seed.Load(c.config.CatalogPath)
	if err != nil {
		return ledger.BootstrapResult{}, err
	}
	cmd, err := commands.NewBootstrapCatalogCommand(catalog)
	if err != nil {
		return ledger.BootstrapResult{}, err
	}
	return c.CreateBootstrapCatalogCommandHandler().Handle(ctx, cmd)
}
