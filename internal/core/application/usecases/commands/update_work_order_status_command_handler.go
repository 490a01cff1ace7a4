package commands

import (
	"context"
	"errors"
	"time"

	"workorders/internal/core/application/auditlog"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/keylock"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// UpdateWorkOrderStatusCommandHandler is the work order orchestrator.
//
// For one work order the handler runs, under a per-order lock:
//  1. load the order (NotFound)
//  2. compare the base version (VersionConflict) before anything else
//  3. validate the transition (InvalidTransition)
//  4. reserve stock when entering INVENTORY_RESERVATION with items
//     (InsufficientStock becomes StockInsufficient)
//  5. release stock when entering CANCELLED (ReservationNotFound is ignored)
//  6. change the status, store it and append the AUD-06 event in one unit of work
//
// If step 6 fails after a ledger side effect, the side effect is undone and
// the compensation error, if any, is joined to the commit error.
//
// Example:
//
//	handler := NewUpdateWorkOrderStatusCommandHandler(uowFactory, ledger, recorder, locks)
//	wo, err := handler.Handle(ctx, cmd)
//	switch errs.KindOf(err) {
//	case errs.KindVersionConflict:
//	    // reload and retry with the new version
//	}
type UpdateWorkOrderStatusCommandHandler struct {
	uowFactory WorkOrderUoWFactory
	ledger     InventoryLedger
	recorder   *auditlog.Recorder
	locks      *keylock.Locker
	metrics    orchestratorMetrics
	now        func() time.Time
}

// NewUpdateWorkOrderStatusCommandHandler builds the orchestrator. A nil locker
// gets a private one; handlers created over the same store must share it.
func NewUpdateWorkOrderStatusCommandHandler(
	uowFactory WorkOrderUoWFactory,
	ledger InventoryLedger,
	recorder *auditlog.Recorder,
	locks *keylock.Locker,
) UpdateWorkOrderStatusCommandHandler {
	if locks == nil {
		locks = keylock.New()
	}
	return UpdateWorkOrderStatusCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		recorder:   recorder,
		locks:      locks,
		metrics:    newOrchestratorMetrics(),
		now:        time.Now,
	}
}

func workOrderKey(id string) string {
	return "workorder:" + id
}

func (h UpdateWorkOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateWorkOrderStatusCommand) (*workorder.WorkOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id := cmd.WorkOrderID().String()
	ctx, span := h.metrics.start(ctx, "workorder.update_status",
		attribute.String("work_order.id", id),
		attribute.String("work_order.target_status", cmd.Status().String()),
	)
	defer span.End()

	unlock := h.locks.Lock(workOrderKey(id))
	defer unlock()

	from := workorder.StatusUnknown
	wo, err := h.handle(ctx, cmd, &from)
	h.metrics.update(ctx, from.String(), cmd.Status().String(), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errs.KindOf(err).String())
		return nil, err
	}
	return wo, nil
}

func (h UpdateWorkOrderStatusCommandHandler) handle(
	ctx context.Context,
	cmd UpdateWorkOrderStatusCommand,
	from *workorder.Status,
) (*workorder.WorkOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	wo, err := uow.WorkOrderRepository().Get(ctx, cmd.WorkOrderID())
	if err != nil {
		return nil, err
	}
	*from = wo.Status()

	if wo.Version() != cmd.BaseVersion() {
		return nil, errs.NewVersionConflictError(audit.EntityWorkOrder, wo.ID().String(), cmd.BaseVersion(), wo.Version())
	}

	to := cmd.Status()
	if err = workorder.ValidateTransition(wo.Type(), wo.Status(), to); err != nil {
		return nil, err
	}

	compensate, err := h.applySideEffect(ctx, wo, to)
	if err != nil {
		return nil, err
	}

	updated, err := h.commit(ctx, uow, wo, cmd)
	if err != nil {
		if compensate != nil {
			return nil, errors.Join(err, compensate(ctx))
		}
		return nil, err
	}

	return updated, nil
}

func (h UpdateWorkOrderStatusCommandHandler) commit(
	ctx context.Context,
	uow WorkOrderUoW,
	wo *workorder.WorkOrder,
	cmd UpdateWorkOrderStatusCommand,
) (*workorder.WorkOrder, error) {
	before := statusSnapshot(wo.Status(), wo.Version())

	updated := wo.Clone()
	if err := updated.ChangeStatus(cmd.Status(), h.now()); err != nil {
		return nil, err
	}

	if err := uow.WorkOrderRepository().Update(ctx, updated, cmd.BaseVersion()); err != nil {
		return nil, err
	}

	if _, err := h.recorder.WithRepository(uow.AuditRepository()).Record(ctx, auditlog.Entry{
		ActorUserID:   cmd.Caller().ActorUserID,
		Action:        audit.ActionWorkOrderStatus,
		EntityType:    audit.EntityWorkOrder,
		EntityID:      updated.ID().String(),
		Before:        before,
		After:         statusSnapshot(updated.Status(), updated.Version()),
		CorrelationID: cmd.Caller().CorrelationID,
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

type compensation func(ctx context.Context) error

// applySideEffect calls the ledger for the target status and returns the
// action that undoes it, or nil when nothing changed.
func (h UpdateWorkOrderStatusCommandHandler) applySideEffect(
	ctx context.Context,
	wo *workorder.WorkOrder,
	to workorder.Status,
) (compensation, error) {
	id := wo.ID().String()

	switch {
	case to == workorder.InventoryReservation && wo.HasItems():
		_, err := h.ledger.Reserve(ctx, id, wo.BranchID(), wo.Items())
		h.metrics.sideEffect(ctx, "reserve", err)

		var shortage *errs.InsufficientStockError
		if errors.As(err, &shortage) {
			return nil, errs.NewStockInsufficientError(id, shortage)
		}
		if err != nil {
			return nil, err
		}

		return func(ctx context.Context) error {
			_, err := h.ledger.Release(ctx, id)
			h.metrics.compensation(ctx, "release", err)
			return err
		}, nil

	case to == workorder.Cancelled:
		released, err := h.ledger.Release(ctx, id)
		h.metrics.sideEffect(ctx, "release", err)

		if errors.Is(err, errs.ErrReservationNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		return func(ctx context.Context) error {
			_, err := h.ledger.Reserve(ctx, released.WorkOrderID(), released.BranchID(), released.Items())
			h.metrics.compensation(ctx, "reserve", err)
			return err
		}, nil
	}

	return nil, nil
}
