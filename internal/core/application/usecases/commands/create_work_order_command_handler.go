package commands

import (
	"context"
	"time"

	"workorders/internal/core/application/auditlog"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
)

// CreateWorkOrderCommandHandler opens work orders in Draft and records the
// creation in the audit trail within the same unit of work.
//
// Example:
//
//	handler := NewCreateWorkOrderCommandHandler(uowFactory, recorder)
//	wo, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("work order creation failed: %w", err)
//	}
//	// wo.Status() == workorder.Draft, wo.Version() == 0
type CreateWorkOrderCommandHandler struct {
	uowFactory WorkOrderUoWFactory
	recorder   *auditlog.Recorder
	now        func() time.Time
}

func NewCreateWorkOrderCommandHandler(uowFactory WorkOrderUoWFactory, recorder *auditlog.Recorder) CreateWorkOrderCommandHandler {
	return CreateWorkOrderCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
		now:        time.Now,
	}
}

// Handle creates the work order and appends an AUD-05 event with no before
// snapshot and the full work order as after snapshot.
func (h CreateWorkOrderCommandHandler) Handle(ctx context.Context, cmd CreateWorkOrderCommand) (*workorder.WorkOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), cmd.Type(), cmd.CustomerID(), cmd.Details(), h.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WorkOrderRepository().Add(ctx, wo); err != nil {
		return nil, err
	}

	if _, err = h.recorder.WithRepository(uow.AuditRepository()).Record(ctx, auditlog.Entry{
		ActorUserID:   cmd.Caller().ActorUserID,
		Action:        audit.ActionWorkOrderCreated,
		EntityType:    audit.EntityWorkOrder,
		EntityID:      wo.ID().String(),
		Before:        nil,
		After:         workOrderSnapshot(wo),
		CorrelationID: cmd.Caller().CorrelationID,
	}); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return wo, nil
}
