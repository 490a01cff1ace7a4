package commands

import (
	"context"
	"errors"

	"workorders/internal/core/application/auditlog"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/inventory"
)

// ReserveInventoryCommandHandler reserves stock through the ledger and
// records AUD-07. A failed audit append releases the reservation again.
type ReserveInventoryCommandHandler struct {
	ledger     InventoryLedger
	uowFactory AuditUoWFactory
	recorder   *auditlog.Recorder
}

func NewReserveInventoryCommandHandler(
	ledger InventoryLedger,
	uowFactory AuditUoWFactory,
	recorder *auditlog.Recorder,
) ReserveInventoryCommandHandler {
	return ReserveInventoryCommandHandler{
		ledger:     ledger,
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h ReserveInventoryCommandHandler) Handle(ctx context.Context, cmd ReserveInventoryCommand) (*inventory.Reservation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	res, err := h.ledger.Reserve(ctx, cmd.WorkOrderID(), cmd.BranchID(), cmd.Items())
	if err != nil {
		return nil, err
	}

	if err = recordInTx(ctx, h.uowFactory, h.recorder, auditlog.Entry{
		ActorUserID:   cmd.Caller().ActorUserID,
		Action:        audit.ActionInventoryReserved,
		EntityType:    audit.EntityReservation,
		EntityID:      res.WorkOrderID(),
		Before:        nil,
		After:         reservationSnapshot(res),
		CorrelationID: cmd.Caller().CorrelationID,
	}); err != nil {
		_, undoErr := h.ledger.Release(ctx, res.WorkOrderID())
		return nil, errors.Join(err, undoErr)
	}

	return res, nil
}

// ReleaseInventoryCommandHandler releases stock through the ledger and
// records AUD-08. A failed audit append reserves the released items again.
// Unlike the orchestrator it reports ReservationNotFound to the caller.
type ReleaseInventoryCommandHandler struct {
	ledger     InventoryLedger
	uowFactory AuditUoWFactory
	recorder   *auditlog.Recorder
}

func NewReleaseInventoryCommandHandler(
	ledger InventoryLedger,
	uowFactory AuditUoWFactory,
	recorder *auditlog.Recorder,
) ReleaseInventoryCommandHandler {
	return ReleaseInventoryCommandHandler{
		ledger:     ledger,
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h ReleaseInventoryCommandHandler) Handle(ctx context.Context, cmd ReleaseInventoryCommand) (*inventory.Reservation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	res, err := h.ledger.Release(ctx, cmd.WorkOrderID())
	if err != nil {
		return nil, err
	}

	if err = recordInTx(ctx, h.uowFactory, h.recorder, auditlog.Entry{
		ActorUserID:   cmd.Caller().ActorUserID,
		Action:        audit.ActionInventoryReleased,
		EntityType:    audit.EntityReservation,
		EntityID:      res.WorkOrderID(),
		Before:        reservationSnapshot(res),
		After:         nil,
		CorrelationID: cmd.Caller().CorrelationID,
	}); err != nil {
		_, undoErr := h.ledger.Reserve(ctx, res.WorkOrderID(), res.BranchID(), res.Items())
		return nil, errors.Join(err, undoErr)
	}

	return res, nil
}

func recordInTx(ctx context.Context, uowFactory AuditUoWFactory, recorder *auditlog.Recorder, entry auditlog.Entry) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := recorder.WithRepository(uow.AuditRepository()).Record(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
