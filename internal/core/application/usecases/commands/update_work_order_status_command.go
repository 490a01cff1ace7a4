package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrUpdateWorkOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateWorkOrderStatusCommand must be created via NewUpdateWorkOrderStatusCommand constructor",
)

// UpdateWorkOrderStatusCommand asks to move a work order to a new status.
// BaseVersion is the version the caller last read; it must still be current.
//
// Example:
//
//	cmd, err := NewUpdateWorkOrderStatusCommand(id, "SUBMITTED", 0, caller)
type UpdateWorkOrderStatusCommand struct { //nolint:recvcheck //using for validation
	workOrderID kernel.UUID
	status      workorder.Status
	baseVersion int
	caller      Caller

	guard guard.ConstructorGuard
}

func NewUpdateWorkOrderStatusCommand(
	workOrderID string,
	status string,
	baseVersion int,
	caller Caller,
) (UpdateWorkOrderStatusCommand, error) {
	cmd := UpdateWorkOrderStatusCommand{
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWorkOrderID(workOrderID),
		cmd.setStatus(status),
		cmd.setBaseVersion(baseVersion),
	); err != nil {
		return UpdateWorkOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateWorkOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateWorkOrderStatusCommandIsNotConstructed)
}

func (c UpdateWorkOrderStatusCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

func (c UpdateWorkOrderStatusCommand) Status() workorder.Status {
	return c.status
}

func (c UpdateWorkOrderStatusCommand) BaseVersion() int {
	return c.baseVersion
}

func (c UpdateWorkOrderStatusCommand) Caller() Caller {
	return c.caller
}

func (c *UpdateWorkOrderStatusCommand) setWorkOrderID(raw string) error {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return err
	}
	c.workOrderID = id
	return nil
}

func (c *UpdateWorkOrderStatusCommand) setStatus(raw string) error {
	status, err := workorder.ParseStatus(raw)
	if err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *UpdateWorkOrderStatusCommand) setBaseVersion(baseVersion int) error {
	if baseVersion < 0 {
		return errs.NewValueIsOutOfRangeError("baseVersion", baseVersion, 0, "unbounded")
	}
	c.baseVersion = baseVersion
	return nil
}
