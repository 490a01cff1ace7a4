package commands

import (
	"errors"
	"strings"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrReserveInventoryCommandIsNotConstructed = errors.New(
	"ReserveInventoryCommand must be created via NewReserveInventoryCommand constructor",
)

// ReserveInventoryCommand holds stock for a work order outside the status flow.
type ReserveInventoryCommand struct { //nolint:recvcheck //using for validation
	workOrderID string
	branchID    string
	items       []kernel.LineItem
	caller      Caller

	guard guard.ConstructorGuard
}

func NewReserveInventoryCommand(
	workOrderID string,
	branchID string,
	items []kernel.LineItemSpec,
	caller Caller,
) (ReserveInventoryCommand, error) {
	cmd := ReserveInventoryCommand{
		workOrderID: strings.TrimSpace(workOrderID),
		branchID:    strings.TrimSpace(branchID),
		caller:      caller,
		guard:       guard.NewConstructorGuard(),
	}

	lineItems, err := kernel.NewLineItems(items)
	if err != nil {
		return ReserveInventoryCommand{}, err
	}
	if err = inventory.ValidateRequest(cmd.workOrderID, cmd.branchID, lineItems); err != nil {
		return ReserveInventoryCommand{}, err
	}
	cmd.items = lineItems

	return cmd, nil
}

func (c ReserveInventoryCommand) Validate() error {
	return c.guard.Validate(ErrReserveInventoryCommandIsNotConstructed)
}

func (c ReserveInventoryCommand) WorkOrderID() string {
	return c.workOrderID
}

func (c ReserveInventoryCommand) BranchID() string {
	return c.branchID
}

func (c ReserveInventoryCommand) Items() []kernel.LineItem {
	return append([]kernel.LineItem(nil), c.items...)
}

func (c ReserveInventoryCommand) Caller() Caller {
	return c.caller
}

var ErrReleaseInventoryCommandIsNotConstructed = errors.New(
	"ReleaseInventoryCommand must be created via NewReleaseInventoryCommand constructor",
)

// ReleaseInventoryCommand gives back the stock held for a work order.
type ReleaseInventoryCommand struct { //nolint:recvcheck //using for validation
	workOrderID string
	caller      Caller

	guard guard.ConstructorGuard
}

func NewReleaseInventoryCommand(workOrderID string, caller Caller) (ReleaseInventoryCommand, error) {
	workOrderID = strings.TrimSpace(workOrderID)
	if workOrderID == "" {
		return ReleaseInventoryCommand{}, errs.NewValueIsRequiredError("workOrderId")
	}

	return ReleaseInventoryCommand{
		workOrderID: workOrderID,
		caller:      caller,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseInventoryCommand) Validate() error {
	return c.guard.Validate(ErrReleaseInventoryCommandIsNotConstructed)
}

func (c ReleaseInventoryCommand) WorkOrderID() string {
	return c.workOrderID
}

func (c ReleaseInventoryCommand) Caller() Caller {
	return c.caller
}
