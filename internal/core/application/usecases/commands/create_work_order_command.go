package commands

import (
	"errors"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrCreateWorkOrderCommandIsNotConstructed = errors.New(
	"CreateWorkOrderCommand must be created via NewCreateWorkOrderCommand constructor",
)

// WorkOrderInput is the raw request to create a work order.
type WorkOrderInput struct {
	Type               string
	CustomerID         string
	BranchID           string
	PlanID             string
	AssignedTechUserID string
	Items              []kernel.LineItemSpec
}

// CreateWorkOrderCommand represents a request to open a new work order.
//
// Example:
//
//	cmd, err := NewCreateWorkOrderCommand(WorkOrderInput{
//	    Type:       "EQUIPMENT_ONLY_SALE",
//	    CustomerID: "cust-42",
//	    BranchID:   "br_main",
//	    Items:      []kernel.LineItemSpec{{ProductID: "p1", Qty: 3}},
//	}, NewCaller("u-7", "c_1f0c"))
//	if err != nil {
//	    return err
//	}
//	wo, err := handler.Handle(ctx, cmd)
type CreateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	typ        workorder.Type
	customerID string
	details    workorder.Details
	caller     Caller

	guard guard.ConstructorGuard
}

// NewCreateWorkOrderCommand parses the type and line items of in.
// Every invalid field is reported in the joined error.
func NewCreateWorkOrderCommand(in WorkOrderInput, caller Caller) (CreateWorkOrderCommand, error) {
	cmd := CreateWorkOrderCommand{
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setType(in.Type),
		cmd.setCustomerID(in.CustomerID),
		cmd.setDetails(in),
	); err != nil {
		return CreateWorkOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrderCommandIsNotConstructed)
}

func (c CreateWorkOrderCommand) Type() workorder.Type {
	return c.typ
}

func (c CreateWorkOrderCommand) CustomerID() string {
	return c.customerID
}

func (c CreateWorkOrderCommand) Details() workorder.Details {
	return c.details
}

func (c CreateWorkOrderCommand) Caller() Caller {
	return c.caller
}

func (c *CreateWorkOrderCommand) setType(raw string) error {
	typ, err := workorder.ParseType(raw)
	if err != nil {
		return err
	}
	c.typ = typ
	return nil
}

func (c *CreateWorkOrderCommand) setCustomerID(customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.customerID = customerID
	return nil
}

func (c *CreateWorkOrderCommand) setDetails(in WorkOrderInput) error {
	items, err := kernel.NewLineItems(in.Items)
	if err != nil {
		return err
	}
	c.details = workorder.Details{
		BranchID:           in.BranchID,
		PlanID:             in.PlanID,
		AssignedTechUserID: in.AssignedTechUserID,
		Items:              items,
	}
	return nil
}
