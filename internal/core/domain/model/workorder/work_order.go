package workorder

import (
	"errors"
	"slices"
	"strings"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder or RestoreWorkOrder")

// Details carries the optional attributes of a work order. Empty strings
// mean absent.
type Details struct {
	BranchID           string
	PlanID             string
	AssignedTechUserID string
	Items              []kernel.LineItem
}

// WorkOrder is the aggregate root of the orchestrator.
//
// Invariants:
//   - A new work order starts in Draft with version 0
//   - Status only changes through ChangeStatus, which validates the move and
//     increments version by exactly one
//   - Items are fixed at creation, each with a positive quantity
//
// WorkOrder is not safe for concurrent mutation; callers serialise writes per id.
type WorkOrder struct {
	id                 kernel.UUID
	typ                Type
	status             Status
	customerID         string
	branchID           string
	planID             string
	assignedTechUserID string
	version            int
	items              []kernel.LineItem
	createdAt          time.Time
	updatedAt          time.Time

	guard guard.ConstructorGuard
}

// NewWorkOrder creates a work order in Draft with version 0.
//
// Parameters:
//   - id: identifier, must be a constructed UUID
//   - typ: one of the seven workflow types
//   - customerID: required, whitespace is trimmed
//   - details: optional branch, plan, technician and line items
//   - now: creation time, also used as updatedAt
//
// Returns:
//   - the new work order
//   - a joined error of every invalid argument
//
// Example:
//
//	item, _ := kernel.NewLineItem("p1", 3)
//	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), workorder.TypeEquipmentOnlySale, "cust-42",
//	    workorder.Details{BranchID: "br_main", Items: []kernel.LineItem{item}}, time.Now())
func NewWorkOrder(id kernel.UUID, typ Type, customerID string, details Details, now time.Time) (*WorkOrder, error) {
	wo := &WorkOrder{
		status:    Draft,
		version:   0,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		wo.setID(id),
		wo.setType(typ),
		wo.setCustomerID(customerID),
		wo.setDetails(details),
	); err != nil {
		return nil, err
	}

	return wo, nil
}

// RestoreParams is the persisted state of a work order.
type RestoreParams struct {
	ID         kernel.UUID
	Type       Type
	Status     Status
	CustomerID string
	Details    Details
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RestoreWorkOrder rebuilds a work order loaded from storage. It validates
// the same fields as NewWorkOrder plus status and version.
func RestoreWorkOrder(p RestoreParams) (*WorkOrder, error) {
	wo := &WorkOrder{
		createdAt: p.CreatedAt.UTC(),
		updatedAt: p.UpdatedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		wo.setID(p.ID),
		wo.setType(p.Type),
		wo.setStatus(p.Status),
		wo.setVersion(p.Version),
		wo.setCustomerID(p.CustomerID),
		wo.setDetails(p.Details),
	); err != nil {
		return nil, err
	}

	return wo, nil
}

func (w *WorkOrder) Validate() error {
	if w == nil {
		return ErrWorkOrderIsNotConstructed
	}
	return w.guard.Validate(ErrWorkOrderIsNotConstructed)
}

func (w *WorkOrder) ID() kernel.UUID {
	return w.id
}

func (w *WorkOrder) Type() Type {
	return w.typ
}

func (w *WorkOrder) Status() Status {
	return w.status
}

func (w *WorkOrder) CustomerID() string {
	return w.customerID
}

func (w *WorkOrder) BranchID() string {
	return w.branchID
}

func (w *WorkOrder) PlanID() string {
	return w.planID
}

func (w *WorkOrder) AssignedTechUserID() string {
	return w.assignedTechUserID
}

func (w *WorkOrder) Version() int {
	return w.version
}

// Items returns a copy of the line items in their original order.
func (w *WorkOrder) Items() []kernel.LineItem {
	return slices.Clone(w.items)
}

func (w *WorkOrder) HasItems() bool {
	return len(w.items) > 0
}

func (w *WorkOrder) CreatedAt() time.Time {
	return w.createdAt
}

func (w *WorkOrder) UpdatedAt() time.Time {
	return w.updatedAt
}

// AllowedTransitions lists the statuses this work order may move to next.
func (w *WorkOrder) AllowedTransitions() []Status {
	return AllowedTransitions(w.typ, w.status)
}

// ChangeStatus moves the work order to a new status.
//
// The move is checked with ValidateTransition. On success the version is
// incremented by one and updatedAt set to at. On failure nothing changes.
//
// Example:
//
//	if err := wo.ChangeStatus(workorder.Submitted, time.Now()); err != nil {
//	    return err // *errs.InvalidTransitionError
//	}
func (w *WorkOrder) ChangeStatus(to Status, at time.Time) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if err := ValidateTransition(w.typ, w.status, to); err != nil {
		return err
	}

	w.status = to
	w.version++
	w.updatedAt = at.UTC()
	return nil
}

// Clone returns an independent copy.
func (w *WorkOrder) Clone() *WorkOrder {
	cp := *w
	cp.items = slices.Clone(w.items)
	return &cp
}

func (w *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	w.id = id
	return nil
}

func (w *WorkOrder) setType(typ Type) error {
	if err := typ.Validate(); err != nil {
		return err
	}
	w.typ = typ
	return nil
}

func (w *WorkOrder) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	w.status = status
	return nil
}

func (w *WorkOrder) setVersion(version int) error {
	if version < 0 {
		return errs.NewValueIsOutOfRangeError("version", version, 0, "unbounded")
	}
	w.version = version
	return nil
}

func (w *WorkOrder) setCustomerID(customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	w.customerID = customerID
	return nil
}

func (w *WorkOrder) setDetails(d Details) error {
	for _, item := range d.Items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", err)
		}
	}
	w.branchID = strings.TrimSpace(d.BranchID)
	w.planID = strings.TrimSpace(d.PlanID)
	w.assignedTechUserID = strings.TrimSpace(d.AssignedTechUserID)
	w.items = slices.Clone(d.Items)
	return nil
}
