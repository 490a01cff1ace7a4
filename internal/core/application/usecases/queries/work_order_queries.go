package queries

import (
	"context"
	"errors"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/guard"
)

var (
	ErrGetWorkOrderQueryIsNotConstructed = errors.New(
		"GetWorkOrderQuery must be created via NewGetWorkOrderQuery constructor",
	)
	ErrListWorkOrdersQueryIsNotConstructed = errors.New(
		"ListWorkOrdersQuery must be created via NewListWorkOrdersQuery constructor",
	)
)

// WorkOrderView is a work order with the statuses it may move to next.
type WorkOrderView struct {
	ID                 string
	Type               string
	Status             string
	CustomerID         string
	BranchID           string
	PlanID             string
	AssignedTechUserID string
	Items              []kernel.LineItemSpec
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	AllowedTransitions []string
}

func NewWorkOrderView(wo *workorder.WorkOrder) WorkOrderView {
	return WorkOrderView{
		ID:                 wo.ID().String(),
		Type:               wo.Type().String(),
		Status:             wo.Status().String(),
		CustomerID:         wo.CustomerID(),
		BranchID:           wo.BranchID(),
		PlanID:             wo.PlanID(),
		AssignedTechUserID: wo.AssignedTechUserID(),
		Items:              kernel.LineItemSpecs(wo.Items()),
		Version:            wo.Version(),
		CreatedAt:          wo.CreatedAt(),
		UpdatedAt:          wo.UpdatedAt(),
		AllowedTransitions: workorder.StatusNames(wo.AllowedTransitions()),
	}
}

// GetWorkOrderQuery loads one work order by id.
//
// Example:
//
//	query, err := NewGetWorkOrderQuery(c.Param("id"))
//	if err != nil {
//	    return err // ValueIsInvalidError
//	}
//	view, err := handler.Handle(ctx, query)
type GetWorkOrderQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetWorkOrderQuery(id string) (GetWorkOrderQuery, error) {
	parsed, err := kernel.UUIDFromString(id)
	if err != nil {
		return GetWorkOrderQuery{}, err
	}
	return GetWorkOrderQuery{id: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWorkOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderQueryIsNotConstructed)
}

func (q GetWorkOrderQuery) ID() kernel.UUID {
	return q.id
}

type GetWorkOrderQueryHandler struct {
	reader WorkOrderReader
}

func NewGetWorkOrderQueryHandler(reader WorkOrderReader) GetWorkOrderQueryHandler {
	return GetWorkOrderQueryHandler{reader: reader}
}

// Handle returns the view or errs.ObjectNotFoundError.
func (h GetWorkOrderQueryHandler) Handle(ctx context.Context, query GetWorkOrderQuery) (WorkOrderView, error) {
	if err := query.Validate(); err != nil {
		return WorkOrderView{}, err
	}

	wo, err := h.reader.Get(ctx, query.ID())
	if err != nil {
		return WorkOrderView{}, err
	}
	return NewWorkOrderView(wo), nil
}

// ListWorkOrdersQuery lists every work order, newest first.
type ListWorkOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListWorkOrdersQuery() ListWorkOrdersQuery {
	return ListWorkOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListWorkOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkOrdersQueryIsNotConstructed)
}

type ListWorkOrdersQueryHandler struct {
	reader WorkOrderReader
}

func NewListWorkOrdersQueryHandler(reader WorkOrderReader) ListWorkOrdersQueryHandler {
	return ListWorkOrdersQueryHandler{reader: reader}
}

func (h ListWorkOrdersQueryHandler) Handle(ctx context.Context, query ListWorkOrdersQuery) ([]WorkOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]WorkOrderView, 0, len(orders))
	for _, wo := range orders {
		views = append(views, NewWorkOrderView(wo))
	}
	return views, nil
}
