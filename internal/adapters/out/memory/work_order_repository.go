package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
)

type WorkOrderRepository struct {
	uow *UnitOfWork
}

func (r *WorkOrderRepository) Add(_ context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	wo := aggregate.Clone()
	id := wo.ID().String()
	return r.uow.write(func(st *state) (func(), error) {
		if _, ok := st.workOrders[id]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("work order %s already exists", id))
		}
		st.workOrders[id] = wo
		return func() { delete(st.workOrders, id) }, nil
	})
}

// Update replaces the stored order if its version still equals baseVersion.
func (r *WorkOrderRepository) Update(_ context.Context, aggregate *workorder.WorkOrder, baseVersion int) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	wo := aggregate.Clone()
	id := wo.ID().String()
	return r.uow.write(func(st *state) (func(), error) {
		prev, ok := st.workOrders[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("workOrder", id)
		}
		if prev.Version() != baseVersion {
			return nil, errs.NewVersionConflictError("WorkOrder", id, baseVersion, prev.Version())
		}
		st.workOrders[id] = wo
		return func() { st.workOrders[id] = prev }, nil
	})
}

func (r *WorkOrderRepository) Get(_ context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var wo *workorder.WorkOrder
	r.uow.store.read(func(st *state) {
		if stored, ok := st.workOrders[id.String()]; ok {
			wo = stored.Clone()
		}
	})
	if wo == nil {
		return nil, errs.NewObjectNotFoundError("workOrder", id.String())
	}
	return wo, nil
}

func (r *WorkOrderRepository) List(_ context.Context) ([]*workorder.WorkOrder, error) {
	var out []*workorder.WorkOrder
	r.uow.store.read(func(st *state) {
		out = make([]*workorder.WorkOrder, 0, len(st.workOrders))
		for _, wo := range st.workOrders {
			out = append(out, wo.Clone())
		}
	})
	slices.SortFunc(out, func(a, b *workorder.WorkOrder) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return strings.Compare(b.ID().String(), a.ID().String())
	})
	return out, nil
}
