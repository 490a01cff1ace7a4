// Package workorderrepo persists work order aggregates in the work_orders table.
package workorderrepo

import (
	"encoding/json"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"

	"github.com/google/uuid"
)

// WorkOrderDTO is one row of work_orders. Type and status are stored as
// their wire names; items as a JSON array of {productId, qty}.
type WorkOrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type               string    `gorm:"not null"`
	Status             string    `gorm:"not null;index"`
	CustomerID         string    `gorm:"not null"`
	BranchID           string
	PlanID             string
	AssignedTechUserID string
	Items              string    `gorm:"type:jsonb;not null"`
	Version            int       `gorm:"not null"`
	CreatedAt          time.Time `gorm:"not null;index"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

func fromDomain(wo *workorder.WorkOrder) (WorkOrderDTO, error) {
	id, err := uuid.Parse(wo.ID().String())
	if err != nil {
		return WorkOrderDTO{}, err
	}
	items, err := json.Marshal(kernel.LineItemSpecs(wo.Items()))
	if err != nil {
		return WorkOrderDTO{}, err
	}

	return WorkOrderDTO{
		ID:                 id,
		Type:               wo.Type().String(),
		Status:             wo.Status().String(),
		CustomerID:         wo.CustomerID(),
		BranchID:           wo.BranchID(),
		PlanID:             wo.PlanID(),
		AssignedTechUserID: wo.AssignedTechUserID(),
		Items:              string(items),
		Version:            wo.Version(),
		CreatedAt:          wo.CreatedAt(),
		UpdatedAt:          wo.UpdatedAt(),
	}, nil
}

func toDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}
	typ, err := workorder.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	status, err := workorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var specs []kernel.LineItemSpec
	if err = json.Unmarshal([]byte(dto.Items), &specs); err != nil {
		return nil, err
	}
	items, err := kernel.NewLineItems(specs)
	if err != nil {
		return nil, err
	}

	return workorder.RestoreWorkOrder(workorder.RestoreParams{
		ID:         id,
		Type:       typ,
		Status:     status,
		CustomerID: dto.CustomerID,
		Details: workorder.Details{
			BranchID:           dto.BranchID,
			PlanID:             dto.PlanID,
			AssignedTechUserID: dto.AssignedTechUserID,
			Items:              items,
		},
		Version:   dto.Version,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
