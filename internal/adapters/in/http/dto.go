package http

import (
	"time"

	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"

	"github.com/go-playground/validator/v10"
)

type (
	LineItemRequest struct {
		ProductID string `json:"productId" validate:"required"`
		Qty       int    `json:"qty" validate:"gt=0"`
	}

	CreateWorkOrderRequest struct {
		Type               string            `json:"type" validate:"required"`
		CustomerID         string            `json:"customerId" validate:"required"`
		BranchID           string            `json:"branchId"`
		PlanID             string            `json:"planId"`
		AssignedTechUserID string            `json:"assignedTechUserId"`
		Items              []LineItemRequest `json:"items" validate:"dive"`
	}

	UpdateWorkOrderStatusRequest struct {
		NewStatus   string `json:"newStatus" validate:"required"`
		BaseVersion *int   `json:"baseVersion" validate:"required,gte=0"`
	}

	ReserveInventoryRequest struct {
		WorkOrderID string            `json:"workOrderId" validate:"required"`
		BranchID    string            `json:"branchId" validate:"required"`
		Items       []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	}
)

func lineItemSpecs(items []LineItemRequest) []kernel.LineItemSpec {
	specs := make([]kernel.LineItemSpec, 0, len(items))
	for _, item := range items {
		specs = append(specs, kernel.LineItemSpec{ProductID: item.ProductID, Qty: item.Qty})
	}
	return specs
}

type (
	WorkOrderResponse struct {
		ID                 string                `json:"id"`
		Type               string                `json:"type"`
		Status             string                `json:"status"`
		CustomerID         string                `json:"customerId"`
		BranchID           string                `json:"branchId,omitempty"`
		PlanID             string                `json:"planId,omitempty"`
		AssignedTechUserID string                `json:"assignedTechUserId,omitempty"`
		Items              []kernel.LineItemSpec `json:"items"`
		Version            int                   `json:"version"`
		CreatedAt          time.Time             `json:"createdAt"`
		UpdatedAt          time.Time             `json:"updatedAt"`
		AllowedTransitions []string              `json:"allowedTransitions"`
	}

	StockResponse struct {
		BranchID     string    `json:"branchId"`
		ProductID    string    `json:"productId"`
		ProductName  string    `json:"productName"`
		QtyAvailable int       `json:"qtyAvailable"`
		QtyReserved  int       `json:"qtyReserved"`
		UpdatedAt    time.Time `json:"updatedAt"`
	}

	ReservationResponse struct {
		WorkOrderID string                `json:"workOrderId"`
		BranchID    string                `json:"branchId"`
		Items       []kernel.LineItemSpec `json:"items"`
		ReservedAt  time.Time             `json:"reservedAt"`
	}

	AuditEventResponse struct {
		ID            string         `json:"id"`
		At            time.Time      `json:"at"`
		ActorUserID   *string        `json:"actorUserId"`
		Action        string         `json:"action"`
		EntityType    string         `json:"entityType"`
		EntityID      string         `json:"entityId"`
		Before        audit.Snapshot `json:"before"`
		After         audit.Snapshot `json:"after"`
		CorrelationID string         `json:"correlationId"`
	}

	Pagination struct {
		Total   int  `json:"total"`
		Limit   int  `json:"limit"`
		Offset  int  `json:"offset"`
		HasMore bool `json:"hasMore"`
	}

	AuditPageResponse struct {
		Items      []AuditEventResponse `json:"items"`
		Pagination Pagination           `json:"pagination"`
	}

	AuditListResponse struct {
		Events []AuditEventResponse `json:"events"`
		Total  int                  `json:"total"`
	}
)

func toWorkOrderResponse(v queries.WorkOrderView) WorkOrderResponse {
	return WorkOrderResponse{
		ID:                 v.ID,
		Type:               v.Type,
		Status:             v.Status,
		CustomerID:         v.CustomerID,
		BranchID:           v.BranchID,
		PlanID:             v.PlanID,
		AssignedTechUserID: v.AssignedTechUserID,
		Items:              v.Items,
		Version:            v.Version,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		AllowedTransitions: v.AllowedTransitions,
	}
}

func toStockResponses(views []inventory.StockView) []StockResponse {
	out := make([]StockResponse, 0, len(views))
	for _, v := range views {
		out = append(out, StockResponse{
			BranchID:     v.BranchID,
			ProductID:    v.ProductID,
			ProductName:  v.ProductName,
			QtyAvailable: v.QtyAvailable,
			QtyReserved:  v.QtyReserved,
			UpdatedAt:    v.UpdatedAt,
		})
	}
	return out
}

func toReservationResponse(res *inventory.Reservation) ReservationResponse {
	return ReservationResponse{
		WorkOrderID: res.WorkOrderID(),
		BranchID:    res.BranchID(),
		Items:       kernel.LineItemSpecs(res.Items()),
		ReservedAt:  res.ReservedAt(),
	}
}

func toAuditEventResponse(e *audit.Event) AuditEventResponse {
	var actorUserID *string
	if e.ActorUserID != "" {
		actorUserID = &e.ActorUserID
	}
	return AuditEventResponse{
		ID:            e.ID,
		At:            e.At,
		ActorUserID:   actorUserID,
		Action:        e.Action.String(),
		EntityType:    e.EntityType,
		EntityID:      e.EntityID,
		Before:        e.Before,
		After:         e.After,
		CorrelationID: e.CorrelationID,
	}
}

func toAuditEventResponses(events []*audit.Event) []AuditEventResponse {
	out := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toAuditEventResponse(e))
	}
	return out
}

// structValidator adapts validator/v10 to echo.Validator.
type structValidator struct {
	validate *validator.Validate
}

func newStructValidator() *structValidator {
	return &structValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *structValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
