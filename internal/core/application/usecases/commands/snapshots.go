package commands

import (
	"time"

	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
)

func workOrderSnapshot(wo *workorder.WorkOrder) audit.Snapshot {
	s := audit.Snapshot{
		"id":         wo.ID().String(),
		"type":       wo.Type().String(),
		"status":     wo.Status().String(),
		"customerId": wo.CustomerID(),
		"version":    wo.Version(),
		"items":      itemsSnapshot(wo.Items()),
		"createdAt":  wo.CreatedAt().Format(time.RFC3339Nano),
		"updatedAt":  wo.UpdatedAt().Format(time.RFC3339Nano),
	}
	if wo.BranchID() != "" {
		s["branchId"] = wo.BranchID()
	}
	if wo.PlanID() != "" {
		s["planId"] = wo.PlanID()
	}
	if wo.AssignedTechUserID() != "" {
		s["assignedTechUserId"] = wo.AssignedTechUserID()
	}
	return s
}

func statusSnapshot(status workorder.Status, version int) audit.Snapshot {
	return audit.Snapshot{
		"status":  status.String(),
		"version": version,
	}
}

func reservationSnapshot(res *inventory.Reservation) audit.Snapshot {
	return audit.Snapshot{
		"workOrderId": res.WorkOrderID(),
		"branchId":    res.BranchID(),
		"items":       itemsSnapshot(res.Items()),
		"reservedAt":  res.ReservedAt().Format(time.RFC3339Nano),
	}
}

func itemsSnapshot(items []kernel.LineItem) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any{"productId": item.ProductID(), "qty": item.Qty()})
	}
	return out
}
