package http

import (
	"net/http"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// CreateWorkOrder handles POST /api/v1/work-orders.
func (s *Server) CreateWorkOrder(c echo.Context) error {
	var req CreateWorkOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateWorkOrderCommand(commands.WorkOrderInput{
		Type:               req.Type,
		CustomerID:         req.CustomerID,
		BranchID:           req.BranchID,
		PlanID:             req.PlanID,
		AssignedTechUserID: req.AssignedTechUserID,
		Items:              lineItemSpecs(req.Items),
	}, callerFrom(c))
	if err != nil {
		return err
	}

	wo, err := s.handlers.CreateWorkOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toWorkOrderResponse(queries.NewWorkOrderView(wo)))
}

// ListWorkOrders handles GET /api/v1/work-orders.
func (s *Server) ListWorkOrders(c echo.Context) error {
	views, err := s.handlers.ListWorkOrders.Handle(c.Request().Context(), queries.NewListWorkOrdersQuery())
	if err != nil {
		return err
	}

	response := make([]WorkOrderResponse, len(views))
	for i, v := range views {
		response[i] = toWorkOrderResponse(v)
	}
	return c.JSON(http.StatusOK, response)
}

// GetWorkOrder handles GET /api/v1/work-orders/:id.
func (s *Server) GetWorkOrder(c echo.Context) error {
	query, err := queries.NewGetWorkOrderQuery(c.Param("id"))
	if err != nil {
		return err
	}

	view, err := s.handlers.GetWorkOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkOrderResponse(view))
}

// UpdateWorkOrderStatus handles PATCH /api/v1/work-orders/:id/status.
func (s *Server) UpdateWorkOrderStatus(c echo.Context) error {
	var req UpdateWorkOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateWorkOrderStatusCommand(c.Param("id"), req.NewStatus, *req.BaseVersion, callerFrom(c))
	if err != nil {
		return err
	}

	wo, err := s.handlers.UpdateWorkOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkOrderResponse(queries.NewWorkOrderView(wo)))
}
