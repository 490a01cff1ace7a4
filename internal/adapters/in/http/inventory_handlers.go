package http

import (
	"net/http"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/inventory"

	"github.com/labstack/echo/v4"
)

// ListInventory handles GET /api/v1/inventory?branchId=.
func (s *Server) ListInventory(c echo.Context) error {
	query, err := queries.NewListInventoryQuery(c.QueryParam("branchId"))
	if err != nil {
		return err
	}

	views, err := s.handlers.ListInventory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStockResponses(views))
}

// ListBranches handles GET /api/v1/inventory/branches.
func (s *Server) ListBranches(c echo.Context) error {
	branches, err := s.handlers.ListBranches.Handle(c.Request().Context(), queries.NewCatalogQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, branches)
}

// ListProducts handles GET /api/v1/inventory/products.
func (s *Server) ListProducts(c echo.Context) error {
	products, err := s.handlers.ListProducts.Handle(c.Request().Context(), queries.NewCatalogQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ReconcileInventory handles GET /api/v1/inventory/reconciliation.
func (s *Server) ReconcileInventory(c echo.Context) error {
	report, err := s.handlers.ReconcileInventory.Handle(c.Request().Context(), queries.NewReconcileInventoryQuery())
	if err != nil {
		return err
	}
	if report.Discrepancies == nil {
		report.Discrepancies = []inventory.Discrepancy{}
	}
	return c.JSON(http.StatusOK, report)
}

// ReserveInventory handles POST /api/v1/inventory/reservations.
func (s *Server) ReserveInventory(c echo.Context) error {
	var req ReserveInventoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewReserveInventoryCommand(req.WorkOrderID, req.BranchID, lineItemSpecs(req.Items), callerFrom(c))
	if err != nil {
		return err
	}

	res, err := s.handlers.ReserveInventory.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReservationResponse(res))
}

// ReleaseInventory handles DELETE /api/v1/inventory/reservations/:workOrderId.
func (s *Server) ReleaseInventory(c echo.Context) error {
	cmd, err := commands.NewReleaseInventoryCommand(c.Param("workOrderId"), callerFrom(c))
	if err != nil {
		return err
	}

	res, err := s.handlers.ReleaseInventory.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReservationResponse(res))
}
