// Package http exposes the work order, inventory and audit use cases over
// REST with echo.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/ports"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlers groups the use cases served by Server.
type Handlers struct {
	// Command handlers
	CreateWorkOrder       commands.CreateWorkOrderCommandHandler
	UpdateWorkOrderStatus commands.UpdateWorkOrderStatusCommandHandler
	ReserveInventory      commands.ReserveInventoryCommandHandler
	ReleaseInventory      commands.ReleaseInventoryCommandHandler

	// Query handlers
	GetWorkOrder              queries.GetWorkOrderQueryHandler
	ListWorkOrders            queries.ListWorkOrdersQueryHandler
	ListInventory             queries.ListInventoryQueryHandler
	ListBranches              queries.ListBranchesQueryHandler
	ListProducts              queries.ListProductsQueryHandler
	ReconcileInventory        queries.ReconcileInventoryQueryHandler
	ListAuditEvents           queries.ListAuditEventsQueryHandler
	ExportAuditEvents         queries.ExportAuditEventsQueryHandler
	GetAuditEvent             queries.GetAuditEventQueryHandler
	GetAuditHistory           queries.GetAuditHistoryQueryHandler
	GetAuditEventsByUser      queries.GetAuditEventsByUserQueryHandler
	GetAuditEventsByDateRange queries.GetAuditEventsByDateRangeQueryHandler
}

// Server maps HTTP requests onto the application use cases.
type Server struct {
	handlers         Handlers
	idempotencyStore ports.IdempotencyStore
	logger           *slog.Logger
	doc              *openapi3.T
}

// NewServer creates the HTTP server. It fails when the embedded OpenAPI
// document does not load.
func NewServer(handlers Handlers, idempotencyStore ports.IdempotencyStore, logger *slog.Logger) (*Server, error) {
	if idempotencyStore == nil {
		return nil, errors.New("http: idempotency store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}

	return &Server{
		handlers:         handlers,
		idempotencyStore: idempotencyStore,
		logger:           logger.With("component", "http"),
		doc:              doc,
	}, nil
}

// Register installs the error handler, middleware and routes on e.
func (s *Server) Register(e *echo.Echo) error {
	validate, err := requestValidator(s.doc)
	if err != nil {
		return err
	}

	e.HTTPErrorHandler = s.errorHandler
	e.Validator = newStructValidator()

	e.Use(middleware.Recover())
	e.Use(correlationID())
	e.Use(actor())
	e.Use(s.requestLogger())
	e.Use(validate)
	e.Use(s.idempotency())

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/openapi.json", s.OpenAPI)

	api.POST("/work-orders", s.CreateWorkOrder)
	api.GET("/work-orders", s.ListWorkOrders)
	api.GET("/work-orders/:id", s.GetWorkOrder)
	api.PATCH("/work-orders/:id/status", s.UpdateWorkOrderStatus)

	api.GET("/inventory", s.ListInventory)
	api.GET("/inventory/branches", s.ListBranches)
	api.GET("/inventory/products", s.ListProducts)
	api.GET("/inventory/reconciliation", s.ReconcileInventory)
	api.POST("/inventory/reservations", s.ReserveInventory)
	api.DELETE("/inventory/reservations/:workOrderId", s.ReleaseInventory)

	api.GET("/audit", s.ListAuditEvents)
	api.GET("/audit/range", s.GetAuditEventsByDateRange)
	api.GET("/audit/:auditId", s.GetAuditEvent)
	api.GET("/audit/entity/:entityType/:entityId", s.GetAuditHistory)
	api.GET("/audit/user/:userId", s.GetAuditEventsByUser)
	api.GET("/audit-export", s.ExportAuditEvents)

	return nil
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// bindAndValidate decodes the JSON body into dst and runs struct validation.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}
