package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListAuditEvents handles GET /api/v1/audit.
func (s *Server) ListAuditEvents(c echo.Context) error {
	query, err := auditListQuery(c)
	if err != nil {
		return err
	}

	page, err := s.handlers.ListAuditEvents.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuditPageResponse{
		Items: toAuditEventResponses(page.Items),
		Pagination: Pagination{
			Total:   page.Total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: page.HasMore(),
		},
	})
}

// ExportAuditEvents handles GET /api/v1/audit-export. Paging parameters
// are ignored; every matching event is exported.
func (s *Server) ExportAuditEvents(c echo.Context) error {
	query, err := auditListQuery(c)
	if err != nil {
		return err
	}

	data, err := s.handlers.ExportAuditEvents.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	exporter := s.handlers.ExportAuditEvents
	fileName := fmt.Sprintf("audit_%s.%s", time.Now().UTC().Format("20060102_150405"), exporter.FileExtension())
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	return c.Blob(http.StatusOK, exporter.ContentType(), data)
}

// GetAuditEvent handles GET /api/v1/audit/:auditId.
func (s *Server) GetAuditEvent(c echo.Context) error {
	query, err := queries.NewGetAuditEventQuery(c.Param("auditId"))
	if err != nil {
		return err
	}

	event, err := s.handlers.GetAuditEvent.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuditEventResponse(event))
}

// GetAuditHistory handles GET /api/v1/audit/entity/:entityType/:entityId.
func (s *Server) GetAuditHistory(c echo.Context) error {
	query, err := queries.NewGetAuditHistoryQuery(c.Param("entityType"), c.Param("entityId"))
	if err != nil {
		return err
	}

	history, err := s.handlers.GetAuditHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AuditListResponse{
		Events: toAuditEventResponses(history.Events),
		Total:  history.Total,
	})
}

// GetAuditEventsByUser handles GET /api/v1/audit/user/:userId.
func (s *Server) GetAuditEventsByUser(c echo.Context) error {
	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}

	query, err := queries.NewGetAuditEventsByUserQuery(c.Param("userId"), limit)
	if err != nil {
		return err
	}

	events, err := s.handlers.GetAuditEventsByUser.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AuditListResponse{
		Events: toAuditEventResponses(events),
		Total:  len(events),
	})
}

// GetAuditEventsByDateRange handles GET /api/v1/audit/range?from=&to=.
func (s *Server) GetAuditEventsByDateRange(c echo.Context) error {
	from, err := timeParam(c, "from")
	if err != nil {
		return err
	}
	to, err := timeParam(c, "to")
	if err != nil {
		return err
	}
	if from == nil {
		return errs.NewValueIsRequiredError("from")
	}
	if to == nil {
		return errs.NewValueIsRequiredError("to")
	}

	query, err := queries.NewGetAuditEventsByDateRangeQuery(*from, *to)
	if err != nil {
		return err
	}

	events, err := s.handlers.GetAuditEventsByDateRange.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AuditListResponse{
		Events: toAuditEventResponses(events),
		Total:  len(events),
	})
}

func auditListQuery(c echo.Context) (queries.ListAuditEventsQuery, error) {
	in := queries.AuditFilterInput{
		EntityType:  c.QueryParam("entityType"),
		EntityID:    c.QueryParam("entityId"),
		Action:      c.QueryParam("action"),
		ActorUserID: c.QueryParam("actorUserId"),
	}

	var err error
	if in.From, err = timeParam(c, "from"); err != nil {
		return queries.ListAuditEventsQuery{}, err
	}
	if in.To, err = timeParam(c, "to"); err != nil {
		return queries.ListAuditEventsQuery{}, err
	}
	if in.Limit, err = intParam(c, "limit"); err != nil {
		return queries.ListAuditEventsQuery{}, err
	}
	if in.Offset, err = intParam(c, "offset"); err != nil {
		return queries.ListAuditEventsQuery{}, err
	}

	return queries.NewListAuditEventsQuery(in)
}

// intParam reads an optional integer query parameter; absent is zero.
func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

// timeParam reads an optional RFC 3339 query parameter.
func timeParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &t, nil
}
