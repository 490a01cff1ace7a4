package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"workorders/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	problemContentType = "application/problem+json"
	problemTypePrefix  = "urn:telecom:error:"
)

// Problem is an RFC 7807 error body.
type Problem struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Status        int    `json:"status"`
	Detail        string `json:"detail"`
	Instance      string `json:"instance"`
	CorrelationID string `json:"correlationId"`
}

var errDuplicateRequest = errors.New("a request with this Idempotency-Key was already processed")

type problemClass struct {
	status int
	code   string
	title  string
}

var problemClasses = map[errs.Kind]problemClass{
	errs.KindNotFound:            {http.StatusNotFound, "not-found", "Not Found"},
	errs.KindValidation:          {http.StatusBadRequest, "validation", "Validation error"},
	errs.KindVersionConflict:     {http.StatusConflict, "version_mismatch", "Conflict"},
	errs.KindInvalidTransition:   {http.StatusConflict, "invalid_transition", "Conflict"},
	errs.KindReservationConflict: {http.StatusConflict, "reservation_conflict", "Conflict"},
	errs.KindInsufficientStock:   {http.StatusConflict, "insufficient_stock", "Conflict"},
	errs.KindStockInsufficient:   {http.StatusConflict, "stock_insufficient", "Conflict"},
	errs.KindReservationNotFound: {http.StatusNotFound, "reservation_not_found", "Not Found"},
}

// notFoundCodes refines NotFound by the parameter that missed.
var notFoundCodes = map[string]string{
	"workOrder":  "workorder-not-found",
	"auditEvent": "audit_not_found",
}

// classify maps err to its status and problem type.
func classify(err error) (problemClass, string) {
	var (
		reqErr      *requestError
		validErrs   validator.ValidationErrors
		httpErr     *echo.HTTPError
		notFoundErr *errs.ObjectNotFoundError
	)
	switch {
	case errors.Is(err, errDuplicateRequest):
		return problemClass{http.StatusConflict, "duplicate_request", "Conflict"}, err.Error()
	case errors.As(err, &reqErr), errors.As(err, &validErrs):
		return problemClasses[errs.KindValidation], err.Error()
	case errors.As(err, &httpErr):
		return httpProblemClass(httpErr), http.StatusText(httpErr.Code)
	}

	kind := errs.KindOf(err)
	class, ok := problemClasses[kind]
	if !ok {
		return problemClass{http.StatusInternalServerError, "internal", "Internal Server Error"},
			"An unexpected error occurred."
	}
	if kind == errs.KindNotFound && errors.As(err, &notFoundErr) {
		if code, found := notFoundCodes[notFoundErr.ParamName]; found {
			class.code = code
		}
	}
	return class, err.Error()
}

func httpProblemClass(err *echo.HTTPError) problemClass {
	switch err.Code {
	case http.StatusNotFound:
		return problemClass{err.Code, "not-found", "Not Found"}
	case http.StatusBadRequest:
		return problemClass{err.Code, "validation", "Validation error"}
	}
	return problemClass{err.Code, "app", http.StatusText(err.Code)}
}

// errorHandler renders every handler error as problem+json.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	class, detail := classify(err)
	problem := Problem{
		Type:          problemTypePrefix + class.code,
		Title:         class.title,
		Status:        class.status,
		Detail:        detail,
		Instance:      c.Request().URL.RequestURI(),
		CorrelationID: correlationIDFrom(c),
	}

	level := slog.LevelWarn
	if class.status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.LogAttrs(c.Request().Context(), level, "request failed",
		slog.String("method", c.Request().Method),
		slog.String("uri", problem.Instance),
		slog.Int("status", class.status),
		slog.String("type", problem.Type),
		slog.String("correlation_id", problem.CorrelationID),
		slog.Any("error", err),
	)

	body, marshalErr := json.Marshal(problem)
	if marshalErr != nil {
		_ = c.NoContent(class.status)
		return
	}
	_ = c.Blob(class.status, problemContentType, body)
}
