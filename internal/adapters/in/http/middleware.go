package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"workorders/internal/core/application/usecases/commands"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	HeaderCorrelationID  = "X-Correlation-Id"
	HeaderUserID         = "X-User-Id"
	HeaderIdempotencyKey = "Idempotency-Key"

	// IdempotencyTTL is how long a claimed Idempotency-Key blocks repeats.
	IdempotencyTTL = 24 * time.Hour

	correlationIDKey = "correlationId"
	actorUserIDKey   = "actorUserId"
)

// correlationID takes the inbound X-Correlation-Id, or mints c_<uuid>, and
// echoes it on the response.
func correlationID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(HeaderCorrelationID))
			if id == "" {
				id = "c_" + uuid.NewString()
			}
			c.Set(correlationIDKey, id)
			c.Response().Header().Set(HeaderCorrelationID, id)
			return next(c)
		}
	}
}

// actor reads the user id set by the upstream authentication layer. An
// absent header is an anonymous caller.
func actor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(actorUserIDKey, strings.TrimSpace(c.Request().Header.Get(HeaderUserID)))
			return next(c)
		}
	}
}

func correlationIDFrom(c echo.Context) string {
	id, _ := c.Get(correlationIDKey).(string)
	return id
}

func callerFrom(c echo.Context) commands.Caller {
	userID, _ := c.Get(actorUserIDKey).(string)
	return commands.NewCaller(userID, correlationIDFrom(c))
}

// idempotency claims the Idempotency-Key of a POST, PATCH or DELETE request
// before the handler runs. Keys are scoped to method and path. A key already
// claimed is a duplicate request; a request that fails gives its key back so
// the client may retry.
func (s *Server) idempotency() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			raw := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if raw == "" || !mutating(req.Method) {
				return next(c)
			}

			key := req.Method + " " + req.URL.Path + " " + raw
			claimed, err := s.idempotencyStore.Claim(req.Context(), key, IdempotencyTTL)
			if err != nil {
				return err
			}
			if !claimed {
				return errDuplicateRequest
			}

			err = next(c)
			if err != nil || c.Response().Status >= http.StatusBadRequest {
				// a canceled request context must not keep the key claimed
				if releaseErr := s.idempotencyStore.Release(context.WithoutCancel(req.Context()), key); releaseErr != nil {
					s.logger.Warn("release idempotency key", slog.String("key", key), slog.Any("error", releaseErr))
				}
			}
			return err
		}
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("correlation_id", correlationIDFrom(c)),
			)
			return nil
		},
	})
}
