package cmd_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"workorders/cmd"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryRoot(t *testing.T) *cmd.CompositionRoot {
	t.Helper()

	config := cmd.Config{StorageDriver: cmd.StorageMemory, ReconcileSchedule: "0 */5 * * * *", LogLevel: "info"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	storage, err := cmd.OpenStorage(t.Context(), config, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	return cmd.NewCompositionRoot(config, storage, logger)
}

func TestCompositionRoot_BootstrapCatalogIsRepeatable(t *testing.T) {
	root := newMemoryRoot(t)

	first, err := root.BootstrapCatalog(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Branches)
	assert.Equal(t, 6, first.Products)
	assert.Equal(t, 12, first.Rows)

	second, err := root.BootstrapCatalog(t.Context())
	require.NoError(t, err)
	assert.Zero(t, second.Branches)
	assert.Zero(t, second.Products)
	assert.Zero(t, second.Rows)
}

func TestCompositionRoot_ServesSeededCatalog(t *testing.T) {
	root := newMemoryRoot(t)
	_, err := root.BootstrapCatalog(t.Context())
	require.NoError(t, err)

	server, err := root.CreateServer()
	require.NoError(t, err)
	e := echo.New()
	require.NoError(t, server.Register(e))

	t.Run("branches", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inventory/branches", nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var branches []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &branches))
		assert.Len(t, branches, 3)
	})

	t.Run("work order round trip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/work-orders",
			strings.NewReader(`{"type":"MONTHLY_PAYMENT","customerId":"c-1"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/work-orders", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var list []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})
}

func TestCompositionRoot_JobManagerStartsAndStops(t *testing.T) {
	root := newMemoryRoot(t)

	manager := root.CreateJobManager()
	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
