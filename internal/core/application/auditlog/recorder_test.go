package auditlog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"workorders/internal/adapters/out/memory"
	"workorders/internal/core/application/auditlog"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

// tickingClock advances one second per call.
func tickingClock() func() time.Time {
	at := start
	return func() time.Time {
		at = at.Add(time.Second)
		return at
	}
}

func newRecorder() *auditlog.Recorder {
	return auditlog.NewRecorder(memory.NewStore().Create().AuditRepository(), auditlog.WithClock(tickingClock()))
}

func record(t *testing.T, r *auditlog.Recorder, actor string, action audit.Action, entityID string) *audit.Event {
	t.Helper()
	e, err := r.Record(t.Context(), auditlog.Entry{
		ActorUserID: actor,
		Action:      action,
		EntityType:  audit.EntityWorkOrder,
		EntityID:    entityID,
		After:       audit.Snapshot{"status": "DRAFT"},
	})
	require.NoError(t, err)
	return e
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

type exporterMock struct {
	mock.Mock
}

func (m *exporterMock) ContentType() string   { return "text/csv" }
func (m *exporterMock) FileExtension() string { return "csv" }

func (m *exporterMock) Export(ctx context.Context, events []*audit.Event) ([]byte, error) {
	args := m.Called(ctx, events)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func TestRecorder_RecordReportsIDFailures(t *testing.T) {
	repo := memory.NewStore().Create().AuditRepository()
	r := auditlog.NewRecorder(repo, auditlog.WithClock(tickingClock()), auditlog.WithEntropy(failingReader{}))

	event, err := r.Record(t.Context(), auditlog.Entry{Action: audit.ActionWorkOrderCreated, EntityType: audit.EntityWorkOrder, EntityID: "wo-1"})

	require.ErrorContains(t, err, "entropy exhausted")
	assert.Nil(t, event)
	total, err := repo.Count(t.Context())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRecorder_Record(t *testing.T) {
	t.Run("should assign increasing ids and copy snapshots", func(t *testing.T) {
		r := newRecorder()
		after := audit.Snapshot{"status": "DRAFT"}

		first, err := r.Record(t.Context(), auditlog.Entry{ActorUserID: " u-1 ", Action: audit.ActionWorkOrderCreated, After: after})
		require.NoError(t, err)
		second := record(t, r, "u-1", audit.ActionWorkOrderStatus, "wo-1")
		after["status"] = "changed"

		assert.Less(t, first.ID, second.ID)
		assert.Equal(t, "u-1", first.ActorUserID)
		assert.Nil(t, first.Before)
		assert.Equal(t, "DRAFT", first.After["status"])
		assert.Equal(t, start.Add(time.Second), first.At)
	})

	t.Run("should keep actions outside the taxonomy", func(t *testing.T) {
		r := newRecorder()

		e := record(t, r, "", audit.Action("AUD-99 CUSTOM"), "x")

		got, err := r.GetByID(t.Context(), e.ID)
		require.NoError(t, err)
		assert.Equal(t, audit.Action("AUD-99 CUSTOM"), got.Action)
		assert.Empty(t, got.ActorUserID)
	})
}

func TestRecorder_List(t *testing.T) {
	r := newRecorder()
	for range 60 {
		record(t, r, "u-1", audit.ActionWorkOrderStatus, "wo-1")
	}
	record(t, r, "u-2", audit.ActionWorkOrderCreated, "wo-2")

	t.Run("should default the limit and report more pages", func(t *testing.T) {
		page, err := r.List(t.Context(), audit.Filter{})

		require.NoError(t, err)
		assert.Equal(t, auditlog.DefaultListLimit, page.Limit)
		assert.Len(t, page.Items, auditlog.DefaultListLimit)
		assert.Equal(t, 61, page.Total)
		assert.True(t, page.HasMore())
		assert.Equal(t, "wo-2", page.Items[0].EntityID)
	})

	t.Run("should clamp the limit and offset", func(t *testing.T) {
		page, err := r.List(t.Context(), audit.Filter{Limit: 500, Offset: -3})

		require.NoError(t, err)
		assert.Equal(t, auditlog.MaxListLimit, page.Limit)
		assert.Equal(t, 0, page.Offset)
		assert.Len(t, page.Items, 61)
		assert.False(t, page.HasMore())
	})

	t.Run("should filter by action", func(t *testing.T) {
		page, err := r.List(t.Context(), audit.Filter{Action: audit.ActionWorkOrderCreated})

		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
	})
}

func TestRecorder_Queries(t *testing.T) {
	r := newRecorder()
	a := record(t, r, "u-1", audit.ActionWorkOrderCreated, "wo-1")
	b := record(t, r, "u-2", audit.ActionWorkOrderStatus, "wo-1")
	c := record(t, r, "u-1", audit.ActionWorkOrderCreated, "wo-2")

	t.Run("history is newest first", func(t *testing.T) {
		items, total, err := r.GetHistory(t.Context(), audit.EntityWorkOrder, "wo-1")

		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, []string{b.ID, a.ID}, []string{items[0].ID, items[1].ID})
	})

	t.Run("by user", func(t *testing.T) {
		items, err := r.GetByUser(t.Context(), "u-1", 1)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, c.ID, items[0].ID)
	})

	t.Run("date range bounds are inclusive", func(t *testing.T) {
		items, err := r.GetByDateRange(t.Context(), a.At, b.At)

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("date range must not be reversed", func(t *testing.T) {
		_, err := r.GetByDateRange(t.Context(), b.At, a.At)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := r.GetByID(t.Context(), "01UNKNOWN")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := r.GetByID(t.Context(), " ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("count", func(t *testing.T) {
		n, err := r.Count(t.Context())

		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})
}

func TestRecorder_Export(t *testing.T) {
	r := newRecorder()
	record(t, r, "u-1", audit.ActionWorkOrderCreated, "wo-1")
	record(t, r, "u-1", audit.ActionWorkOrderStatus, "wo-1")

	t.Run("should pass every match regardless of paging", func(t *testing.T) {
		exporter := &exporterMock{}
		exporter.On("Export", mock.Anything, mock.MatchedBy(func(events []*audit.Event) bool {
			return len(events) == 2
		})).Return([]byte("csv"), nil).Once()

		data, err := r.Export(t.Context(), exporter, audit.Filter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		assert.Equal(t, []byte("csv"), data)
		exporter.AssertExpectations(t)
	})

	t.Run("should return exporter errors", func(t *testing.T) {
		exporter := &exporterMock{}
		boom := errors.New("boom")
		exporter.On("Export", mock.Anything, mock.Anything).Return(nil, boom).Once()

		_, err := r.Export(t.Context(), exporter, audit.Filter{})

		require.ErrorIs(t, err, boom)
	})
}
