package memory

import (
	"context"
	"slices"

	"workorders/internal/core/domain/model/audit"
	"workorders/internal/pkg/errs"
)

// AuditRepository is append only.
type AuditRepository struct {
	uow *UnitOfWork
}

func (r *AuditRepository) Append(_ context.Context, event *audit.Event) error {
	if event == nil || event.ID == "" {
		return errs.NewValueIsRequiredError("auditId")
	}

	e := event.Clone()
	return r.uow.write(func(st *state) (func(), error) {
		if _, ok := st.eventsByID[e.ID]; ok {
			return nil, errs.NewValueIsInvalidError("auditId")
		}
		st.events = append(st.events, e)
		st.eventsByID[e.ID] = e
		return func() {
			st.events = st.events[:len(st.events)-1]
			delete(st.eventsByID, e.ID)
		}, nil
	})
}

func (r *AuditRepository) Get(_ context.Context, id string) (*audit.Event, error) {
	var e *audit.Event
	r.uow.store.read(func(st *state) {
		if stored, ok := st.eventsByID[id]; ok {
			e = stored.Clone()
		}
	})
	if e == nil {
		return nil, errs.NewObjectNotFoundError("auditEvent", id)
	}
	return e, nil
}

// Find returns the page of matching events, newest first, and the number of
// matches before paging. A zero limit returns every match after offset.
func (r *AuditRepository) Find(_ context.Context, filter audit.Filter) ([]*audit.Event, int, error) {
	var matched []*audit.Event
	r.uow.store.read(func(st *state) {
		for _, e := range st.events {
			if filter.Matches(e) {
				matched = append(matched, e.Clone())
			}
		}
	})
	slices.SortFunc(matched, audit.Newer)

	total := len(matched)
	offset := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(offset+filter.Limit, total)
	}
	return matched[offset:end], total, nil
}

func (r *AuditRepository) Count(_ context.Context) (int, error) {
	var n int
	r.uow.store.read(func(st *state) {
		n = len(st.events)
	})
	return n, nil
}
