package audit

import (
	"encoding/json"
	"maps"
	"time"
)

// Snapshot is an opaque before or after image. A nil Snapshot means the
// entity did not exist on that side of the change.
type Snapshot map[string]any

// Clone returns a shallow copy; nil stays nil.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// MarshalSnapshot encodes s as JSON, nil encodes to nil.
func MarshalSnapshot(s Snapshot) (*string, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	out := string(data)
	return &out, nil
}

// UnmarshalSnapshot is the inverse of MarshalSnapshot.
func UnmarshalSnapshot(data *string) (Snapshot, error) {
	if data == nil {
		return nil, nil
	}
	var s Snapshot
	if err := json.Unmarshal([]byte(*data), &s); err != nil {
		return nil, err
	}
	return s, nil
}

// Event is one immutable record of the audit trail.
//
// ActorUserID is empty for system or anonymous actors. Events are never
// updated or deleted once appended.
type Event struct {
	ID            string
	At            time.Time
	ActorUserID   string
	Action        Action
	EntityType    string
	EntityID      string
	Before        Snapshot
	After         Snapshot
	CorrelationID string
}

// Clone returns a copy that shares no snapshot maps with e.
func (e *Event) Clone() *Event {
	cp := *e
	cp.Before = e.Before.Clone()
	cp.After = e.After.Clone()
	return &cp
}

// Filter selects events. Zero fields match everything; From and To are
// inclusive bounds on At.
type Filter struct {
	EntityType  string
	EntityID    string
	Action      Action
	ActorUserID string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// Matches applies every non-zero criterion of f to e.
func (f Filter) Matches(e *Event) bool {
	switch {
	case f.EntityType != "" && e.EntityType != f.EntityType:
		return false
	case f.EntityID != "" && e.EntityID != f.EntityID:
		return false
	case f.Action != "" && e.Action != f.Action:
		return false
	case f.ActorUserID != "" && e.ActorUserID != f.ActorUserID:
		return false
	case f.From != nil && e.At.Before(*f.From):
		return false
	case f.To != nil && e.At.After(*f.To):
		return false
	}
	return true
}

// Newer orders events newest first, breaking ties by descending id.
func Newer(a, b *Event) int {
	if c := b.At.Compare(a.At); c != 0 {
		return c
	}
	switch {
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	}
	return 0
}
