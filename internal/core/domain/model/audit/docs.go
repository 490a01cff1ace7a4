// Package audit defines the append-only audit trail: the action taxonomy,
// immutable events with before and after snapshots, and the filter used to
// query them.
package audit
