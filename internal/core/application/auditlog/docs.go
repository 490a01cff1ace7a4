// Package auditlog is the audit recorder of the work order service.
//
// Recorder appends immutable events with before and after snapshots and a
// correlation id, and serves the read side: filtered and paged lists, entity
// history, per-actor and date range queries, and export.
package auditlog
