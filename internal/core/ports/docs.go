// Package ports declares the interfaces the application core needs from the
// outside world: repositories, the unit of work that binds them to one
// transaction, the audit exporter and the idempotency store.
//
// Adapters in internal/adapters/out implement them for memory, Postgres,
// Redis and spreadsheet backends.
package ports
