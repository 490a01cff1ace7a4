// Package workorder provides the work order aggregate and the state machine
// that governs its lifecycle.
//
// The package includes:
//   - Type: the seven workflows (installation, claim, sales, payment, upgrade, outage)
//   - Status: the lifecycle states shared by all workflows
//   - the transition table: per type, the forward moves from each status
//   - AllowedTransitions and ValidateTransition: the table plus the universal
//     rules (Cancelled and Conflict are always reachable unless Completed;
//     Completed requires verification)
//   - WorkOrder: the aggregate root, versioned for optimistic concurrency
//
// Key business rules:
//   - Work orders start in Draft at version 0
//   - Every successful status change increments version by exactly one
//   - Completed is terminal
//   - Completion requires Verification, or ReceiptIssued for monthly payments
//
// Nothing in this package performs I/O; inventory side effects and audit
// records belong to the application layer.
package workorder
