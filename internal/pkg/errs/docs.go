// Package errs provides standardized error types for the work order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced order, reservation or audit event does not exist
//   - VersionConflictError: an optimistic lock mismatch on a versioned aggregate
//   - InvalidTransitionError: a status move rejected by the workflow
//   - ReservationConflictError, ReservationNotFoundError: reservation index violations
//   - InsufficientStockError, StockInsufficientError: stock shortages at ledger and order level
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf classifies any error into the closed Kind taxonomy so transport
// adapters can map failures to responses without inspecting messages.
package errs
