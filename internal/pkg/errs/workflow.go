package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVersionConflict     = errors.New("version conflict")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrReservationConflict = errors.New("reservation conflict")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrStockInsufficient   = errors.New("stock insufficient")
)

// VersionConflictError is returned when a write carries a base version that
// does not match the stored version of the aggregate.
type VersionConflictError struct {
	Entity   string
	ID       string
	Expected int
	Actual   int
}

func NewVersionConflictError(entity, id string, expected, actual int) *VersionConflictError {
	return &VersionConflictError{
		Entity:   entity,
		ID:       id,
		Expected: expected,
		Actual:   actual,
	}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s has version %d, base version was %d",
		ErrVersionConflict, e.Entity, e.ID, e.Actual, e.Expected)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// InvalidTransitionError is returned when a requested status is not reachable.
// Reason is empty for plain table misses and carries the rule name otherwise.
type InvalidTransitionError struct {
	Type   string
	From   string
	To     string
	Reason string
}

func NewInvalidTransitionError(typ, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Type: typ, From: from, To: to}
}

func NewInvalidTransitionErrorWithReason(typ, from, to, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{Type: typ, From: from, To: to, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: from %s to %s for type %s", ErrInvalidTransition, e.From, e.To, e.Type)
	if e.Reason != "" {
		return fmt.Sprintf("%s (%s)", msg, e.Reason)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ReservationConflictError is returned when a work order already holds a live reservation.
type ReservationConflictError struct {
	WorkOrderID string
	Cause       error
}

func NewReservationConflictError(workOrderID string) *ReservationConflictError {
	return &ReservationConflictError{WorkOrderID: workOrderID}
}

func NewReservationConflictErrorWithCause(workOrderID string, cause error) *ReservationConflictError {
	return &ReservationConflictError{WorkOrderID: workOrderID, Cause: cause}
}

func (e *ReservationConflictError) Error() string {
	msg := fmt.Sprintf("%s: work order %s already has a reservation", ErrReservationConflict, e.WorkOrderID)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ReservationConflictError) Unwrap() error {
	return ErrReservationConflict
}

// ReservationNotFoundError is returned when releasing a work order that holds no reservation.
type ReservationNotFoundError struct {
	WorkOrderID string
}

func NewReservationNotFoundError(workOrderID string) *ReservationNotFoundError {
	return &ReservationNotFoundError{WorkOrderID: workOrderID}
}

func (e *ReservationNotFoundError) Error() string {
	return fmt.Sprintf("%s: reservation for %s was not found", ErrReservationNotFound, e.WorkOrderID)
}

func (e *ReservationNotFoundError) Unwrap() error {
	return ErrReservationNotFound
}

// InsufficientStockError names every product of a request that the branch cannot cover.
type InsufficientStockError struct {
	BranchID   string
	ProductIDs []string
}

func NewInsufficientStockError(branchID string, productIDs []string) *InsufficientStockError {
	ids := make([]string, len(productIDs))
	copy(ids, productIDs)
	return &InsufficientStockError{BranchID: branchID, ProductIDs: ids}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s for products: %s in branch %s",
		ErrInsufficientStock, strings.Join(e.ProductIDs, ", "), e.BranchID)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// StockInsufficientError is the work order level view of an InsufficientStockError.
type StockInsufficientError struct {
	WorkOrderID string
	Shortage    *InsufficientStockError
}

func NewStockInsufficientError(workOrderID string, shortage *InsufficientStockError) *StockInsufficientError {
	return &StockInsufficientError{WorkOrderID: workOrderID, Shortage: shortage}
}

func (e *StockInsufficientError) Error() string {
	if e.Shortage == nil {
		return fmt.Sprintf("%s: work order %s", ErrStockInsufficient, e.WorkOrderID)
	}
	return fmt.Sprintf("%s: work order %s: products %s in branch %s",
		ErrStockInsufficient, e.WorkOrderID, strings.Join(e.Shortage.ProductIDs, ", "), e.Shortage.BranchID)
}

func (e *StockInsufficientError) Unwrap() error {
	return ErrStockInsufficient
}
