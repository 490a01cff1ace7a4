// Package guard holds construction guards embedded by domain types whose
// zero value must not be used.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard
// when the caller does not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor.
//
// Aggregates and value objects embed it as an unexported field and set it in
// their New/Restore functions. A struct literal or zero value carries an unset
// guard, so its Validate method fails.
//
// Example:
//
//	var ErrLineItemNotConstructed = errors.New("LineItem must be created via NewLineItem")
//
//	type LineItem struct {
//	    productID string
//	    qty       int
//	    guard     guard.ConstructorGuard
//	}
//
//	func (li LineItem) Validate() error {
//	    return li.guard.Validate(ErrLineItemNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard flagged as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard.
//
// Returns:
//   - nil if the guard came from NewConstructorGuard
//   - validationError for a zero-value guard
//   - ErrDefaultConstructorGuard for a zero-value guard when validationError is nil
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
