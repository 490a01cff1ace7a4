// Package kernel provides the value objects shared by every aggregate of the
// work order domain.
//
// The package includes:
//   - UUID: the identifier of work orders
//   - LineItem: a positive quantity of one product, used by work orders and
//     the inventory ledger alike
//
// Both types carry a constructor guard, so a zero value fails Validate.
package kernel
