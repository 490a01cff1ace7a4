// Package services provides domain services that span more than one
// aggregate of the work order domain.
//
// The package includes:
//   - ReservationPlanner: the check-all-then-commit-all reservation of stock
//     rows and the matching release
//
// Services here are pure: they mutate the values they are given and never
// touch storage or locks.
package services
