package workorder

import (
	"slices"

	"workorders/internal/pkg/errs"
)

const (
	ReasonTerminal             = "completed work orders accept no transitions"
	ReasonNotInTable           = "not allowed by the workflow of this type"
	ReasonUnverifiedCompletion = "completion requires verification"
)

// AllowedTransitions returns the statuses reachable from current for type t.
//
// The result is the workflow's table entry followed by Cancelled and
// Conflict, which every non-completed work order can always move to.
// Completed yields an empty, non-nil slice.
//
// Example:
//
//	workorder.AllowedTransitions(workorder.TypeMonthlyPayment, workorder.Submitted)
//	// [PAYMENT_VALIDATION CANCELLED CONFLICT]
func AllowedTransitions(t Type, current Status) []Status {
	out := TableEntry(t, current)
	if current == Completed {
		return out
	}
	for _, universal := range []Status{Cancelled, Conflict} {
		if !slices.Contains(out, universal) {
			out = append(out, universal)
		}
	}
	return out
}

// ValidateTransition decides whether a work order of type t may move from
// one status to another.
//
// Two rules apply, and both must pass:
//   - Completion rule: moving to Completed requires type MonthlyPayment, or
//     from being Verification or ReceiptIssued. It is checked independently
//     of the table so a table entry cannot bypass it.
//   - Table rule: to must be in AllowedTransitions(t, from).
//
// Returns:
//   - nil if the move is legal
//   - errs.ValueIsInvalidError if t, from or to is not a valid value
//   - errs.InvalidTransitionError otherwise, with the violated rule as Reason
func ValidateTransition(t Type, from, to Status) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	if to == Completed && t != TypeMonthlyPayment && from != Verification && from != ReceiptIssued {
		return errs.NewInvalidTransitionErrorWithReason(t.String(), from.String(), to.String(), ReasonUnverifiedCompletion)
	}

	if !slices.Contains(AllowedTransitions(t, from), to) {
		reason := ReasonNotInTable
		if from == Completed {
			reason = ReasonTerminal
		}
		return errs.NewInvalidTransitionErrorWithReason(t.String(), from.String(), to.String(), reason)
	}

	return nil
}
