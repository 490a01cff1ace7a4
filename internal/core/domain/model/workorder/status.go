package workorder

import (
	"fmt"
	"strings"

	"workorders/internal/pkg/errs"
)

// Status is the lifecycle state of a work order.
//
// Which statuses a work order may move through depends on its Type; see
// AllowedTransitions. Completed is terminal. Cancelled and Conflict are
// reachable from every other status.
type Status int

const (
	// StatusUnknown (0) catches uninitialised values.
	StatusUnknown Status = iota

	// Draft is the status of every newly created work order.
	Draft
	Submitted
	EligibilityCheck
	// InventoryReservation triggers a stock reservation for the order items.
	InventoryReservation
	OnHold
	Scheduled
	InProgress
	// Verification is the only way into Completed, apart from the monthly payment path.
	Verification
	// Completed is terminal: no transition leaves it.
	Completed
	Rejected
	InReview
	TechAssignment
	ProductSelection
	PaymentConfirmation
	Fulfillment
	Delivery
	PaymentValidation
	ReceiptIssued
	PlanChange
	Triage
	FieldDispatch
	Conflict
	// Cancelled releases any reservation held by the order.
	Cancelled
)

var statusNames = map[Status]string{
	StatusUnknown:        "UNKNOWN",
	Draft:                "DRAFT",
	Submitted:            "SUBMITTED",
	EligibilityCheck:     "ELIGIBILITY_CHECK",
	InventoryReservation: "INVENTORY_RESERVATION",
	OnHold:               "ON_HOLD",
	Scheduled:            "SCHEDULED",
	InProgress:           "IN_PROGRESS",
	Verification:         "VERIFICATION",
	Completed:            "COMPLETED",
	Rejected:             "REJECTED",
	InReview:             "IN_REVIEW",
	TechAssignment:       "TECH_ASSIGNMENT",
	ProductSelection:     "PRODUCT_SELECTION",
	PaymentConfirmation:  "PAYMENT_CONFIRMATION",
	Fulfillment:          "FULFILLMENT",
	Delivery:             "DELIVERY",
	PaymentValidation:    "PAYMENT_VALIDATION",
	ReceiptIssued:        "RECEIPT_ISSUED",
	PlanChange:           "PLAN_CHANGE",
	Triage:               "TRIAGE",
	FieldDispatch:        "FIELD_DISPATCH",
	Conflict:             "CONFLICT",
	Cancelled:            "CANCELLED",
}

// Statuses lists every valid status in declaration order.
func Statuses() []Status {
	out := make([]Status, 0, len(statusNames)-1)
	for s := Draft; s <= Cancelled; s++ {
		out = append(out, s)
	}
	return out
}

// ParseStatus converts the wire name (for example "IN_PROGRESS") to a Status.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for st := Draft; st <= Cancelled; st++ {
		if statusNames[st] == s {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a work order status", s))
}

// Validate rejects StatusUnknown and values outside the declared range.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid work order status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[StatusUnknown]
}

func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(data []byte) error {
	parsed, err := ParseStatus(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StatusNames returns the wire names of statuses in the given order.
func StatusNames(statuses []Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
