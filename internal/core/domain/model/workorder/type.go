package workorder

import (
	"fmt"
	"strings"

	"workorders/internal/pkg/errs"
)

// Type selects the workflow a work order follows. Each type owns its own
// sub-graph of the transition table.
type Type int

const (
	// TypeUnknown (0) catches uninitialised values.
	TypeUnknown Type = iota
	TypeNewServiceInstall
	TypeClaimTroubleshoot
	TypePlanAndEquipmentSale
	TypeEquipmentOnlySale
	TypeMonthlyPayment
	TypeServiceUpgrade
	TypeServiceDownOutage
)

var typeNames = map[Type]string{
	TypeUnknown:              "UNKNOWN",
	TypeNewServiceInstall:    "NEW_SERVICE_INSTALL",
	TypeClaimTroubleshoot:    "CLAIM_TROUBLESHOOT",
	TypePlanAndEquipmentSale: "PLAN_AND_EQUIPMENT_SALE",
	TypeEquipmentOnlySale:    "EQUIPMENT_ONLY_SALE",
	TypeMonthlyPayment:       "MONTHLY_PAYMENT",
	TypeServiceUpgrade:       "SERVICE_UPGRADE",
	TypeServiceDownOutage:    "SERVICE_DOWN_OUTAGE",
}

// Types lists every valid type in declaration order.
func Types() []Type {
	return []Type{
		TypeNewServiceInstall,
		TypeClaimTroubleshoot,
		TypePlanAndEquipmentSale,
		TypeEquipmentOnlySale,
		TypeMonthlyPayment,
		TypeServiceUpgrade,
		TypeServiceDownOutage,
	}
}

// ParseType converts the wire name (for example "MONTHLY_PAYMENT") to a Type.
// Surrounding whitespace is ignored; matching is case-sensitive.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for _, t := range Types() {
		if typeNames[t] == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a work order type", s))
}

// Validate rejects TypeUnknown and values outside the declared range.
func (t Type) Validate() error {
	if t <= TypeUnknown || t > TypeServiceDownOutage {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid work order type", t))
	}
	return nil
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return typeNames[TypeUnknown]
}

func (t Type) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(data []byte) error {
	parsed, err := ParseType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
