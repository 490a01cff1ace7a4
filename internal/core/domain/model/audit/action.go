package audit

// Action is a code of the closed audit taxonomy.
type Action string

const (
	ActionUserLogin         Action = "AUD-01 USERLOGIN"
	ActionUserLogout        Action = "AUD-02 USERLOGOUT"
	ActionUserBlocked       Action = "AUD-03 USERBLOCKED"
	ActionRoleAssigned      Action = "AUD-04 ROLEASSIGNED"
	ActionWorkOrderCreated  Action = "AUD-05 WORKORDER_CREATED"
	ActionWorkOrderStatus   Action = "AUD-06 WORKORDER_STATUS"
	ActionInventoryReserved Action = "AUD-07 INVENTORY_RESERVED"
	ActionInventoryReleased Action = "AUD-08 INVENTORY_RELEASED"
)

// Actions lists the taxonomy in code order.
func Actions() []Action {
	return []Action{
		ActionUserLogin,
		ActionUserLogout,
		ActionUserBlocked,
		ActionRoleAssigned,
		ActionWorkOrderCreated,
		ActionWorkOrderStatus,
		ActionInventoryReserved,
		ActionInventoryReleased,
	}
}

// Known reports whether a belongs to the taxonomy. The recorder stores
// unknown actions as given.
func (a Action) Known() bool {
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}
	return false
}

func (a Action) String() string {
	return string(a)
}

// Entity types used by the recorder's callers.
const (
	EntityWorkOrder   = "WorkOrder"
	EntityReservation = "Reservation"
	EntityUser        = "User"
)
