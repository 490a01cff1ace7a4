package workorder

// transitionTable holds the forward moves of every workflow. Cancelled and
// Conflict are added by AllowedTransitions and never appear here. Statuses
// without an entry (Completed, Rejected, Cancelled, Conflict) have no
// forward moves.
//
// Inventory is reserved on entry to InventoryReservation, so no path
// re-enters it once left.
var transitionTable = map[Type]map[Status][]Status{
	TypeNewServiceInstall: {
		Draft:                {Submitted},
		Submitted:            {EligibilityCheck, Rejected},
		EligibilityCheck:     {InventoryReservation, Rejected},
		InventoryReservation: {Scheduled},
		Scheduled:            {TechAssignment, OnHold},
		OnHold:               {Scheduled},
		TechAssignment:       {InProgress},
		InProgress:           {Verification},
		Verification:         {Completed, InProgress},
	},
	TypeClaimTroubleshoot: {
		Draft:          {Submitted},
		Submitted:      {InReview},
		InReview:       {TechAssignment, Rejected, OnHold},
		OnHold:         {InReview},
		TechAssignment: {Scheduled},
		Scheduled:      {InProgress},
		InProgress:     {Verification},
		Verification:   {Completed, InProgress},
	},
	TypePlanAndEquipmentSale: {
		Draft:                {Submitted},
		Submitted:            {EligibilityCheck},
		EligibilityCheck:     {ProductSelection, Rejected},
		ProductSelection:     {InventoryReservation},
		InventoryReservation: {PaymentConfirmation, OnHold},
		OnHold:               {PaymentConfirmation},
		PaymentConfirmation:  {Fulfillment},
		Fulfillment:          {Delivery},
		Delivery:             {Verification},
		Verification:         {Completed},
	},
	TypeEquipmentOnlySale: {
		Draft:                {Submitted},
		Submitted:            {ProductSelection, InventoryReservation},
		ProductSelection:     {InventoryReservation},
		InventoryReservation: {PaymentConfirmation, OnHold},
		OnHold:               {PaymentConfirmation},
		PaymentConfirmation:  {Fulfillment},
		Fulfillment:          {Delivery},
		Delivery:             {Verification},
		Verification:         {Completed},
	},
	TypeMonthlyPayment: {
		Draft:             {Submitted},
		Submitted:         {PaymentValidation},
		PaymentValidation: {ReceiptIssued, Rejected, OnHold},
		OnHold:            {PaymentValidation},
		ReceiptIssued:     {Completed},
	},
	TypeServiceUpgrade: {
		Draft:                {Submitted},
		Submitted:            {EligibilityCheck},
		EligibilityCheck:     {PlanChange, Rejected},
		PlanChange:           {InventoryReservation, Scheduled, Verification},
		InventoryReservation: {Scheduled},
		Scheduled:            {InProgress},
		InProgress:           {Verification},
		Verification:         {Completed},
	},
	TypeServiceDownOutage: {
		Draft:          {Triage},
		Triage:         {FieldDispatch, InProgress, Rejected},
		FieldDispatch:  {TechAssignment},
		TechAssignment: {InProgress},
		InProgress:     {Verification, OnHold},
		OnHold:         {InProgress},
		Verification:   {Completed, InProgress},
	},
}

// TableEntry returns a copy of the forward moves listed for (t, from),
// without the universal Cancelled and Conflict moves. Unmapped pairs yield
// an empty slice.
func TableEntry(t Type, from Status) []Status {
	entry := transitionTable[t][from]
	out := make([]Status, len(entry))
	copy(out, entry)
	return out
}

// MappedStatuses returns the statuses that have a table entry for t.
func MappedStatuses(t Type) []Status {
	out := make([]Status, 0, len(transitionTable[t]))
	for _, s := range Statuses() {
		if _, ok := transitionTable[t][s]; ok {
			out = append(out, s)
		}
	}
	return out
}
