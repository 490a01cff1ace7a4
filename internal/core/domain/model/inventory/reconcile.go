package inventory

import (
	"fmt"
	"sort"
)

// DiscrepancyKind names a broken ledger invariant.
type DiscrepancyKind string

const (
	NegativeAvailable   DiscrepancyKind = "NEGATIVE_AVAILABLE"
	NegativeReserved    DiscrepancyKind = "NEGATIVE_RESERVED"
	ReservedMismatch    DiscrepancyKind = "RESERVED_MISMATCH"
	ReservationOrphaned DiscrepancyKind = "RESERVATION_WITHOUT_ROW"
)

// Discrepancy is one finding of Reconcile.
type Discrepancy struct {
	Kind     DiscrepancyKind `json:"kind"`
	Key      StockKey        `json:"row"`
	Detail   string          `json:"detail"`
	Expected int             `json:"expected"`
	Actual   int             `json:"actual"`
}

// ReconciliationReport summarises a full ledger check.
type ReconciliationReport struct {
	RowsChecked         int           `json:"rowsChecked"`
	ReservationsChecked int           `json:"reservationsChecked"`
	Discrepancies       []Discrepancy `json:"discrepancies"`
}

func (r ReconciliationReport) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// Reconcile checks every row against the live reservations.
//
// A consistent ledger has no negative counter, every row's reserved count
// equal to the sum of reservation quantities for that row, and no
// reservation pointing at a missing row. Findings are sorted by row key.
func Reconcile(rows []*StockRow, reservations []*Reservation) ReconciliationReport {
	held := make(map[StockKey]int)
	for _, res := range reservations {
		for productID, qty := range res.Quantities() {
			held[StockKey{BranchID: res.BranchID(), ProductID: productID}] += qty
		}
	}

	report := ReconciliationReport{
		RowsChecked:         len(rows),
		ReservationsChecked: len(reservations),
		Discrepancies:       []Discrepancy{},
	}

	seen := make(map[StockKey]struct{}, len(rows))
	for _, row := range rows {
		key := row.Key()
		seen[key] = struct{}{}
		if row.QtyAvailable() < 0 {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Kind: NegativeAvailable, Key: key, Actual: row.QtyAvailable(),
				Detail: fmt.Sprintf("row %s has negative available quantity", key),
			})
		}
		if row.QtyReserved() < 0 {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Kind: NegativeReserved, Key: key, Actual: row.QtyReserved(),
				Detail: fmt.Sprintf("row %s has negative reserved quantity", key),
			})
		}
		if want := held[key]; want != row.QtyReserved() {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Kind: ReservedMismatch, Key: key, Expected: want, Actual: row.QtyReserved(),
				Detail: fmt.Sprintf("row %s reserves %d but reservations hold %d", key, row.QtyReserved(), want),
			})
		}
	}

	for key, qty := range held {
		if _, ok := seen[key]; !ok {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Kind: ReservationOrphaned, Key: key, Expected: qty,
				Detail: fmt.Sprintf("reservations hold %d of %s but the row does not exist", qty, key),
			})
		}
	}

	sort.SliceStable(report.Discrepancies, func(i, j int) bool {
		a, b := report.Discrepancies[i], report.Discrepancies[j]
		if a.Key != b.Key {
			return a.Key.String() < b.Key.String()
		}
		return a.Kind < b.Kind
	})
	return report
}
