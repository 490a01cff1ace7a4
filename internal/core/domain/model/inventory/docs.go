// Package inventory models the stock ledger: per branch and product counters,
// the one-per-work-order reservation index and the catalog they are seeded from.
//
// StockRow enforces non-negative counters; Reserve and Release move units
// between available and reserved so their sum is conserved. Reconcile checks
// that invariant across the whole ledger.
package inventory
