// Package allocation contains the Allocation aggregate: a reservation of
// ledger quantity for one order line against one inventory row, carrying a
// snapshot of batch, expiry, LPN and location taken at reservation time.
package allocation
