// Package inventory contains the Inventory aggregate root: a single ledger
// row of stock for one product, batch and location. The ledger invariant
// onHand = available + allocated is enforced by every mutation and re-checked
// on restore. Reserve, Release and CommitDepletion are the only three
// operations allowed to move quantity between the buckets.
package inventory
