package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCheckAllocationAvailabilityQueryIsNotConstructed = errors.New(
	"CheckAllocationAvailabilityQuery must be created via NewCheckAllocationAvailabilityQuery constructor",
)

// CheckAllocationAvailabilityQuery asks whether an order could be fully
// allocated right now, without reserving anything.
type CheckAllocationAvailabilityQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckAllocationAvailabilityQuery creates an availability check for one
// order.
func NewCheckAllocationAvailabilityQuery(orderID kernel.UUID) (CheckAllocationAvailabilityQuery, error) {
	query := CheckAllocationAvailabilityQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return CheckAllocationAvailabilityQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckAllocationAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckAllocationAvailabilityQueryIsNotConstructed)
}

// OrderID returns the order to check.
func (q CheckAllocationAvailabilityQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *CheckAllocationAvailabilityQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

// LineAvailability reports the open quantity of one order line against the
// available stock for its product.
type LineAvailability struct {
	OrderLineID       kernel.UUID
	ProductID         kernel.UUID
	QuantityOrdered   int
	QuantityAvailable int
}

// CanAllocate reports whether the line could be fully covered.
func (l LineAvailability) CanAllocate() bool {
	return l.QuantityAvailable >= l.QuantityOrdered
}

// CheckAllocationAvailabilityQueryResponse is the per-line availability
// snapshot. The snapshot is advisory: concurrent reservations can invalidate
// it before allocation runs.
type CheckAllocationAvailabilityQueryResponse struct {
	OrderID kernel.UUID
	Lines   []LineAvailability
}

// CanFullyAllocate reports whether every line could be covered.
func (r CheckAllocationAvailabilityQueryResponse) CanFullyAllocate() bool {
	for _, line := range r.Lines {
		if !line.CanAllocate() {
			return false
		}
	}
	return len(r.Lines) > 0
}
