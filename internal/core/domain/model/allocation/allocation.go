package allocation

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// ErrAllocationIsNotConstructed is returned when an Allocation instance was
// not created through NewAllocation or RestoreAllocation.
var ErrAllocationIsNotConstructed = errors.New(
	"Allocation must be created via NewAllocation or RestoreAllocation constructor")

// Status tracks an allocation's lifecycle.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Allocated means the reservation is live and holds ledger quantity.
	Allocated

	// Picked means the reserved quantity has been physically removed and
	// the ledger depletion committed.
	Picked

	// Cancelled means the reservation was released back to the ledger.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Allocated: "Allocated",
		Picked:    "Picked",
		Cancelled: "Cancelled",
	}
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidError("allocation status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("allocation status")
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Allocation is a reservation of ledger quantity for one order line against
// one inventory row. Batch, expiry, LPN and location are snapshotted at
// reservation time so pick instructions stay stable even if the ledger row
// later changes disposition.
type Allocation struct {
	id          kernel.UUID
	orderID     kernel.UUID
	orderLineID kernel.UUID
	inventoryID kernel.UUID

	quantity int

	batchNumber  string
	expiryDate   *time.Time
	lpn          string
	locationCode string

	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewAllocation creates a live reservation.
func NewAllocation(
	id, orderID, orderLineID, inventoryID kernel.UUID,
	quantity int,
	batchNumber string,
	expiryDate *time.Time,
	lpn, locationCode string,
	createdAt time.Time,
) (*Allocation, error) {
	a := &Allocation{
		batchNumber:   batchNumber,
		expiryDate:    expiryDate,
		lpn:           lpn,
		locationCode:  locationCode,
		status:        Allocated,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setOrderLineID(orderLineID),
		a.setInventoryID(inventoryID),
		a.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAllocation reconstructs an allocation from persistence.
func RestoreAllocation(
	id, orderID, orderLineID, inventoryID kernel.UUID,
	quantity int,
	batchNumber string,
	expiryDate *time.Time,
	lpn, locationCode string,
	status Status,
	createdAt time.Time,
) (*Allocation, error) {
	a := &Allocation{
		batchNumber:   batchNumber,
		expiryDate:    expiryDate,
		lpn:           lpn,
		locationCode:  locationCode,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setOrderLineID(orderLineID),
		a.setInventoryID(inventoryID),
		a.setQuantity(quantity),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Allocation instance was properly constructed.
func (a *Allocation) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAllocationIsNotConstructed
	}
	return nil
}

// ID returns the allocation's unique identifier.
func (a *Allocation) ID() kernel.UUID {
	return a.id
}

// OrderID returns the owning order.
func (a *Allocation) OrderID() kernel.UUID {
	return a.orderID
}

// OrderLineID returns the order line the reservation serves.
func (a *Allocation) OrderLineID() kernel.UUID {
	return a.orderLineID
}

// InventoryID returns the ledger row the reservation holds quantity on.
func (a *Allocation) InventoryID() kernel.UUID {
	return a.inventoryID
}

// Quantity returns the reserved quantity.
func (a *Allocation) Quantity() int {
	return a.quantity
}

// BatchNumber returns the batch snapshotted at reservation time.
func (a *Allocation) BatchNumber() string {
	return a.batchNumber
}

// ExpiryDate returns the lot expiry snapshotted at reservation time.
func (a *Allocation) ExpiryDate() *time.Time {
	return a.expiryDate
}

// LPN returns the handling unit snapshotted at reservation time.
func (a *Allocation) LPN() string {
	return a.lpn
}

// LocationCode returns the pick-from location snapshotted at reservation time.
func (a *Allocation) LocationCode() string {
	return a.locationCode
}

// Status returns the allocation lifecycle state.
func (a *Allocation) Status() Status {
	return a.status
}

// CreatedAt returns when the reservation was made.
func (a *Allocation) CreatedAt() time.Time {
	return a.createdAt
}

// IsLive reports whether the reservation still holds ledger quantity.
func (a *Allocation) IsLive() bool {
	return a.status == Allocated
}

// MarkPicked finalizes the reservation with the quantity that was
// physically removed. A short pick shrinks the reservation to what actually
// moved, so downstream lineage reads the picked amount, not the reserved one.
func (a *Allocation) MarkPicked(pickedQuantity int) error {
	if a.status != Allocated {
		return errs.NewInvalidStateTransitionError("allocation", a.status.String(), Picked.String())
	}
	if pickedQuantity <= 0 || pickedQuantity > a.quantity {
		return errs.NewValueIsOutOfRangeError("picked quantity", pickedQuantity, 1, a.quantity)
	}
	a.quantity = pickedQuantity
	a.status = Picked
	return nil
}

// Cancel releases the reservation. The caller is responsible for returning
// the quantity to the ledger in the same transaction.
func (a *Allocation) Cancel() error {
	if a.status != Allocated {
		return errs.NewInvalidStateTransitionError("allocation", a.status.String(), Cancelled.String())
	}
	a.status = Cancelled
	return nil
}

func (a *Allocation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Allocation) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.orderID = id
	return nil
}

func (a *Allocation) setOrderLineID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.orderLineID = id
	return nil
}

func (a *Allocation) setInventoryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.inventoryID = id
	return nil
}

func (a *Allocation) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("allocation quantity")
	}
	a.quantity = quantity
	return nil
}
