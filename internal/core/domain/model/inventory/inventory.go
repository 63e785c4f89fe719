package inventory

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// ErrInventoryIsNotConstructed is returned when an Inventory instance was not
// created through NewInventory or RestoreInventory.
var ErrInventoryIsNotConstructed = errors.New(
	"Inventory must be created via NewInventory or RestoreInventory constructor")

// Status represents the disposition of a stock record.
// Only Available stock is a candidate for allocation.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Available stock can be allocated to orders.
	Available

	// OnHold stock is blocked from allocation pending review.
	OnHold

	// Damaged stock is blocked from allocation pending disposition.
	Damaged
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Available: "Available",
		OnHold:    "OnHold",
		Damaged:   "Damaged",
	}
}

// Validate checks that the status is one of the defined dispositions.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidError("inventory status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("inventory status")
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

// Inventory is one ledger row: a receivable unit of stock for one product in
// one storage location, belonging to one batch/lot. It is the only
// cross-request shared mutable resource in the pipeline.
//
// The ledger invariant, held at all times:
//
//	quantityOnHand = quantityAvailable + quantityAllocated
//
// and none of the three quantities may be negative. Allocation moves quantity
// from available to allocated (Reserve), deallocation moves it back
// (Release), and picking removes it from both allocated and on-hand
// (CommitDepletion).
type Inventory struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	warehouseID kernel.UUID
	productID   kernel.UUID

	locationCode string
	lpn          string
	batchNumber  string
	expiryDate   *time.Time
	receivedAt   time.Time

	status Status

	quantityOnHand    int
	quantityAvailable int
	quantityAllocated int

	// version supports optimistic concurrency in the persistence layer.
	version int64

	isConstructed bool
}

// NewInventory creates a fresh ledger row with the full on-hand quantity
// available and nothing allocated.
func NewInventory(
	id, tenantID, warehouseID, productID kernel.UUID,
	locationCode, lpn, batchNumber string,
	expiryDate *time.Time,
	receivedAt time.Time,
	quantityOnHand int,
) (*Inventory, error) {
	inv := &Inventory{
		lpn:               lpn,
		batchNumber:       batchNumber,
		expiryDate:        expiryDate,
		receivedAt:        receivedAt,
		status:            Available,
		quantityOnHand:    quantityOnHand,
		quantityAvailable: quantityOnHand,
		isConstructed:     true,
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setTenantID(tenantID),
		inv.setWarehouseID(warehouseID),
		inv.setProductID(productID),
		inv.setLocationCode(locationCode),
	); err != nil {
		return nil, err
	}

	if quantityOnHand < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("on-hand quantity",
			fmt.Errorf("%d is negative", quantityOnHand))
	}

	return inv, nil
}

// RestoreInventory reconstructs a ledger row from persistence and re-checks
// the ledger invariant so a corrupted row never enters the domain.
func RestoreInventory(
	id, tenantID, warehouseID, productID kernel.UUID,
	locationCode, lpn, batchNumber string,
	expiryDate *time.Time,
	receivedAt time.Time,
	status Status,
	quantityOnHand, quantityAvailable, quantityAllocated int,
	version int64,
) (*Inventory, error) {
	inv := &Inventory{
		lpn:               lpn,
		batchNumber:       batchNumber,
		expiryDate:        expiryDate,
		receivedAt:        receivedAt,
		status:            status,
		quantityOnHand:    quantityOnHand,
		quantityAvailable: quantityAvailable,
		quantityAllocated: quantityAllocated,
		version:           version,
		isConstructed:     true,
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setTenantID(tenantID),
		inv.setWarehouseID(warehouseID),
		inv.setProductID(productID),
		inv.setLocationCode(locationCode),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := inv.CheckInvariant(); err != nil {
		return nil, err
	}

	return inv, nil
}

// Validate ensures the Inventory instance was properly constructed.
func (i *Inventory) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInventoryIsNotConstructed
	}
	return nil
}

// ID returns the ledger row's unique identifier.
func (i *Inventory) ID() kernel.UUID {
	return i.id
}

// TenantID returns the owning tenant.
func (i *Inventory) TenantID() kernel.UUID {
	return i.tenantID
}

// WarehouseID returns the warehouse holding the stock.
func (i *Inventory) WarehouseID() kernel.UUID {
	return i.warehouseID
}

// ProductID returns the stocked product.
func (i *Inventory) ProductID() kernel.UUID {
	return i.productID
}

// LocationCode returns the storage location code.
func (i *Inventory) LocationCode() string {
	return i.locationCode
}

// LPN returns the license plate number of the handling unit.
func (i *Inventory) LPN() string {
	return i.lpn
}

// BatchNumber returns the batch/lot identifier.
func (i *Inventory) BatchNumber() string {
	return i.batchNumber
}

// ExpiryDate returns the lot expiry, or nil for non-perishable stock.
func (i *Inventory) ExpiryDate() *time.Time {
	return i.expiryDate
}

// ReceivedAt returns when the stock was received.
func (i *Inventory) ReceivedAt() time.Time {
	return i.receivedAt
}

// Status returns the stock disposition.
func (i *Inventory) Status() Status {
	return i.status
}

// QuantityOnHand returns the physical quantity in the location.
func (i *Inventory) QuantityOnHand() int {
	return i.quantityOnHand
}

// QuantityAvailable returns the quantity free for allocation.
func (i *Inventory) QuantityAvailable() int {
	return i.quantityAvailable
}

// QuantityAllocated returns the quantity reserved by allocations.
func (i *Inventory) QuantityAllocated() int {
	return i.quantityAllocated
}

// Version returns the optimistic concurrency version.
func (i *Inventory) Version() int64 {
	return i.version
}

// IsAllocatable reports whether the row can satisfy new allocations.
func (i *Inventory) IsAllocatable() bool {
	return i.status == Available && i.quantityAvailable > 0
}

// ExpiresWithin reports whether the lot expires inside the safety-buffer
// window measured from now. Lots without an expiry never expire.
func (i *Inventory) ExpiresWithin(bufferDays int, now time.Time) bool {
	if i.expiryDate == nil {
		return false
	}
	cutoff := now.AddDate(0, 0, bufferDays)
	return i.expiryDate.Before(cutoff)
}

// Reserve moves quantity from available to allocated.
// Fails with InsufficientQuantity when available < quantity.
func (i *Inventory) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("reserve quantity")
	}
	if i.quantityAvailable < quantity {
		return errs.NewInsufficientQuantityError(
			fmt.Sprintf("inventory %s", i.id), quantity, i.quantityAvailable)
	}
	i.quantityAvailable -= quantity
	i.quantityAllocated += quantity
	return nil
}

// Release moves quantity from allocated back to available.
// Fails with InsufficientQuantity when allocated < quantity.
func (i *Inventory) Release(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("release quantity")
	}
	if i.quantityAllocated < quantity {
		return errs.NewInsufficientQuantityError(
			fmt.Sprintf("inventory %s", i.id), quantity, i.quantityAllocated)
	}
	i.quantityAllocated -= quantity
	i.quantityAvailable += quantity
	return nil
}

// CommitDepletion removes a picked quantity from both allocated and on-hand.
// This is the point where physical removal becomes irreversible in the
// ledger. Fails with InsufficientQuantity when allocated < quantity.
func (i *Inventory) CommitDepletion(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("depletion quantity")
	}
	if i.quantityAllocated < quantity {
		return errs.NewInsufficientQuantityError(
			fmt.Sprintf("inventory %s", i.id), quantity, i.quantityAllocated)
	}
	i.quantityAllocated -= quantity
	i.quantityOnHand -= quantity
	return nil
}

// CheckInvariant verifies onHand = available + allocated with all three
// non-negative. A breach is fatal to the owning transaction.
func (i *Inventory) CheckInvariant() error {
	if i.quantityOnHand < 0 || i.quantityAvailable < 0 || i.quantityAllocated < 0 {
		return errs.NewValueIsInvalidErrorWithCause("inventory quantities",
			fmt.Errorf("negative quantity on inventory %s", i.id))
	}
	if i.quantityOnHand != i.quantityAvailable+i.quantityAllocated {
		return errs.NewValueIsInvalidErrorWithCause("inventory quantities",
			fmt.Errorf("on-hand %d != available %d + allocated %d on inventory %s",
				i.quantityOnHand, i.quantityAvailable, i.quantityAllocated, i.id))
	}
	return nil
}

func (i *Inventory) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Inventory) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.tenantID = id
	return nil
}

func (i *Inventory) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.warehouseID = id
	return nil
}

func (i *Inventory) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productID = id
	return nil
}

func (i *Inventory) setLocationCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("location code")
	}
	i.locationCode = code
	return nil
}
