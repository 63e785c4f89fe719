package order

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderHasNoLines is returned when an order is submitted without lines.
	ErrOrderHasNoLines = errors.New("order must have at least one line")
)

// Order represents one customer fulfillment request. It is the aggregate root
// for the outbound pipeline: every stage (allocation, picking, packing,
// shipping) advances its status and is gated by the previous stage.
//
// Order follows these invariants:
//   - Status only advances through the transitions defined on Status
//   - Unit totals are always the sum over the owned lines (computed on read,
//     never stored)
//   - Lines are owned exclusively by the order
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	warehouseID kernel.UUID

	orderNumber string
	priority    int
	policy      Policy

	status Status

	// statusBeforeHold remembers where to resume when a manual hold is released.
	statusBeforeHold *Status

	carrierCode    string
	serviceLevel   string
	trackingNumber string

	shippedAt   *time.Time
	deliveredAt *time.Time

	cancelledAt        *time.Time
	cancellationReason string

	lines []*Line

	isConstructed bool
}

// NewOrder creates a new Order in New status with the given lines.
// All identifiers must be valid, the order number must not be empty, the
// policy must be one of the closed set, and at least one line is required.
func NewOrder(
	id, tenantID, warehouseID kernel.UUID,
	orderNumber string,
	policy Policy,
	priority int,
	lines []*Line,
) (*Order, error) {
	o := &Order{
		status:        New,
		priority:      priority,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setWarehouseID(warehouseID),
		o.setOrderNumber(orderNumber),
		o.setPolicy(policy),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its
// pipeline position and carrier metadata.
func RestoreOrder(
	id, tenantID, warehouseID kernel.UUID,
	orderNumber string,
	policy Policy,
	priority int,
	status Status,
	statusBeforeHold *Status,
	carrierCode, serviceLevel, trackingNumber string,
	shippedAt, deliveredAt, cancelledAt *time.Time,
	cancellationReason string,
	lines []*Line,
) (*Order, error) {
	o := &Order{
		priority:           priority,
		status:             status,
		statusBeforeHold:   statusBeforeHold,
		carrierCode:        carrierCode,
		serviceLevel:       serviceLevel,
		trackingNumber:     trackingNumber,
		shippedAt:          shippedAt,
		deliveredAt:        deliveredAt,
		cancelledAt:        cancelledAt,
		cancellationReason: cancellationReason,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setWarehouseID(warehouseID),
		o.setOrderNumber(orderNumber),
		o.setPolicy(policy),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// This method should be called when reconstructing orders from persistence
// to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the owning tenant.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// WarehouseID returns the fulfilling warehouse.
func (o *Order) WarehouseID() kernel.UUID {
	return o.warehouseID
}

// OrderNumber returns the human-facing order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Priority returns the fulfillment priority (higher is more urgent).
func (o *Order) Priority() int {
	return o.priority
}

// Policy returns the order-level allocation policy.
func (o *Order) Policy() Policy {
	return o.policy
}

// Status returns the current pipeline status.
func (o *Order) Status() Status {
	return o.status
}

// StatusBeforeHold returns the status the order held from, or nil.
func (o *Order) StatusBeforeHold() *Status {
	return o.statusBeforeHold
}

// CarrierCode returns the carrier stamped at ship time.
func (o *Order) CarrierCode() string {
	return o.carrierCode
}

// ServiceLevel returns the carrier service level stamped at ship time.
func (o *Order) ServiceLevel() string {
	return o.serviceLevel
}

// TrackingNumber returns the tracking number stamped at ship time.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// ShippedAt returns the ship timestamp, or nil before shipping.
func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

// DeliveredAt returns the delivery timestamp, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CancelledAt returns the cancellation timestamp, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// CancellationReason returns the reason recorded at cancellation.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// Lines returns the owned order lines.
func (o *Order) Lines() []*Line {
	return o.lines
}

// Line returns the owned line with the given ID.
func (o *Order) Line(lineID kernel.UUID) (*Line, error) {
	for _, l := range o.lines {
		if l.ID().IsEqual(lineID) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderLineId", lineID.String())
}

// Unit totals are derived from the owned lines on every read so a stored
// total can never drift from the line-level truth.

// UnitsOrdered returns the total ordered quantity across lines.
func (o *Order) UnitsOrdered() int { return o.sumLines(func(l *Line) int { return l.QuantityOrdered() }) }

// UnitsAllocated returns the total allocated quantity across lines.
func (o *Order) UnitsAllocated() int {
	return o.sumLines(func(l *Line) int { return l.QuantityAllocated() })
}

// UnitsBackordered returns the total backordered quantity across lines.
func (o *Order) UnitsBackordered() int {
	return o.sumLines(func(l *Line) int { return l.QuantityBackordered() })
}

// UnitsPicked returns the total picked quantity across lines.
func (o *Order) UnitsPicked() int { return o.sumLines(func(l *Line) int { return l.QuantityPicked() }) }

// UnitsPacked returns the total packed quantity across lines.
func (o *Order) UnitsPacked() int { return o.sumLines(func(l *Line) int { return l.QuantityPacked() }) }

// UnitsShipped returns the total shipped quantity across lines.
func (o *Order) UnitsShipped() int {
	return o.sumLines(func(l *Line) int { return l.QuantityShipped() })
}

func (o *Order) sumLines(f func(*Line) int) int {
	total := 0
	for _, l := range o.lines {
		total += f(l)
	}
	return total
}

// CanAllocate reports whether an allocation run may start: allocation is
// legal from New and from the AllocationFailed retry path.
func (o *Order) CanAllocate() bool {
	return o.status == New || o.status == AllocationFailed
}

// PrepareReallocation resets an AllocationFailed order to New so a retry run
// starts from a clean slate. No-op when the order is already New.
func (o *Order) PrepareReallocation() error {
	if o.status == New {
		return nil
	}
	newStatus, err := o.status.TransitionTo(New)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// CompleteAllocation rolls the per-line allocation outcomes up into the
// order status: Allocated when every line is fully covered,
// PartiallyAllocated when at least one line holds a reservation, and
// AllocationFailed when no line received anything.
func (o *Order) CompleteAllocation() error {
	target := o.allocationOutcome()
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) allocationOutcome() Status {
	fullyAllocated := 0
	anyAllocation := false
	for _, l := range o.lines {
		if l.QuantityAllocated() > 0 {
			anyAllocation = true
		}
		if l.Status() == LineAllocated {
			fullyAllocated++
		}
	}

	switch {
	case fullyAllocated == len(o.lines):
		return Allocated
	case anyAllocation:
		return PartiallyAllocated
	default:
		return AllocationFailed
	}
}

// ResetAllocation returns a deallocated order to New and resets every line.
// An order already in New is left untouched so repeated deallocation is
// idempotent.
func (o *Order) ResetAllocation() error {
	if o.status == New {
		return nil
	}
	newStatus, err := o.status.TransitionTo(New)
	if err != nil {
		return err
	}
	for _, l := range o.lines {
		l.ResetAllocation()
	}
	o.status = newStatus
	return nil
}

// StartPicking advances a fully allocated order into the picking stage.
func (o *Order) StartPicking() error {
	newStatus, err := o.status.TransitionTo(Picking)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// CompletePicking marks picking done for the whole order.
func (o *Order) CompletePicking() error {
	newStatus, err := o.status.TransitionTo(Picked)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// StartPacking advances a picked order into the packing stage.
func (o *Order) StartPacking() error {
	newStatus, err := o.status.TransitionTo(Packing)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// CompletePacking marks packing done for the whole order.
func (o *Order) CompletePacking() error {
	newStatus, err := o.status.TransitionTo(Packed)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Ship stamps carrier metadata and the ship date on a packed order and
// records the shipped quantity on every line.
func (o *Order) Ship(carrierCode, serviceLevel, trackingNumber string, shippedAt time.Time) error {
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrier code")
	}
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	newStatus, err := o.status.TransitionTo(Shipped)
	if err != nil {
		return err
	}

	for _, l := range o.lines {
		if shipErr := l.RecordShip(l.QuantityPacked()); shipErr != nil {
			return shipErr
		}
	}

	o.status = newStatus
	o.carrierCode = carrierCode
	o.serviceLevel = serviceLevel
	o.trackingNumber = trackingNumber
	o.shippedAt = &shippedAt
	return nil
}

// MarkDelivered completes the lifecycle after carrier delivery confirmation.
func (o *Order) MarkDelivered(deliveredAt time.Time) error {
	newStatus, err := o.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.deliveredAt = &deliveredAt
	return nil
}

// Hold moves the order onto the manual hold branch, remembering where it was.
func (o *Order) Hold() error {
	newStatus, err := o.status.Hold()
	if err != nil {
		return err
	}
	previous := o.status
	o.statusBeforeHold = &previous
	o.status = newStatus
	return nil
}

// ReleaseHold resumes the order at the status it held from.
func (o *Order) ReleaseHold() error {
	if o.status != OnHold || o.statusBeforeHold == nil {
		return errs.NewInvalidStateTransitionError("order", o.status.String(), "release")
	}
	o.status = *o.statusBeforeHold
	o.statusBeforeHold = nil
	return nil
}

// Cancel terminates the order from any pre-shipped state and releases every
// line's unpicked allocation. The caller is responsible for releasing the
// matching reserved inventory in the same transaction.
func (o *Order) Cancel(reason string, cancelledAt time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	for _, l := range o.lines {
		l.ReleaseUnpicked()
	}
	o.status = newStatus
	o.cancellationReason = reason
	o.cancelledAt = &cancelledAt
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.tenantID = id
	return nil
}

func (o *Order) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.warehouseID = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setPolicy(policy Policy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	o.policy = policy
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	o.lines = lines
	return nil
}
