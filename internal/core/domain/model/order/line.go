package order

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through NewLine or RestoreLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine constructor")

// LineStatus represents the allocation state of a single order line.
type LineStatus int

const (
	// LineUnknown represents an invalid or undefined line status.
	LineUnknown LineStatus = iota

	// LinePending means the line has not been through allocation yet.
	LinePending

	// LinePartiallyAllocated means some but not all ordered quantity is reserved.
	LinePartiallyAllocated

	// LineAllocated means the full ordered quantity is reserved.
	LineAllocated

	// LineBackordered means allocation found no available stock at all.
	LineBackordered
)

func getLineStatusStrings() map[LineStatus]string {
	return map[LineStatus]string{
		LineUnknown:            "Unknown",
		LinePending:            "Pending",
		LinePartiallyAllocated: "PartiallyAllocated",
		LineAllocated:          "Allocated",
		LineBackordered:        "Backordered",
	}
}

// Validate checks that the line status is one of the defined values.
func (s LineStatus) Validate() error {
	if s == LineUnknown {
		return errs.NewValueIsInvalidError("line status")
	}
	if _, ok := getLineStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("line status")
	}
	return nil
}

// String returns the human-readable name of the line status.
func (s LineStatus) String() string {
	if str, ok := getLineStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Line is one product line of an order. It tracks the ordered quantity and
// the quantities that each pipeline stage has processed so far.
//
// Invariants, enforced by every mutating method:
//
//	0 <= quantityAllocated <= quantityOrdered
//	0 <= quantityPicked    <= quantityAllocated
//	0 <= quantityPacked    <= quantityPicked
//	0 <= quantityShipped   <= quantityPacked
//
// Each quantity is monotonically non-decreasing until a deallocation resets
// the allocation back to zero.
type Line struct {
	id        kernel.UUID
	productID kernel.UUID

	quantityOrdered     int
	quantityAllocated   int
	quantityBackordered int
	quantityPicked      int
	quantityPacked      int
	quantityShipped     int

	status LineStatus

	// policyOverride takes precedence over the order-level policy when set.
	policyOverride *Policy

	isConstructed bool
}

// NewLine creates an order line in Pending status.
// The ordered quantity must be positive.
func NewLine(id, productID kernel.UUID, quantityOrdered int, policyOverride *Policy) (*Line, error) {
	line := &Line{
		status:        LinePending,
		isConstructed: true,
	}

	if err := errors.Join(
		line.setID(id),
		line.setProductID(productID),
		line.setQuantityOrdered(quantityOrdered),
		line.setPolicyOverride(policyOverride),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// RestoreLine reconstructs a Line from persistence without re-running the
// construction-time rules on quantities already accepted by the pipeline.
func RestoreLine(
	id, productID kernel.UUID,
	quantityOrdered, quantityAllocated, quantityBackordered, quantityPicked, quantityPacked, quantityShipped int,
	status LineStatus,
	policyOverride *Policy,
) (*Line, error) {
	line := &Line{
		quantityAllocated:   quantityAllocated,
		quantityBackordered: quantityBackordered,
		quantityPicked:      quantityPicked,
		quantityPacked:      quantityPacked,
		quantityShipped:     quantityShipped,
		status:              status,
		isConstructed:       true,
	}

	if err := errors.Join(
		line.setID(id),
		line.setProductID(productID),
		line.setQuantityOrdered(quantityOrdered),
		line.setPolicyOverride(policyOverride),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := line.checkQuantityChain(); err != nil {
		return nil, err
	}

	return line, nil
}

// Validate ensures the Line instance was properly constructed.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// ProductID returns the product this line orders.
func (l *Line) ProductID() kernel.UUID {
	return l.productID
}

// QuantityOrdered returns the quantity the customer ordered.
func (l *Line) QuantityOrdered() int {
	return l.quantityOrdered
}

// QuantityAllocated returns the quantity currently reserved for this line.
func (l *Line) QuantityAllocated() int {
	return l.quantityAllocated
}

// QuantityBackordered returns the unfulfillable remainder recorded by
// allocation or by short-pick variance handling.
func (l *Line) QuantityBackordered() int {
	return l.quantityBackordered
}

// QuantityPicked returns the quantity physically removed from stock.
func (l *Line) QuantityPicked() int {
	return l.quantityPicked
}

// QuantityPacked returns the quantity packed into cartons.
func (l *Line) QuantityPacked() int {
	return l.quantityPacked
}

// QuantityShipped returns the quantity on the shipment record.
func (l *Line) QuantityShipped() int {
	return l.quantityShipped
}

// Status returns the line's allocation status.
func (l *Line) Status() LineStatus {
	return l.status
}

// PolicyOverride returns the line-level policy override, or nil.
func (l *Line) PolicyOverride() *Policy {
	return l.policyOverride
}

// EffectivePolicy resolves the policy for this line: the line-level override
// when present, otherwise the order-level policy.
func (l *Line) EffectivePolicy(orderPolicy Policy) Policy {
	if l.policyOverride != nil {
		return *l.policyOverride
	}
	return orderPolicy
}

// RemainingToAllocate returns the quantity allocation still needs to cover.
func (l *Line) RemainingToAllocate() int {
	return l.quantityOrdered - l.quantityAllocated
}

// FinishAllocation records the outcome of one allocation run for this line.
// The allocated quantity is the total reserved across all consumed lots;
// the remainder becomes the backordered quantity. Line status follows:
// Allocated when fully covered, PartiallyAllocated when partially, and
// Backordered when nothing was reserved.
func (l *Line) FinishAllocation(allocated int) error {
	if allocated < 0 || allocated > l.quantityOrdered {
		return errs.NewValueIsOutOfRangeError("allocated quantity", allocated, 0, l.quantityOrdered)
	}

	l.quantityAllocated = allocated
	l.quantityBackordered = l.quantityOrdered - allocated

	switch {
	case allocated == l.quantityOrdered:
		l.status = LineAllocated
	case allocated > 0:
		l.status = LinePartiallyAllocated
	default:
		l.status = LineBackordered
	}

	return nil
}

// ResetAllocation reverses the allocation outcome: allocation and backorder
// quantities return to zero and the line becomes Pending again. Used by
// deallocation and cancellation.
func (l *Line) ResetAllocation() {
	l.quantityAllocated = 0
	l.quantityBackordered = 0
	l.status = LinePending
}

// ReleaseUnpicked shrinks the allocation down to what was already picked,
// releasing the unpicked remainder. Quantities physically removed from stock
// stay on record. Used by cancellation, which may arrive mid-pick.
func (l *Line) ReleaseUnpicked() {
	l.quantityAllocated = l.quantityPicked
	l.quantityBackordered = 0
	if l.quantityPicked == 0 {
		l.status = LinePending
	}
}

// RecordPick adds a picked quantity. The total picked must not exceed the
// allocated quantity.
func (l *Line) RecordPick(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("picked quantity")
	}
	if l.quantityPicked+quantity > l.quantityAllocated {
		return errs.NewValueIsOutOfRangeError(
			"picked quantity", l.quantityPicked+quantity, 0, l.quantityAllocated)
	}
	l.quantityPicked += quantity
	return nil
}

// ClosePickShortfall shrinks the allocation to the picked quantity and moves
// the unpicked remainder onto the backordered quantity. Used when a pick
// task completes short: the caller releases the same remainder back to the
// ledger in the same transaction.
func (l *Line) ClosePickShortfall() int {
	shortfall := l.quantityAllocated - l.quantityPicked
	if shortfall <= 0 {
		return 0
	}
	l.quantityAllocated = l.quantityPicked
	l.quantityBackordered += shortfall
	if l.quantityAllocated < l.quantityOrdered {
		l.status = LinePartiallyAllocated
	}
	if l.quantityAllocated == 0 {
		l.status = LineBackordered
	}
	return shortfall
}

// RecordShortfall moves a short-picked remainder onto the backordered
// quantity so the shortfall is visible for replenishment follow-up.
func (l *Line) RecordShortfall(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("shortfall quantity")
	}
	l.quantityBackordered += quantity
	return nil
}

// RecordPack adds a packed quantity. The total packed must not exceed the
// picked quantity.
func (l *Line) RecordPack(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("packed quantity")
	}
	if l.quantityPacked+quantity > l.quantityPicked {
		return errs.NewValueIsOutOfRangeError(
			"packed quantity", l.quantityPacked+quantity, 0, l.quantityPicked)
	}
	l.quantityPacked += quantity
	return nil
}

// RecordShip sets the shipped quantity from the shipment record. The shipped
// quantity must not exceed the packed quantity.
func (l *Line) RecordShip(quantity int) error {
	if quantity < 0 || quantity > l.quantityPacked {
		return errs.NewValueIsOutOfRangeError("shipped quantity", quantity, 0, l.quantityPacked)
	}
	l.quantityShipped = quantity
	return nil
}

// checkQuantityChain verifies the monotone quantity invariants on restore.
func (l *Line) checkQuantityChain() error {
	if l.quantityAllocated < 0 || l.quantityAllocated > l.quantityOrdered {
		return errs.NewValueIsOutOfRangeError("allocated quantity", l.quantityAllocated, 0, l.quantityOrdered)
	}
	if l.quantityPicked < 0 || l.quantityPicked > l.quantityAllocated {
		return errs.NewValueIsOutOfRangeError("picked quantity", l.quantityPicked, 0, l.quantityAllocated)
	}
	if l.quantityPacked < 0 || l.quantityPacked > l.quantityPicked {
		return errs.NewValueIsOutOfRangeError("packed quantity", l.quantityPacked, 0, l.quantityPicked)
	}
	if l.quantityShipped < 0 || l.quantityShipped > l.quantityPacked {
		return errs.NewValueIsOutOfRangeError("shipped quantity", l.quantityShipped, 0, l.quantityPacked)
	}
	if l.quantityBackordered < 0 {
		return errs.NewValueIsInvalidError("backordered quantity")
	}
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setQuantityOrdered(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("ordered quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantityOrdered = quantity
	return nil
}

func (l *Line) setPolicyOverride(policy *Policy) error {
	if policy != nil {
		if err := policy.Validate(); err != nil {
			return err
		}
	}
	l.policyOverride = policy
	return nil
}
