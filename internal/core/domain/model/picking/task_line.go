package picking

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// ErrTaskLineIsNotConstructed is returned when a TaskLine instance was not
// created through NewTaskLine or RestoreTaskLine.
var ErrTaskLineIsNotConstructed = errors.New(
	"TaskLine must be created via NewTaskLine or RestoreTaskLine constructor")

// LineStatus tracks one pick instruction's outcome.
type LineStatus int

const (
	// LinePending means the instruction has not been fully worked yet.
	LinePending LineStatus = iota + 1

	// LinePicked means the full instructed quantity was picked.
	LinePicked

	// LineShort means the task completed with this line under-picked.
	LineShort
)

func getLineStatusStrings() map[LineStatus]string {
	return map[LineStatus]string{
		LinePending: "Pending",
		LinePicked:  "Picked",
		LineShort:   "Short",
	}
}

// Validate checks the line status is one of the defined outcomes.
func (s LineStatus) Validate() error {
	if _, ok := getLineStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("pick line status")
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

// TaskLine is one pick instruction: go to a location, take a quantity of a
// product from a specific allocation's handling unit. The location, LPN and
// batch come from the allocation snapshot.
type TaskLine struct {
	id           kernel.UUID
	orderID      kernel.UUID
	orderLineID  kernel.UUID
	allocationID kernel.UUID
	productID    kernel.UUID

	locationCode string
	lpn          string
	batchNumber  string

	quantityToPick int
	quantityPicked int

	status   LineStatus
	pickedAt *time.Time

	isConstructed bool
}

// NewTaskLine creates a pending pick instruction.
func NewTaskLine(
	id, orderID, orderLineID, allocationID, productID kernel.UUID,
	locationCode, lpn, batchNumber string,
	quantityToPick int,
) (*TaskLine, error) {
	l := &TaskLine{
		lpn:           lpn,
		batchNumber:   batchNumber,
		status:        LinePending,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setOrderID(orderID),
		l.setOrderLineID(orderLineID),
		l.setAllocationID(allocationID),
		l.setProductID(productID),
		l.setLocationCode(locationCode),
		l.setQuantityToPick(quantityToPick),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreTaskLine reconstructs a pick instruction from persistence.
func RestoreTaskLine(
	id, orderID, orderLineID, allocationID, productID kernel.UUID,
	locationCode, lpn, batchNumber string,
	quantityToPick, quantityPicked int,
	status LineStatus,
	pickedAt *time.Time,
) (*TaskLine, error) {
	l := &TaskLine{
		lpn:            lpn,
		batchNumber:    batchNumber,
		quantityPicked: quantityPicked,
		status:         status,
		pickedAt:       pickedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setOrderID(orderID),
		l.setOrderLineID(orderLineID),
		l.setAllocationID(allocationID),
		l.setProductID(productID),
		l.setLocationCode(locationCode),
		l.setQuantityToPick(quantityToPick),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if quantityPicked < 0 || quantityPicked > quantityToPick {
		return nil, errs.NewValueIsOutOfRangeError(
			"picked quantity", quantityPicked, 0, quantityToPick)
	}

	return l, nil
}

// Validate ensures the TaskLine instance was properly constructed.
func (l *TaskLine) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrTaskLineIsNotConstructed
	}
	return nil
}

// ID returns the pick instruction's unique identifier.
func (l *TaskLine) ID() kernel.UUID {
	return l.id
}

// OrderID returns the order the pick serves.
func (l *TaskLine) OrderID() kernel.UUID {
	return l.orderID
}

// OrderLineID returns the order line the pick serves.
func (l *TaskLine) OrderLineID() kernel.UUID {
	return l.orderLineID
}

// AllocationID returns the reservation being picked.
func (l *TaskLine) AllocationID() kernel.UUID {
	return l.allocationID
}

// ProductID returns the product to pick.
func (l *TaskLine) ProductID() kernel.UUID {
	return l.productID
}

// LocationCode returns the pick-from location.
func (l *TaskLine) LocationCode() string {
	return l.locationCode
}

// LPN returns the handling unit to pick from.
func (l *TaskLine) LPN() string {
	return l.lpn
}

// BatchNumber returns the batch to pick.
func (l *TaskLine) BatchNumber() string {
	return l.batchNumber
}

// QuantityToPick returns the instructed quantity.
func (l *TaskLine) QuantityToPick() int {
	return l.quantityToPick
}

// QuantityPicked returns the quantity picked so far.
func (l *TaskLine) QuantityPicked() int {
	return l.quantityPicked
}

// Status returns the line outcome.
func (l *TaskLine) Status() LineStatus {
	return l.status
}

// PickedAt returns when the line was last picked against, or nil.
func (l *TaskLine) PickedAt() *time.Time {
	return l.pickedAt
}

// Shortfall returns the quantity still unpicked.
func (l *TaskLine) Shortfall() int {
	return l.quantityToPick - l.quantityPicked
}

// RecordPick records a picked quantity against the instruction. Picking
// beyond the instructed quantity is rejected.
func (l *TaskLine) RecordPick(quantity int, at time.Time) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("pick quantity")
	}
	if l.status != LinePending {
		return errs.NewInvalidStateTransitionError(
			"pick line", l.status.String(), LinePicked.String())
	}
	if l.quantityPicked+quantity > l.quantityToPick {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"pick quantity", quantity, 1, l.quantityToPick-l.quantityPicked,
			fmt.Errorf("over-pick on line %s", l.id))
	}
	l.quantityPicked += quantity
	l.pickedAt = &at
	if l.quantityPicked == l.quantityToPick {
		l.status = LinePicked
	}
	return nil
}

// CloseShort marks an under-picked line as short when the task completes.
func (l *TaskLine) CloseShort() error {
	if l.status != LinePending {
		return errs.NewInvalidStateTransitionError(
			"pick line", l.status.String(), LineShort.String())
	}
	l.status = LineShort
	return nil
}

// IsResolved reports whether the line needs no further picking.
func (l *TaskLine) IsResolved() bool {
	return l.status != LinePending
}

func (l *TaskLine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *TaskLine) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.orderID = id
	return nil
}

func (l *TaskLine) setOrderLineID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.orderLineID = id
	return nil
}

func (l *TaskLine) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.allocationID = id
	return nil
}

func (l *TaskLine) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.productID = id
	return nil
}

func (l *TaskLine) setLocationCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("location code")
	}
	l.locationCode = code
	return nil
}

func (l *TaskLine) setQuantityToPick(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity to pick")
	}
	l.quantityToPick = quantity
	return nil
}
