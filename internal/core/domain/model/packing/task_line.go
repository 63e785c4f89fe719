package packing

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// ErrTaskLineIsNotConstructed is returned when a TaskLine instance was not
// created through NewTaskLine or RestoreTaskLine.
var ErrTaskLineIsNotConstructed = errors.New(
	"TaskLine must be created via NewTaskLine or RestoreTaskLine constructor")

// LineStatus tracks one pack instruction's outcome.
type LineStatus int

const (
	// LinePending means the instruction is still being worked.
	LinePending LineStatus = iota + 1

	// LinePacked means the full picked quantity is in cartons.
	LinePacked

	// LineVariance means the line closed with a declared discrepancy
	// between picked and packed quantity.
	LineVariance
)

func getLineStatusStrings() map[LineStatus]string {
	return map[LineStatus]string{
		LinePending:  "Pending",
		LinePacked:   "Packed",
		LineVariance: "Variance",
	}
}

// Validate checks the line status is one of the defined outcomes.
func (s LineStatus) Validate() error {
	if _, ok := getLineStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("pack line status")
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

// TaskLine is one pack instruction: the picked quantity of one order line
// that must end up in cartons, or close with a declared variance, before the
// task can complete.
type TaskLine struct {
	id          kernel.UUID
	orderLineID kernel.UUID
	productID   kernel.UUID

	quantityToPack int
	quantityPacked int

	status LineStatus

	isConstructed bool
}

// NewTaskLine creates a pending pack instruction for a picked quantity.
func NewTaskLine(
	id, orderLineID, productID kernel.UUID,
	quantityToPack int,
) (*TaskLine, error) {
	l := &TaskLine{
		status:        LinePending,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setOrderLineID(orderLineID),
		l.setProductID(productID),
		l.setQuantityToPack(quantityToPack),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreTaskLine reconstructs a pack instruction from persistence.
func RestoreTaskLine(
	id, orderLineID, productID kernel.UUID,
	quantityToPack, quantityPacked int,
	status LineStatus,
) (*TaskLine, error) {
	l, err := NewTaskLine(id, orderLineID, productID, quantityToPack)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if quantityPacked < 0 || quantityPacked > quantityToPack {
		return nil, errs.NewValueIsOutOfRangeError(
			"packed quantity", quantityPacked, 0, quantityToPack)
	}
	l.quantityPacked = quantityPacked
	l.status = status
	return l, nil
}

// Validate ensures the TaskLine instance was properly constructed.
func (l *TaskLine) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrTaskLineIsNotConstructed
	}
	return nil
}

// ID returns the pack instruction's unique identifier.
func (l *TaskLine) ID() kernel.UUID {
	return l.id
}

// OrderLineID returns the order line being packed.
func (l *TaskLine) OrderLineID() kernel.UUID {
	return l.orderLineID
}

// ProductID returns the product being packed.
func (l *TaskLine) ProductID() kernel.UUID {
	return l.productID
}

// QuantityToPack returns the picked quantity that must be packed.
func (l *TaskLine) QuantityToPack() int {
	return l.quantityToPack
}

// QuantityPacked returns the quantity already in cartons.
func (l *TaskLine) QuantityPacked() int {
	return l.quantityPacked
}

// Status returns the line outcome.
func (l *TaskLine) Status() LineStatus {
	return l.status
}

// Remaining returns the quantity not yet in a carton.
func (l *TaskLine) Remaining() int {
	return l.quantityToPack - l.quantityPacked
}

// Variance returns packed minus picked quantity. Zero for a fully packed
// line, negative when the line closed short of its picked quantity.
func (l *TaskLine) Variance() int {
	return l.quantityPacked - l.quantityToPack
}

// IsFullyPacked reports whether everything picked is in cartons.
func (l *TaskLine) IsFullyPacked() bool {
	return l.quantityPacked == l.quantityToPack
}

// IsResolved reports whether the line needs no further packing.
func (l *TaskLine) IsResolved() bool {
	return l.status != LinePending
}

// RecordPack records a quantity placed into a carton. Packing beyond the
// picked quantity or against a closed line is rejected.
func (l *TaskLine) RecordPack(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("pack quantity")
	}
	if l.status != LinePending {
		return errs.NewInvalidStateTransitionError(
			"pack line", l.status.String(), LinePacked.String())
	}
	if l.quantityPacked+quantity > l.quantityToPack {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"pack quantity", quantity, 1, l.Remaining(),
			fmt.Errorf("over-pack on line %s", l.id))
	}
	l.quantityPacked += quantity
	if l.quantityPacked == l.quantityToPack {
		l.status = LinePacked
	}
	return nil
}

// CloseWithVariance closes an under-packed line with its discrepancy
// declared. A fully packed line has nothing to declare.
func (l *TaskLine) CloseWithVariance() error {
	if l.status != LinePending {
		return errs.NewInvalidStateTransitionError(
			"pack line", l.status.String(), LineVariance.String())
	}
	l.status = LineVariance
	return nil
}

func (l *TaskLine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *TaskLine) setOrderLineID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.orderLineID = id
	return nil
}

func (l *TaskLine) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.productID = id
	return nil
}

func (l *TaskLine) setQuantityToPack(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity to pack")
	}
	l.quantityToPack = quantity
	return nil
}
