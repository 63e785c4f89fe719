package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrPackItemCommandIsNotConstructed = errors.New(
	"PackItemCommand must be created via NewPackItemCommand constructor",
)

// PackItemCommand represents placing a quantity of one pack instruction
// into an open carton.
type PackItemCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	lineID   kernel.UUID
	cartonID kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewPackItemCommand creates a command to pack a quantity into a carton.
func NewPackItemCommand(taskID, lineID, cartonID kernel.UUID, quantity int) (PackItemCommand, error) {
	cmd := PackItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setLineID(lineID),
		cmd.setCartonID(cartonID),
		cmd.setQuantity(quantity),
	); err != nil {
		return PackItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PackItemCommand) Validate() error {
	return c.guard.Validate(ErrPackItemCommandIsNotConstructed)
}

// TaskID returns the pack task being worked.
func (c PackItemCommand) TaskID() kernel.UUID {
	return c.taskID
}

// LineID returns the pack instruction being packed.
func (c PackItemCommand) LineID() kernel.UUID {
	return c.lineID
}

// CartonID returns the carton receiving the quantity.
func (c PackItemCommand) CartonID() kernel.UUID {
	return c.cartonID
}

// Quantity returns the quantity placed into the carton.
func (c PackItemCommand) Quantity() int {
	return c.quantity
}

func (c *PackItemCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}
	c.taskID = taskID
	return nil
}

func (c *PackItemCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}
	c.lineID = lineID
	return nil
}

func (c *PackItemCommand) setCartonID(cartonID kernel.UUID) error {
	if err := cartonID.Validate(); err != nil {
		return err
	}
	c.cartonID = cartonID
	return nil
}

func (c *PackItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("pack quantity")
	}
	c.quantity = quantity
	return nil
}
