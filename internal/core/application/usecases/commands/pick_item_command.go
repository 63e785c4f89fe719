package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrPickItemCommandIsNotConstructed = errors.New(
	"PickItemCommand must be created via NewPickItemCommand constructor",
)

// PickItemCommand represents one pick confirmation: a quantity taken from a
// location against one instruction of a pick task.
type PickItemCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	lineID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewPickItemCommand creates a command to confirm a pick.
func NewPickItemCommand(taskID, lineID kernel.UUID, quantity int) (PickItemCommand, error) {
	cmd := PickItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setLineID(lineID),
		cmd.setQuantity(quantity),
	); err != nil {
		return PickItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PickItemCommand) Validate() error {
	return c.guard.Validate(ErrPickItemCommandIsNotConstructed)
}

// TaskID returns the pick task being worked.
func (c PickItemCommand) TaskID() kernel.UUID {
	return c.taskID
}

// LineID returns the pick instruction being confirmed.
func (c PickItemCommand) LineID() kernel.UUID {
	return c.lineID
}

// Quantity returns the confirmed picked quantity.
func (c PickItemCommand) Quantity() int {
	return c.quantity
}

func (c *PickItemCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}
	c.taskID = taskID
	return nil
}

func (c *PickItemCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}
	c.lineID = lineID
	return nil
}

func (c *PickItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("pick quantity")
	}
	c.quantity = quantity
	return nil
}
