package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrGeneratePackTaskCommandIsNotConstructed = errors.New(
	"GeneratePackTaskCommand must be created via NewGeneratePackTaskCommand constructor",
)

// GeneratePackTaskCommand represents a request to open packing-station work
// for a picked order.
type GeneratePackTaskCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGeneratePackTaskCommand creates a command to generate a pack task.
func NewGeneratePackTaskCommand(orderID kernel.UUID) (GeneratePackTaskCommand, error) {
	cmd := GeneratePackTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return GeneratePackTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GeneratePackTaskCommand) Validate() error {
	return c.guard.Validate(ErrGeneratePackTaskCommandIsNotConstructed)
}

// OrderID returns the picked order to pack.
func (c GeneratePackTaskCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *GeneratePackTaskCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
