package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrDeallocateOrderCommandIsNotConstructed = errors.New(
	"DeallocateOrderCommand must be created via NewDeallocateOrderCommand constructor",
)

// DeallocateOrderCommand represents a request to release every live
// reservation an order holds and reset it to New.
type DeallocateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeallocateOrderCommand creates a command to deallocate an order.
func NewDeallocateOrderCommand(orderID kernel.UUID) (DeallocateOrderCommand, error) {
	cmd := DeallocateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return DeallocateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeallocateOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeallocateOrderCommandIsNotConstructed)
}

// OrderID returns the order to deallocate.
func (c DeallocateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *DeallocateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
