package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents the carrier handoff of a packed order.
// Carrier and service level name the carrier the label was purchased from.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	carrierCode  string
	serviceLevel string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to hand a packed order to its
// carrier.
func NewCreateShipmentCommand(
	orderID kernel.UUID,
	carrierCode, serviceLevel string,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		serviceLevel: serviceLevel,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCarrierCode(carrierCode),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// OrderID returns the packed order to ship.
func (c CreateShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CarrierCode returns the carrier taking the parcels.
func (c CreateShipmentCommand) CarrierCode() string {
	return c.carrierCode
}

// ServiceLevel returns the purchased carrier service.
func (c CreateShipmentCommand) ServiceLevel() string {
	return c.serviceLevel
}

func (c *CreateShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateShipmentCommand) setCarrierCode(code string) error {
	if code == "" {
		return ErrCarrierCodeIsRequired
	}
	c.carrierCode = code
	return nil
}
