package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
)

// CreateOrderLine is one requested product quantity on a new order.
// PolicyOverride, when set, replaces the order's allocation policy for
// this line only.
type CreateOrderLine struct {
	ProductID      kernel.UUID
	Quantity       int
	PolicyOverride *order.Policy
}

// CreateOrderCommand represents a request to register a new outbound order
// in New status, ready for the allocation job to pick up.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	tenantID    kernel.UUID
	warehouseID kernel.UUID
	orderNumber string
	policy      order.Policy
	priority    int
	lines       []CreateOrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new outbound order.
// Validates identifiers, the order number, the allocation policy and every
// requested line.
func NewCreateOrderCommand(
	orderID, tenantID, warehouseID kernel.UUID,
	orderNumber string,
	policy order.Policy,
	priority int,
	lines []CreateOrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		priority: priority,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenantID(tenantID),
		cmd.setWarehouseID(warehouseID),
		cmd.setOrderNumber(orderNumber),
		cmd.setPolicy(policy),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TenantID returns the owning tenant.
func (c CreateOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// WarehouseID returns the fulfilling warehouse.
func (c CreateOrderCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// OrderNumber returns the human-facing order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Policy returns the order-level allocation policy.
func (c CreateOrderCommand) Policy() order.Policy {
	return c.policy
}

// Priority returns the fulfillment priority, higher first.
func (c CreateOrderCommand) Priority() int {
	return c.priority
}

// Lines returns the requested product quantities.
func (c CreateOrderCommand) Lines() []CreateOrderLine {
	return c.lines
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.tenantID = id
	return nil
}

func (c *CreateOrderCommand) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.warehouseID = id
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(number string) error {
	if number == "" {
		return ErrOrderNumberIsRequired
	}
	c.orderNumber = number
	return nil
}

func (c *CreateOrderCommand) setPolicy(policy order.Policy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	c.policy = policy
	return nil
}

func (c *CreateOrderCommand) setLines(lines []CreateOrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}
	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidError("line quantity")
		}
		if line.PolicyOverride != nil {
			if err := line.PolicyOverride.Validate(); err != nil {
				return err
			}
		}
	}
	c.lines = lines
	return nil
}
