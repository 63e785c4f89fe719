package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrGenerateShippingLabelCommandIsNotConstructed = errors.New(
		"GenerateShippingLabelCommand must be created via NewGenerateShippingLabelCommand constructor",
	)
	ErrCarrierCodeIsRequired = errors.New("carrier code is required")
)

// GenerateShippingLabelCommand represents a request to purchase a shipping
// label for a fully packed task.
type GenerateShippingLabelCommand struct { //nolint:recvcheck //using for validation
	taskID       kernel.UUID
	carrierCode  string
	serviceLevel string

	guard guard.ConstructorGuard
}

// NewGenerateShippingLabelCommand creates a command to generate a label.
func NewGenerateShippingLabelCommand(
	taskID kernel.UUID,
	carrierCode, serviceLevel string,
) (GenerateShippingLabelCommand, error) {
	cmd := GenerateShippingLabelCommand{
		serviceLevel: serviceLevel,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setCarrierCode(carrierCode),
	); err != nil {
		return GenerateShippingLabelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateShippingLabelCommand) Validate() error {
	return c.guard.Validate(ErrGenerateShippingLabelCommandIsNotConstructed)
}

// TaskID returns the pack task to label.
func (c GenerateShippingLabelCommand) TaskID() kernel.UUID {
	return c.taskID
}

// CarrierCode returns the chosen carrier.
func (c GenerateShippingLabelCommand) CarrierCode() string {
	return c.carrierCode
}

// ServiceLevel returns the chosen carrier service.
func (c GenerateShippingLabelCommand) ServiceLevel() string {
	return c.serviceLevel
}

func (c *GenerateShippingLabelCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}
	c.taskID = taskID
	return nil
}

func (c *GenerateShippingLabelCommand) setCarrierCode(code string) error {
	if code == "" {
		return ErrCarrierCodeIsRequired
	}
	c.carrierCode = code
	return nil
}
