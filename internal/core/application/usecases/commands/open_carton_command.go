package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrOpenCartonCommandIsNotConstructed = errors.New(
	"OpenCartonCommand must be created via NewOpenCartonCommand constructor",
)

// OpenCartonCommand represents a packer opening a new carton at the station.
// The first carton opened by a packer also starts the pack task.
type OpenCartonCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	assignee string

	lengthCm     decimal.Decimal
	widthCm      decimal.Decimal
	heightCm     decimal.Decimal
	tareWeightKg decimal.Decimal

	guard guard.ConstructorGuard
}

// NewOpenCartonCommand creates a command to open a carton.
func NewOpenCartonCommand(
	taskID kernel.UUID,
	assignee string,
	lengthCm, widthCm, heightCm, tareWeightKg decimal.Decimal,
) (OpenCartonCommand, error) {
	cmd := OpenCartonCommand{
		lengthCm:     lengthCm,
		widthCm:      widthCm,
		heightCm:     heightCm,
		tareWeightKg: tareWeightKg,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setAssignee(assignee),
	); err != nil {
		return OpenCartonCommand{}, err
	}

	for _, dim := range []decimal.Decimal{lengthCm, widthCm, heightCm} {
		if dim.IsNegative() || dim.IsZero() {
			return OpenCartonCommand{}, errs.NewValueIsInvalidError("carton dimensions")
		}
	}
	if tareWeightKg.IsNegative() {
		return OpenCartonCommand{}, errs.NewValueIsInvalidError("carton tare weight")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenCartonCommand) Validate() error {
	return c.guard.Validate(ErrOpenCartonCommandIsNotConstructed)
}

// TaskID returns the pack task the carton belongs to.
func (c OpenCartonCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Assignee returns the packer opening the carton.
func (c OpenCartonCommand) Assignee() string {
	return c.assignee
}

// LengthCm returns the box length in centimeters.
func (c OpenCartonCommand) LengthCm() decimal.Decimal {
	return c.lengthCm
}

// WidthCm returns the box width in centimeters.
func (c OpenCartonCommand) WidthCm() decimal.Decimal {
	return c.widthCm
}

// HeightCm returns the box height in centimeters.
func (c OpenCartonCommand) HeightCm() decimal.Decimal {
	return c.heightCm
}

// TareWeightKg returns the empty box weight in kilograms.
func (c OpenCartonCommand) TareWeightKg() decimal.Decimal {
	return c.tareWeightKg
}

func (c *OpenCartonCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}
	c.taskID = taskID
	return nil
}

func (c *OpenCartonCommand) setAssignee(assignee string) error {
	if assignee == "" {
		return ErrAssigneeIsRequired
	}
	c.assignee = assignee
	return nil
}
