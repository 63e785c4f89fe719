package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrDeclarePackVarianceCommandIsNotConstructed = errors.New(
	"DeclarePackVarianceCommand must be created via NewDeclarePackVarianceCommand constructor",
)

// DeclarePackVarianceCommand represents closing one under-packed pack
// instruction with its discrepancy declared.
type DeclarePackVarianceCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID
	lineID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeclarePackVarianceCommand creates a command to close a pack
// instruction with variance.
func NewDeclarePackVarianceCommand(taskID, lineID kernel.UUID) (DeclarePackVarianceCommand, error) {
	cmd := DeclarePackVarianceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setLineID(lineID),
	); err != nil {
		return DeclarePackVarianceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclarePackVarianceCommand) Validate() error {
	return c.guard.Validate(ErrDeclarePackVarianceCommandIsNotConstructed)
}

// TaskID returns the pack task being worked.
func (c DeclarePackVarianceCommand) TaskID() kernel.UUID {
	return c.taskID
}

// LineID returns the pack instruction being closed.
func (c DeclarePackVarianceCommand) LineID() kernel.UUID {
	return c.lineID
}

func (c *DeclarePackVarianceCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}
	c.taskID = taskID
	return nil
}

func (c *DeclarePackVarianceCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}
	c.lineID = lineID
	return nil
}
