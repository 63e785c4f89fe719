package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCompletePackTaskCommandIsNotConstructed = errors.New(
	"CompletePackTaskCommand must be created via NewCompletePackTaskCommand constructor",
)

// CompletePackTaskCommand represents a request to close a pack task whose
// cartons are full and labelled.
type CompletePackTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePackTaskCommand creates a command to complete a pack task.
func NewCompletePackTaskCommand(taskID kernel.UUID) (CompletePackTaskCommand, error) {
	cmd := CompletePackTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTaskID(taskID); err != nil {
		return CompletePackTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePackTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompletePackTaskCommandIsNotConstructed)
}

// TaskID returns the pack task to complete.
func (c CompletePackTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *CompletePackTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}
	c.taskID = taskID
	return nil
}
