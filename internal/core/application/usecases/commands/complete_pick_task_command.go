package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCompletePickTaskCommandIsNotConstructed = errors.New(
	"CompletePickTaskCommand must be created via NewCompletePickTaskCommand constructor",
)

// CompletePickTaskCommand represents a request to close a pick task,
// accepting any remaining shortfall.
type CompletePickTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePickTaskCommand creates a command to complete a pick task.
func NewCompletePickTaskCommand(taskID kernel.UUID) (CompletePickTaskCommand, error) {
	cmd := CompletePickTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTaskID(taskID); err != nil {
		return CompletePickTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePickTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickTaskCommandIsNotConstructed)
}

// TaskID returns the pick task to complete.
func (c CompletePickTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *CompletePickTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}
	c.taskID = taskID
	return nil
}
