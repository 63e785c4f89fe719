package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrAssignPickTaskCommandIsNotConstructed = errors.New(
		"AssignPickTaskCommand must be created via NewAssignPickTaskCommand constructor",
	)
	ErrAssigneeIsRequired = errors.New("assignee is required")
)

// AssignPickTaskCommand represents a request to hand a pending pick task to
// a picker.
type AssignPickTaskCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	assignee string

	guard guard.ConstructorGuard
}

// NewAssignPickTaskCommand creates a command to assign a pick task.
func NewAssignPickTaskCommand(taskID kernel.UUID, assignee string) (AssignPickTaskCommand, error) {
	cmd := AssignPickTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setAssignee(assignee),
	); err != nil {
		return AssignPickTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPickTaskCommand) Validate() error {
	return c.guard.Validate(ErrAssignPickTaskCommandIsNotConstructed)
}

// TaskID returns the pick task to assign.
func (c AssignPickTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Assignee returns the picker taking the task.
func (c AssignPickTaskCommand) Assignee() string {
	return c.assignee
}

func (c *AssignPickTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}
	c.taskID = taskID
	return nil
}

func (c *AssignPickTaskCommand) setAssignee(assignee string) error {
	if assignee == "" {
		return ErrAssigneeIsRequired
	}
	c.assignee = assignee
	return nil
}
