package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/picking"
	"warehouse/internal/pkg/guard"
)

var (
	ErrGeneratePickTasksCommandIsNotConstructed = errors.New(
		"GeneratePickTasksCommand must be created via NewGeneratePickTasksCommand constructor",
	)
	ErrPickOrderIDsAreRequired = errors.New("at least one order id is required")
)

// GeneratePickTasksCommand represents a request to turn one or more fully
// allocated orders into pick work: one SINGLE task per order, or one BATCH
// task walking all of them in a single pass.
type GeneratePickTasksCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	taskType picking.TaskType

	guard guard.ConstructorGuard
}

// NewGeneratePickTasksCommand creates a command to generate pick tasks.
func NewGeneratePickTasksCommand(
	orderIDs []kernel.UUID,
	taskType picking.TaskType,
) (GeneratePickTasksCommand, error) {
	cmd := GeneratePickTasksCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setTaskType(taskType),
	); err != nil {
		return GeneratePickTasksCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GeneratePickTasksCommand) Validate() error {
	return c.guard.Validate(ErrGeneratePickTasksCommandIsNotConstructed)
}

// OrderIDs returns the orders to generate pick work for.
func (c GeneratePickTasksCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// TaskType returns whether to generate SINGLE or BATCH tasks.
func (c GeneratePickTasksCommand) TaskType() picking.TaskType {
	return c.taskType
}

func (c *GeneratePickTasksCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrPickOrderIDsAreRequired
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.orderIDs = orderIDs
	return nil
}

func (c *GeneratePickTasksCommand) setTaskType(taskType picking.TaskType) error {
	if err := taskType.Validate(); err != nil {
		return err
	}
	c.taskType = taskType
	return nil
}
