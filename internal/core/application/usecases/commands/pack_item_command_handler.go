package commands

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"warehouse/internal/pkg/errs"
)

// PackItemCommandHandler places a quantity of one pack instruction into a
// carton. The carton's weight grows by the product's catalog unit weight
// times the quantity; the order line's packed quantity advances in the same
// transaction.
type PackItemCommandHandler struct {
	uowFactory PackUoWFactory
}

// NewPackItemCommandHandler creates a handler for pack confirmations.
func NewPackItemCommandHandler(uowFactory PackUoWFactory) PackItemCommandHandler {
	return PackItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pack confirmation.
func (h *PackItemCommandHandler) Handle(ctx context.Context, cmd PackItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	task, err := uow.PackTaskRepository().Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	taskLine, err := task.Line(cmd.LineID())
	if err != nil {
		return err
	}

	weight := decimal.Zero
	product, err := uow.ProductRepository().Get(ctx, taskLine.ProductID())
	if err == nil {
		weight = product.WeightOf(cmd.Quantity())
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = task.PackItem(cmd.LineID(), cmd.CartonID(), cmd.Quantity(), weight); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, task.OrderID())
	if err != nil {
		return err
	}
	orderLine, err := aggregate.Line(taskLine.OrderLineID())
	if err != nil {
		return err
	}
	if err = orderLine.RecordPack(cmd.Quantity()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.PackTaskRepository().Update(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
