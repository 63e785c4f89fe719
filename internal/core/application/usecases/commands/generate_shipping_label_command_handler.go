package commands

import (
	"context"

	"warehouse/internal/core/domain/model/packing"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// GenerateShippingLabelCommandHandler purchases a shipping label for a task
// whose lines are all packed or variance-closed. A carrier failure surfaces
// as DependencyFailure and leaves the packed state untouched, so the request
// can simply be retried.
type GenerateShippingLabelCommandHandler struct {
	uowFactory PackUoWFactory
	carrier    ports.CarrierService
}

// NewGenerateShippingLabelCommandHandler creates a handler for label
// generation.
func NewGenerateShippingLabelCommandHandler(
	uowFactory PackUoWFactory,
	carrier ports.CarrierService,
) GenerateShippingLabelCommandHandler {
	return GenerateShippingLabelCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
	}
}

// Handle processes the label generation command.
func (h *GenerateShippingLabelCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateShippingLabelCommand,
) error {
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

	// Checked before calling the carrier so an unfinished task never
	// purchases a label it cannot attach.
	if !task.AllLinesResolved() {
		return packing.ErrLinesNotResolved
	}

	label, err := h.carrier.GenerateLabel(ctx, ports.ShippingLabelRequest{
		OrderID:      task.OrderID(),
		CarrierCode:  cmd.CarrierCode(),
		ServiceLevel: cmd.ServiceLevel(),
		WeightKg:     task.TotalWeightKg(),
		CartonCount:  len(task.Cartons()),
	})
	if err != nil {
		return errs.NewDependencyFailureError("carrier", err)
	}

	if err = task.AttachLabel(label.TrackingNumber, label.LabelURL); err != nil {
		return err
	}
	if err = uow.PackTaskRepository().Update(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
