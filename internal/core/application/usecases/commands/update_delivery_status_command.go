package commands

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a carrier tracking update, keyed by
// tracking number because that is all a carrier webhook carries.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	status         shipment.Status
	reason         string
	occurredAt     time.Time

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command from a carrier tracking
// update. The reason is only meaningful for failed attempts.
func NewUpdateDeliveryStatusCommand(
	trackingNumber string,
	status shipment.Status,
	reason string,
	occurredAt time.Time,
) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		reason:     reason,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setStatus(status),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	if cmd.occurredAt.IsZero() {
		cmd.occurredAt = time.Now().UTC()
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// TrackingNumber returns the carrier tracking number of the shipment.
func (c UpdateDeliveryStatusCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Status returns the reported tracking state.
func (c UpdateDeliveryStatusCommand) Status() shipment.Status {
	return c.status
}

// Reason returns the carrier's reason for a failed attempt.
func (c UpdateDeliveryStatusCommand) Reason() string {
	return c.reason
}

// OccurredAt returns when the carrier recorded the event.
func (c UpdateDeliveryStatusCommand) OccurredAt() time.Time {
	return c.occurredAt
}

func (c *UpdateDeliveryStatusCommand) setTrackingNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	c.trackingNumber = number
	return nil
}

func (c *UpdateDeliveryStatusCommand) setStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
