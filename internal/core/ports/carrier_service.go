package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ShippingLabelRequest describes the parcel the carrier must label.
type ShippingLabelRequest struct {
	OrderID      kernel.UUID
	CarrierCode  string
	ServiceLevel string
	WeightKg     decimal.Decimal
	CartonCount  int
}

// ShippingLabel is the carrier's answer: a tracking number and a document.
type ShippingLabel struct {
	TrackingNumber string
	LabelURL       string
}

// CarrierService is the gateway to external carrier APIs. A failure maps to
// DependencyFailure; the caller's packed state stays intact so the label
// request can be retried.
type CarrierService interface {
	// GenerateLabel purchases a shipping label for a packed order.
	GenerateLabel(ctx context.Context, request ShippingLabelRequest) (ShippingLabel, error)
}
