package http

import (
	"time"

	"warehouse/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// bindAndValidate decodes the JSON body into request and runs its
// validation tags.
func bindAndValidate(ctx echo.Context, request any) error {
	if err := ctx.Bind(request); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return validate.Struct(request)
}

// CreateOrderLineRequest is one requested product quantity on a new order.
type CreateOrderLineRequest struct {
	ProductID      string  `json:"productId"      validate:"required,uuid"`
	Quantity       int     `json:"quantity"       validate:"required,gt=0"`
	PolicyOverride *string `json:"policyOverride,omitempty"`
}

// CreateOrderRequest registers a new outbound order.
type CreateOrderRequest struct {
	TenantID    string                   `json:"tenantId"    validate:"required,uuid"`
	WarehouseID string                   `json:"warehouseId" validate:"required,uuid"`
	OrderNumber string                   `json:"orderNumber" validate:"required"`
	Policy      string                   `json:"policy"      validate:"required"`
	Priority    int                      `json:"priority"    validate:"gte=0"`
	Lines       []CreateOrderLineRequest `json:"lines"       validate:"required,min=1,dive"`
}

// CancelOrderRequest cancels an order with an operator-supplied reason.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// GeneratePickTasksRequest turns allocated orders into pick work.
type GeneratePickTasksRequest struct {
	OrderIDs []string `json:"orderIds" validate:"required,min=1,dive,uuid"`
	TaskType string   `json:"taskType" validate:"required,oneof=SINGLE BATCH"`
}

// AssignPickTaskRequest assigns a pick task to a picker.
type AssignPickTaskRequest struct {
	Assignee string `json:"assignee" validate:"required"`
}

// PickItemRequest records picked quantity against one task line.
type PickItemRequest struct {
	LineID   string `json:"lineId"   validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// OpenCartonRequest opens a new carton at the pack station. Dimensions are
// validated by the command so a zero box is rejected with a domain error.
type OpenCartonRequest struct {
	Assignee     string          `json:"assignee" validate:"required"`
	LengthCm     decimal.Decimal `json:"lengthCm"`
	WidthCm      decimal.Decimal `json:"widthCm"`
	HeightCm     decimal.Decimal `json:"heightCm"`
	TareWeightKg decimal.Decimal `json:"tareWeightKg"`
}

// PackItemRequest places picked quantity of one order line into a carton.
type PackItemRequest struct {
	LineID   string `json:"lineId"   validate:"required,uuid"`
	CartonID string `json:"cartonId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// DeclarePackVarianceRequest closes an under-packed line with its
// discrepancy declared.
type DeclarePackVarianceRequest struct {
	LineID string `json:"lineId" validate:"required,uuid"`
}

// GenerateLabelRequest purchases a shipping label for a packed task.
type GenerateLabelRequest struct {
	CarrierCode  string `json:"carrierCode" validate:"required"`
	ServiceLevel string `json:"serviceLevel"`
}

// CreateShipmentRequest hands a packed order to its carrier.
type CreateShipmentRequest struct {
	CarrierCode  string `json:"carrierCode" validate:"required"`
	ServiceLevel string `json:"serviceLevel"`
}

// TrackingUpdateRequest is a carrier webhook payload. OccurredAt defaults
// to now when the carrier omits it.
type TrackingUpdateRequest struct {
	Status     string    `json:"status" validate:"required"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}

// IDResponse returns the identifier of a newly created resource.
type IDResponse struct {
	ID string `json:"id"`
}

// IDListResponse returns the identifiers of newly created resources.
type IDListResponse struct {
	IDs []string `json:"ids"`
}

// ActiveOrderResponse is one order in the active listing.
type ActiveOrderResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	Policy      string    `json:"policy"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AvailabilityLineResponse is the availability snapshot of one order line.
type AvailabilityLineResponse struct {
	OrderLineID       string `json:"orderLineId"`
	ProductID         string `json:"productId"`
	QuantityOrdered   int    `json:"quantityOrdered"`
	QuantityAvailable int    `json:"quantityAvailable"`
	CanAllocate       bool   `json:"canAllocate"`
}

// AvailabilityResponse is the advisory stock check for one order.
type AvailabilityResponse struct {
	OrderID          string                     `json:"orderId"`
	CanFullyAllocate bool                       `json:"canFullyAllocate"`
	Lines            []AvailabilityLineResponse `json:"lines"`
}
