package shipment

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Errors of the Shipment aggregate.
var (
	ErrShipmentIsNotConstructed = errors.New(
		"Shipment must be created via NewShipment or RestoreShipment constructor")
	ErrShipmentHasNoLines = errors.New("shipment must have at least one line")
)

// Status tracks a shipment from carrier handoff to final disposition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the shipment is created but the carrier has not
	// reported movement yet.
	Pending

	// InTransit means the carrier has the parcel moving through its
	// network.
	InTransit

	// OutForDelivery means the parcel is on the last-mile vehicle.
	OutForDelivery

	// Delivered is the successful terminal state.
	Delivered

	// Failed means the delivery attempt failed; the carrier may retry
	// or return the parcel.
	Failed

	// Returned means the parcel came back to the warehouse.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		InTransit:      "InTransit",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Failed:         "Failed",
		Returned:       "Returned",
	}
}

func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {InTransit, Failed},
		InTransit:      {OutForDelivery, Delivered, Failed, Returned},
		OutForDelivery: {Delivered, Failed},
		Failed:         {InTransit, OutForDelivery, Returned},
	}
}

// TransitionTo returns the target status when the move is allowed.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return target, nil
		}
	}
	return Unknown, errs.NewInvalidStateTransitionError("shipment", s.String(), target.String())
}

// StatusFromString parses a tracking state name. Returns a validation error
// for anything outside the closed set.
func StatusFromString(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("shipment status",
		fmt.Errorf("%q is not a valid shipment status", name))
}

// Validate checks that the status is one of the defined tracking states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidError("shipment status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("shipment status")
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further carrier updates are expected.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned
}

// Line is the shipped quantity of one picked reservation: which order line
// it serves plus the batch, expiry and handling unit the stock came from.
// Recall tracing starts here, so an order line shipped from two lots
// produces two shipment lines.
type Line struct {
	OrderLineID kernel.UUID
	ProductID   kernel.UUID
	Quantity    int
	BatchNumber string
	ExpiryDate  *time.Time
	LPN         string
}

// Shipment is the carrier-side record of a packed order: tracking number,
// carrier, declared weight and the delivery status fed back by carrier
// webhooks or polling.
type Shipment struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	warehouseID kernel.UUID
	orderID     kernel.UUID

	carrierCode    string
	serviceLevel   string
	trackingNumber string
	labelURL       string

	weightKg    decimal.Decimal
	cartonCount int

	status Status
	lines  []Line

	shippedAt     time.Time
	deliveredAt   *time.Time
	lastUpdatedAt time.Time

	failureReason string

	isConstructed bool
}

// NewShipment creates a pending shipment at carrier handoff.
func NewShipment(
	id, tenantID, warehouseID, orderID kernel.UUID,
	carrierCode, serviceLevel, trackingNumber, labelURL string,
	weightKg decimal.Decimal,
	cartonCount int,
	lines []Line,
	shippedAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		serviceLevel:  serviceLevel,
		labelURL:      labelURL,
		weightKg:      weightKg,
		status:        Pending,
		shippedAt:     shippedAt,
		lastUpdatedAt: shippedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTenantID(tenantID),
		s.setWarehouseID(warehouseID),
		s.setOrderID(orderID),
		s.setCarrierCode(carrierCode),
		s.setTrackingNumber(trackingNumber),
		s.setCartonCount(cartonCount),
		s.setLines(lines),
	); err != nil {
		return nil, err
	}

	if weightKg.IsNegative() {
		return nil, errs.NewValueIsInvalidError("shipment weight")
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence.
func RestoreShipment(
	id, tenantID, warehouseID, orderID kernel.UUID,
	carrierCode, serviceLevel, trackingNumber, labelURL string,
	weightKg decimal.Decimal,
	cartonCount int,
	status Status,
	lines []Line,
	shippedAt time.Time,
	deliveredAt *time.Time,
	lastUpdatedAt time.Time,
	failureReason string,
) (*Shipment, error) {
	s := &Shipment{
		serviceLevel:  serviceLevel,
		labelURL:      labelURL,
		weightKg:      weightKg,
		status:        status,
		shippedAt:     shippedAt,
		deliveredAt:   deliveredAt,
		lastUpdatedAt: lastUpdatedAt,
		failureReason: failureReason,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTenantID(tenantID),
		s.setWarehouseID(warehouseID),
		s.setOrderID(orderID),
		s.setCarrierCode(carrierCode),
		s.setTrackingNumber(trackingNumber),
		s.setCartonCount(cartonCount),
		s.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// TenantID returns the owning tenant.
func (s *Shipment) TenantID() kernel.UUID {
	return s.tenantID
}

// WarehouseID returns the originating warehouse.
func (s *Shipment) WarehouseID() kernel.UUID {
	return s.warehouseID
}

// OrderID returns the shipped order.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// CarrierCode returns the carrier handling the parcel.
func (s *Shipment) CarrierCode() string {
	return s.carrierCode
}

// ServiceLevel returns the purchased carrier service.
func (s *Shipment) ServiceLevel() string {
	return s.serviceLevel
}

// TrackingNumber returns the carrier tracking number.
func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// LabelURL returns where the label document can be fetched.
func (s *Shipment) LabelURL() string {
	return s.labelURL
}

// WeightKg returns the declared gross weight.
func (s *Shipment) WeightKg() decimal.Decimal {
	return s.weightKg
}

// CartonCount returns the number of parcels in the shipment.
func (s *Shipment) CartonCount() int {
	return s.cartonCount
}

// Status returns the tracking state.
func (s *Shipment) Status() Status {
	return s.status
}

// Lines returns the shipped quantities per order line.
func (s *Shipment) Lines() []Line {
	return s.lines
}

// ShippedAt returns the carrier handoff time.
func (s *Shipment) ShippedAt() time.Time {
	return s.shippedAt
}

// DeliveredAt returns the delivery time, or nil.
func (s *Shipment) DeliveredAt() *time.Time {
	return s.deliveredAt
}

// LastUpdatedAt returns when the carrier last reported.
func (s *Shipment) LastUpdatedAt() time.Time {
	return s.lastUpdatedAt
}

// FailureReason returns the carrier's reason for a failed attempt, or empty.
func (s *Shipment) FailureReason() string {
	return s.failureReason
}

// UpdateStatus applies a carrier tracking update. Delivered sets the
// delivery timestamp; Failed records the carrier's reason.
func (s *Shipment) UpdateStatus(target Status, reason string, at time.Time) error {
	next, err := s.status.TransitionTo(target)
	if err != nil {
		return err
	}
	s.status = next
	s.lastUpdatedAt = at
	switch next {
	case Delivered:
		s.deliveredAt = &at
		s.failureReason = ""
	case Failed:
		s.failureReason = reason
	default:
		s.failureReason = ""
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.tenantID = id
	return nil
}

func (s *Shipment) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.warehouseID = id
	return nil
}

func (s *Shipment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.orderID = id
	return nil
}

func (s *Shipment) setCarrierCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("carrier code")
	}
	s.carrierCode = code
	return nil
}

func (s *Shipment) setTrackingNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	s.trackingNumber = number
	return nil
}

func (s *Shipment) setCartonCount(count int) error {
	if count <= 0 {
		return errs.NewValueIsInvalidError("carton count")
	}
	s.cartonCount = count
	return nil
}

func (s *Shipment) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrShipmentHasNoLines
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidError("shipment line quantity")
		}
	}
	s.lines = lines
	return nil
}
