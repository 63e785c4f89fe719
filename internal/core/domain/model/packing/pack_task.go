package packing

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Errors of the PackTask aggregate.
var (
	ErrPackTaskIsNotConstructed = errors.New(
		"PackTask must be created via NewPackTask or RestorePackTask constructor")
	ErrPackTaskHasNoLines = errors.New("pack task must have at least one line")
	ErrLabelNotGenerated  = errors.New("shipping label must be generated before completing the pack task")
	ErrLinesNotResolved   = errors.New("every line must be packed or closed with variance before generating a label")
)

// Status tracks a pack task's lifecycle.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the task is created but packing has not started.
	Pending

	// InProgress means items are being placed into cartons.
	InProgress

	// Completed means everything is packed, labelled and staged.
	Completed

	// Cancelled means the task was abandoned.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {InProgress, Cancelled},
		InProgress: {Completed, Cancelled},
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
	return Unknown, errs.NewInvalidStateTransitionError("pack task", s.String(), target.String())
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidError("pack task status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("pack task status")
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

// PackTask is the packing-station work for one picked order: place every
// picked unit into cartons, weigh them, obtain a shipping label, then close.
// Completion is gated on the label so no packed order leaves the station
// without carrier documentation.
type PackTask struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	warehouseID kernel.UUID
	orderID     kernel.UUID

	status   Status
	assignee string

	lines   []*TaskLine
	cartons []*Carton

	labelGenerated bool
	trackingNumber string
	labelURL       string

	createdAt   time.Time
	startedAt   *time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewPackTask creates a pending pack task for a picked order.
func NewPackTask(
	id, tenantID, warehouseID, orderID kernel.UUID,
	lines []*TaskLine,
	createdAt time.Time,
) (*PackTask, error) {
	task := &PackTask{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		task.setID(id),
		task.setTenantID(tenantID),
		task.setWarehouseID(warehouseID),
		task.setOrderID(orderID),
		task.setLines(lines),
	); err != nil {
		return nil, err
	}

	return task, nil
}

// RestorePackTask reconstructs a pack task from persistence.
func RestorePackTask(
	id, tenantID, warehouseID, orderID kernel.UUID,
	status Status,
	assignee string,
	lines []*TaskLine,
	cartons []*Carton,
	labelGenerated bool,
	trackingNumber, labelURL string,
	createdAt time.Time,
	startedAt, completedAt *time.Time,
) (*PackTask, error) {
	task := &PackTask{
		status:         status,
		assignee:       assignee,
		cartons:        cartons,
		labelGenerated: labelGenerated,
		trackingNumber: trackingNumber,
		labelURL:       labelURL,
		createdAt:      createdAt,
		startedAt:      startedAt,
		completedAt:    completedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		task.setID(id),
		task.setTenantID(tenantID),
		task.setWarehouseID(warehouseID),
		task.setOrderID(orderID),
		task.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, carton := range cartons {
		if err := carton.Validate(); err != nil {
			return nil, err
		}
	}

	return task, nil
}

// Validate ensures the PackTask instance was properly constructed.
func (t *PackTask) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrPackTaskIsNotConstructed
	}
	return nil
}

// ID returns the task's unique identifier.
func (t *PackTask) ID() kernel.UUID {
	return t.id
}

// TenantID returns the owning tenant.
func (t *PackTask) TenantID() kernel.UUID {
	return t.tenantID
}

// WarehouseID returns the warehouse the task runs in.
func (t *PackTask) WarehouseID() kernel.UUID {
	return t.warehouseID
}

// OrderID returns the order being packed.
func (t *PackTask) OrderID() kernel.UUID {
	return t.orderID
}

// Status returns the task lifecycle state.
func (t *PackTask) Status() Status {
	return t.status
}

// Assignee returns the packer owning the task, or empty.
func (t *PackTask) Assignee() string {
	return t.assignee
}

// Lines returns the pack instructions.
func (t *PackTask) Lines() []*TaskLine {
	return t.lines
}

// Cartons returns the cartons opened so far.
func (t *PackTask) Cartons() []*Carton {
	return t.cartons
}

// LabelGenerated reports whether the shipping label has been obtained.
func (t *PackTask) LabelGenerated() bool {
	return t.labelGenerated
}

// TrackingNumber returns the carrier tracking number, or empty.
func (t *PackTask) TrackingNumber() string {
	return t.trackingNumber
}

// LabelURL returns where the label document can be fetched, or empty.
func (t *PackTask) LabelURL() string {
	return t.labelURL
}

// CreatedAt returns when the task was generated.
func (t *PackTask) CreatedAt() time.Time {
	return t.createdAt
}

// StartedAt returns when packing started, or nil.
func (t *PackTask) StartedAt() *time.Time {
	return t.startedAt
}

// CompletedAt returns when the task completed, or nil.
func (t *PackTask) CompletedAt() *time.Time {
	return t.completedAt
}

// Line finds a pack instruction by its ID.
func (t *PackTask) Line(lineID kernel.UUID) (*TaskLine, error) {
	for _, line := range t.lines {
		if line.ID().IsEqual(lineID) {
			return line, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("pack line", lineID)
}

// Carton finds an opened carton by its ID.
func (t *PackTask) Carton(cartonID kernel.UUID) (*Carton, error) {
	for _, carton := range t.cartons {
		if carton.ID().IsEqual(cartonID) {
			return carton, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("carton", cartonID)
}

// Start begins packing, opting the task into carton operations.
func (t *PackTask) Start(assignee string, at time.Time) error {
	if assignee == "" {
		return errs.NewValueIsRequiredError("assignee")
	}
	next, err := t.status.TransitionTo(InProgress)
	if err != nil {
		return err
	}
	t.status = next
	t.assignee = assignee
	t.startedAt = &at
	return nil
}

// OpenCarton adds a new carton to the task. Carton numbers are sequential.
func (t *PackTask) OpenCarton(
	id kernel.UUID,
	lengthCm, widthCm, heightCm, tareWeightKg decimal.Decimal,
) (*Carton, error) {
	if t.status != InProgress {
		return nil, errs.NewInvalidStateTransitionError(
			"pack task", t.status.String(), InProgress.String())
	}
	carton, err := NewCarton(id, len(t.cartons)+1, lengthCm, widthCm, heightCm, tareWeightKg)
	if err != nil {
		return nil, err
	}
	t.cartons = append(t.cartons, carton)
	return carton, nil
}

// PackItem places a quantity of one instruction into a carton, accumulating
// the carton's weight.
func (t *PackTask) PackItem(
	lineID, cartonID kernel.UUID,
	quantity int,
	weightKg decimal.Decimal,
) error {
	if t.status != InProgress {
		return errs.NewInvalidStateTransitionError(
			"pack task", t.status.String(), InProgress.String())
	}
	line, err := t.Line(lineID)
	if err != nil {
		return err
	}
	carton, err := t.Carton(cartonID)
	if err != nil {
		return err
	}
	if err := line.RecordPack(quantity); err != nil {
		return err
	}
	return carton.Pack(line.OrderLineID(), line.ProductID(), quantity, weightKg)
}

// CloseLineWithVariance closes one under-packed instruction with its
// discrepancy declared. Only an in-progress task takes variance
// declarations.
func (t *PackTask) CloseLineWithVariance(lineID kernel.UUID) error {
	if t.status != InProgress {
		return errs.NewInvalidStateTransitionError(
			"pack task", t.status.String(), InProgress.String())
	}
	line, err := t.Line(lineID)
	if err != nil {
		return err
	}
	return line.CloseWithVariance()
}

// IsFullyPacked reports whether every instruction is fully in cartons.
func (t *PackTask) IsFullyPacked() bool {
	for _, line := range t.lines {
		if !line.IsFullyPacked() {
			return false
		}
	}
	return true
}

// AllLinesResolved reports whether every instruction reached a terminal
// outcome, fully packed or closed with variance.
func (t *PackTask) AllLinesResolved() bool {
	for _, line := range t.lines {
		if !line.IsResolved() {
			return false
		}
	}
	return true
}

// HasVariance reports whether any line closed with a declared discrepancy.
func (t *PackTask) HasVariance() bool {
	for _, line := range t.lines {
		if line.Status() == LineVariance {
			return true
		}
	}
	return false
}

// AttachLabel records the shipping label obtained from the carrier. Every
// line must be resolved first so the declared weight is final.
func (t *PackTask) AttachLabel(trackingNumber, labelURL string) error {
	if t.status != InProgress {
		return errs.NewInvalidStateTransitionError(
			"pack task", t.status.String(), InProgress.String())
	}
	if !t.AllLinesResolved() {
		return ErrLinesNotResolved
	}
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	t.labelGenerated = true
	t.trackingNumber = trackingNumber
	t.labelURL = labelURL
	return nil
}

// Complete closes the task. Requires every line resolved and a label
// attached.
func (t *PackTask) Complete(at time.Time) error {
	next, err := t.status.TransitionTo(Completed)
	if err != nil {
		return err
	}
	if !t.AllLinesResolved() {
		return ErrLinesNotResolved
	}
	if !t.labelGenerated {
		return ErrLabelNotGenerated
	}
	t.status = next
	t.completedAt = &at
	return nil
}

// Cancel abandons the task.
func (t *PackTask) Cancel() error {
	next, err := t.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}
	t.status = next
	return nil
}

// TotalWeightKg returns the gross weight of all cartons.
func (t *PackTask) TotalWeightKg() decimal.Decimal {
	total := decimal.Zero
	for _, carton := range t.cartons {
		total = total.Add(carton.GrossWeightKg())
	}
	return total
}

func (t *PackTask) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *PackTask) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.tenantID = id
	return nil
}

func (t *PackTask) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.warehouseID = id
	return nil
}

func (t *PackTask) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.orderID = id
	return nil
}

func (t *PackTask) setLines(lines []*TaskLine) error {
	if len(lines) == 0 {
		return ErrPackTaskHasNoLines
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	t.lines = lines
	return nil
}
