package picking

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// Errors of the PickTask aggregate.
var (
	ErrPickTaskIsNotConstructed = errors.New(
		"PickTask must be created via NewPickTask or RestorePickTask constructor")
	ErrPickTaskHasNoLines = errors.New("pick task must have at least one line")
)

// PickTask is a unit of work for a picker: an ordered walk through storage
// locations collecting reserved stock. Lines are kept sorted by location
// code so the walk follows the aisle layout.
type PickTask struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	warehouseID kernel.UUID

	taskType TaskType
	status   Status
	assignee string

	lines []*TaskLine

	createdAt   time.Time
	startedAt   *time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewPickTask creates a pending task. Lines are re-sequenced by location
// code regardless of input order.
func NewPickTask(
	id, tenantID, warehouseID kernel.UUID,
	taskType TaskType,
	lines []*TaskLine,
	createdAt time.Time,
) (*PickTask, error) {
	task := &PickTask{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		task.setID(id),
		task.setTenantID(tenantID),
		task.setWarehouseID(warehouseID),
		task.setTaskType(taskType),
		task.setLines(lines),
	); err != nil {
		return nil, err
	}

	return task, nil
}

// RestorePickTask reconstructs a task from persistence.
func RestorePickTask(
	id, tenantID, warehouseID kernel.UUID,
	taskType TaskType,
	status Status,
	assignee string,
	lines []*TaskLine,
	createdAt time.Time,
	startedAt, completedAt *time.Time,
) (*PickTask, error) {
	task := &PickTask{
		status:        status,
		assignee:      assignee,
		createdAt:     createdAt,
		startedAt:     startedAt,
		completedAt:   completedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		task.setID(id),
		task.setTenantID(tenantID),
		task.setWarehouseID(warehouseID),
		task.setTaskType(taskType),
		task.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate ensures the PickTask instance was properly constructed.
func (t *PickTask) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrPickTaskIsNotConstructed
	}
	return nil
}

// ID returns the task's unique identifier.
func (t *PickTask) ID() kernel.UUID {
	return t.id
}

// TenantID returns the owning tenant.
func (t *PickTask) TenantID() kernel.UUID {
	return t.tenantID
}

// WarehouseID returns the warehouse the task runs in.
func (t *PickTask) WarehouseID() kernel.UUID {
	return t.warehouseID
}

// TaskType reports whether the task covers one order or a batch.
func (t *PickTask) TaskType() TaskType {
	return t.taskType
}

// Status returns the task lifecycle state.
func (t *PickTask) Status() Status {
	return t.status
}

// Assignee returns the picker owning the task, or empty.
func (t *PickTask) Assignee() string {
	return t.assignee
}

// Lines returns the pick instructions in location-walk order.
func (t *PickTask) Lines() []*TaskLine {
	return t.lines
}

// CreatedAt returns when the task was generated.
func (t *PickTask) CreatedAt() time.Time {
	return t.createdAt
}

// StartedAt returns when picking started, or nil.
func (t *PickTask) StartedAt() *time.Time {
	return t.startedAt
}

// CompletedAt returns when the task completed, or nil.
func (t *PickTask) CompletedAt() *time.Time {
	return t.completedAt
}

// OrderIDs returns the distinct orders the task serves.
func (t *PickTask) OrderIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]bool, len(t.lines))
	var ids []kernel.UUID
	for _, line := range t.lines {
		if !seen[line.OrderID()] {
			seen[line.OrderID()] = true
			ids = append(ids, line.OrderID())
		}
	}
	return ids
}

// Line finds a pick instruction by its ID.
func (t *PickTask) Line(lineID kernel.UUID) (*TaskLine, error) {
	for _, line := range t.lines {
		if line.ID().IsEqual(lineID) {
			return line, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("pick line", lineID)
}

// Assign gives the task to a picker.
func (t *PickTask) Assign(assignee string) error {
	if assignee == "" {
		return errs.NewValueIsRequiredError("assignee")
	}
	next, err := t.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}
	t.status = next
	t.assignee = assignee
	return nil
}

// Unassign returns an assigned task to the pending pool.
func (t *PickTask) Unassign() error {
	next, err := t.status.TransitionTo(Pending)
	if err != nil {
		return err
	}
	t.status = next
	t.assignee = ""
	return nil
}

// Start begins picking.
func (t *PickTask) Start(at time.Time) error {
	next, err := t.status.TransitionTo(InProgress)
	if err != nil {
		return err
	}
	t.status = next
	t.startedAt = &at
	return nil
}

// RecordPick records a picked quantity against one instruction. The task
// must be in progress.
func (t *PickTask) RecordPick(lineID kernel.UUID, quantity int, at time.Time) error {
	if t.status != InProgress {
		return errs.NewInvalidStateTransitionError(
			"pick task", t.status.String(), InProgress.String())
	}
	line, err := t.Line(lineID)
	if err != nil {
		return err
	}
	return line.RecordPick(quantity, at)
}

// Complete closes the task. Partially picked lines are closed short; the
// caller reads each line's Shortfall to release the unpicked reservation
// remainder. A line never picked against blocks completion: the picker
// either picks it or records the short pick explicitly.
func (t *PickTask) Complete(at time.Time) error {
	next, err := t.status.TransitionTo(Completed)
	if err != nil {
		return err
	}
	for _, line := range t.lines {
		if !line.IsResolved() && line.QuantityPicked() == 0 {
			return errs.NewInvalidStateTransitionErrorWithCause(
				"pick task", t.status.String(), Completed.String(),
				fmt.Errorf("line %s has not been picked", line.ID()))
		}
	}
	for _, line := range t.lines {
		if line.IsResolved() {
			continue
		}
		if err := line.CloseShort(); err != nil {
			return err
		}
	}
	t.status = next
	t.completedAt = &at
	return nil
}

// Cancel abandons the task.
func (t *PickTask) Cancel() error {
	next, err := t.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}
	t.status = next
	return nil
}

// HasShortfall reports whether any line closed short.
func (t *PickTask) HasShortfall() bool {
	for _, line := range t.lines {
		if line.Status() == LineShort || line.Shortfall() > 0 {
			return true
		}
	}
	return false
}

func (t *PickTask) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *PickTask) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.tenantID = id
	return nil
}

func (t *PickTask) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.warehouseID = id
	return nil
}

func (t *PickTask) setTaskType(taskType TaskType) error {
	if err := taskType.Validate(); err != nil {
		return err
	}
	t.taskType = taskType
	return nil
}

func (t *PickTask) setLines(lines []*TaskLine) error {
	if len(lines) == 0 {
		return ErrPickTaskHasNoLines
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	sorted := make([]*TaskLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LocationCode() < sorted[j].LocationCode()
	})
	t.lines = sorted
	return nil
}
