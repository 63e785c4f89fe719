package picking

import "warehouse/internal/pkg/errs"

// Status tracks a pick task's lifecycle.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the task is created but not yet assigned to a picker.
	Pending

	// Assigned means a picker owns the task but has not started.
	Assigned

	// InProgress means picking has started.
	InProgress

	// Completed means all lines are resolved, fully picked or short.
	Completed

	// Cancelled means the task was abandoned, usually because the order
	// was cancelled or put on hold.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Assigned:   "Assigned",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Assigned, Cancelled},
		Assigned:   {InProgress, Pending, Cancelled},
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
	return Unknown, errs.NewInvalidStateTransitionError("pick task", s.String(), target.String())
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidError("pick task status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("pick task status")
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

// TaskType distinguishes single-order tasks from multi-order batch tasks.
type TaskType string

const (
	// TaskTypeSingle picks one order.
	TaskTypeSingle TaskType = "SINGLE"

	// TaskTypeBatch picks several orders in one pass through the aisles.
	TaskTypeBatch TaskType = "BATCH"
)

// Validate checks the task type is known.
func (t TaskType) Validate() error {
	switch t {
	case TaskTypeSingle, TaskTypeBatch:
		return nil
	default:
		return errs.NewValueIsInvalidError("pick task type")
	}
}
