package order

import (
	"warehouse/internal/pkg/errs"
)

// Status represents the lifecycle state of an outbound order.
// It implements a state machine with defined transitions so orders advance
// through the fulfillment pipeline in the correct sequence.
//
// State transitions:
//
//	New ──┬──> Allocated ──────────> Picking ──> Picked ──> Packing ──> Packed ──> Shipped ──> Delivered
//	      ├──> PartiallyAllocated ──> New (deallocation)
//	      └──> AllocationFailed ────> New (retry)
//
// OnHold is a manual side branch reachable from any pre-shipped state; release
// returns the order to the state it held from. Cancelled is terminal and
// reachable from any pre-shipped state.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status after order submission, before allocation.
	New

	// Allocated indicates every order line is fully allocated.
	Allocated

	// PartiallyAllocated indicates at least one line received allocation
	// but not every line is fully covered.
	PartiallyAllocated

	// AllocationFailed indicates no line received any allocation.
	AllocationFailed

	// Picking indicates pick tasks exist and picking is underway.
	Picking

	// Picked indicates all pick tasks for the order completed.
	Picked

	// Packing indicates a pack task exists and packing is underway.
	Packing

	// Packed indicates packing completed and a shipping label was generated.
	Packed

	// Shipped indicates the shipment record was created and the parcel left
	// the warehouse. Cancellation is no longer possible.
	Shipped

	// Delivered indicates the carrier confirmed delivery. Terminal.
	Delivered

	// OnHold is a manual side branch pausing the pipeline.
	OnHold

	// Cancelled is terminal and triggers deallocation of any reserved stock.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		New:                "New",
		Allocated:          "Allocated",
		PartiallyAllocated: "PartiallyAllocated",
		AllocationFailed:   "AllocationFailed",
		Picking:            "Picking",
		Picked:             "Picked",
		Packing:            "Packing",
		Packed:             "Packed",
		Shipped:            "Shipped",
		Delivered:          "Delivered",
		OnHold:             "OnHold",
		Cancelled:          "Cancelled",
	}
}

// allowedTransitions lists every legal forward transition plus the explicit
// resets performed by deallocation and the AllocationFailed retry path.
// OnHold and Cancelled are handled separately because their reachability is
// "any pre-shipped state" rather than a fixed predecessor.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		New:                {Allocated, PartiallyAllocated, AllocationFailed},
		Allocated:          {Picking, New},
		PartiallyAllocated: {New},
		AllocationFailed:   {New},
		Picking:            {Picked},
		Picked:             {Packing},
		Packing:            {Packed},
		Packed:             {Shipped},
		Shipped:            {Delivered},
	}
}

// Validate checks if the Status value is one of the defined pipeline states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidError("status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanCancel reports whether cancellation is still allowed. Once the parcel
// has shipped the order can only be compensated through the returns flow,
// which is outside this pipeline.
func (s Status) CanCancel() bool {
	return s != Shipped && s != Delivered && s != Cancelled
}

// CanHold reports whether the manual hold branch is reachable.
func (s Status) CanHold() bool {
	return s.CanCancel() && s != OnHold
}

// TransitionTo validates that the transition from the receiver to the target
// status is legal and returns the target. Returns InvalidStateTransition
// otherwise. Hold, release and cancel transitions have dedicated methods
// because their rules are positional rather than tabular.
func (s Status) TransitionTo(to Status) (Status, error) {
	for _, next := range allowedTransitions()[s] {
		if next == to {
			return to, nil
		}
	}
	return Unknown, errs.NewInvalidStateTransitionError("order", s.String(), to.String())
}

// Cancel transitions to Cancelled from any pre-shipped state.
func (s Status) Cancel() (Status, error) {
	if !s.CanCancel() {
		return Unknown, errs.NewInvalidStateTransitionError("order", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}

// Hold transitions to OnHold from any pre-shipped, non-terminal state.
func (s Status) Hold() (Status, error) {
	if !s.CanHold() {
		return Unknown, errs.NewInvalidStateTransitionError("order", s.String(), OnHold.String())
	}
	return OnHold, nil
}
