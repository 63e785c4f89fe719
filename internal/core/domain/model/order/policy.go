package order

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Policy selects how candidate inventory lots are ordered during allocation.
// It is a closed set: an order carries one policy, and a line may override it.
type Policy string

const (
	// PolicyFIFO consumes lots in receipt-date order, oldest first.
	PolicyFIFO Policy = "FIFO"

	// PolicyFEFO consumes lots in expiry order, soonest-to-expire first;
	// lots without an expiry sort last, receipt date breaks ties.
	PolicyFEFO Policy = "FEFO"

	// PolicyLIFO consumes lots in receipt-date order, newest first.
	PolicyLIFO Policy = "LIFO"

	// PolicyManual is accepted for compatibility but falls back to FIFO
	// ordering: true manual lot selection is not part of this pipeline.
	PolicyManual Policy = "MANUAL"
)

// PolicyFromString parses a policy name. Returns a validation error for
// anything outside the closed set.
func PolicyFromString(s string) (Policy, error) {
	p := Policy(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate checks that the policy is one of FIFO, FEFO, LIFO or MANUAL.
func (p Policy) Validate() error {
	switch p {
	case PolicyFIFO, PolicyFEFO, PolicyLIFO, PolicyManual:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("allocation policy",
			fmt.Errorf("%q is not a valid allocation policy", string(p)))
	}
}

// String returns the policy name.
func (p Policy) String() string {
	return string(p)
}
