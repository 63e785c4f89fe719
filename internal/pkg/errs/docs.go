// Package errs provides standardized error types for the warehouse application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the failure taxonomy of the outbound
// fulfillment pipeline:
//   - ObjectNotFoundError: order/task/inventory/shipment missing or out of tenant scope
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed caller input
//   - InvalidStateTransitionError: operation attempted outside its precondition state
//   - InsufficientQuantityError: ledger reservation/depletion precondition violated
//   - DependencyFailureError: carrier or broker collaborator error
//   - VersionIsInvalidError: optimistic concurrency conflict
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs
