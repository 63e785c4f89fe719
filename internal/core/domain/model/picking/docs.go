// Package picking contains the PickTask aggregate: the unit of work handed
// to a picker. A task owns its instructions (TaskLine), keeps them in
// location-walk order and enforces the Pending -> Assigned -> InProgress ->
// Completed lifecycle. Completing a task closes unresolved lines short so
// the orchestrator can release the unpicked remainder of each reservation.
package picking
