// Package order contains the Order aggregate root of the outbound
// fulfillment pipeline: the order itself, its product lines, the allocation
// policy value object, the pipeline status state machine, and the append-only
// audit event trail.
//
// The order is the only entity every pipeline stage writes to: allocation,
// picking, packing and shipping each advance its status through the
// transitions defined on Status, and each stage boundary appends an Event.
// Unit totals (ordered/allocated/picked/packed/shipped) are always computed
// from the owned lines, never stored.
package order
