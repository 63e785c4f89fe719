// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fulfillment pipeline. It implements
// business logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - AllocationPlanner: ranks candidate stock by allocation policy and plans
//     greedy reservations for order lines
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
