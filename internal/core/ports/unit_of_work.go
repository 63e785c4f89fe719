package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repositories bound to the transaction.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// InventoryRepository returns an InventoryRepository bound to the
	// current transaction.
	InventoryRepository() InventoryRepository

	// AllocationRepository returns an AllocationRepository bound to the
	// current transaction.
	AllocationRepository() AllocationRepository

	// PickTaskRepository returns a PickTaskRepository bound to the
	// current transaction.
	PickTaskRepository() PickTaskRepository

	// PackTaskRepository returns a PackTaskRepository bound to the
	// current transaction.
	PackTaskRepository() PackTaskRepository

	// ShipmentRepository returns a ShipmentRepository bound to the
	// current transaction.
	ShipmentRepository() ShipmentRepository

	// ProductRepository returns a ProductRepository bound to the current
	// transaction.
	ProductRepository() ProductRepository
}
