// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence, with audit events appended inside the transaction and
// published to the broker after commit.
package commands

import (
	"context"

	"warehouse/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler names the narrowest repository set it needs so tests can mock
// exactly that surface.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InventoryRepoFactory provides access to the stock ledger within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// AllocationRepoFactory provides access to reservations within a transaction.
	AllocationRepoFactory interface {
		AllocationRepository() ports.AllocationRepository
	}

	// PickTaskRepoFactory provides access to pick tasks within a transaction.
	PickTaskRepoFactory interface {
		PickTaskRepository() ports.PickTaskRepository
	}

	// PackTaskRepoFactory provides access to pack tasks within a transaction.
	PackTaskRepoFactory interface {
		PackTaskRepository() ports.PackTaskRepository
	}

	// ShipmentRepoFactory provides access to shipments within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ProductRepoFactory provides access to the catalog within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AllocationUoW manages transactions for allocation and deallocation:
	// the order, the ledger, the reservations and the catalog move together.
	AllocationUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		AllocationRepoFactory
		ProductRepoFactory
	}

	// AllocationUoWFactory creates new allocation unit of work instances.
	AllocationUoWFactory interface {
		Create() AllocationUoW
	}

	// CancelUoW manages transactions for cancelling and holding orders,
	// which must release reservations and abandon open tasks atomically.
	CancelUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		AllocationRepoFactory
		PickTaskRepoFactory
		PackTaskRepoFactory
	}

	// CancelUoWFactory creates new cancel unit of work instances.
	CancelUoWFactory interface {
		Create() CancelUoW
	}

	// PickUoW manages transactions for the picking workflow: tasks, orders,
	// reservations and ledger depletions commit together.
	PickUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		AllocationRepoFactory
		PickTaskRepoFactory
	}

	// PickUoWFactory creates new pick unit of work instances.
	PickUoWFactory interface {
		Create() PickUoW
	}

	// PackUoW manages transactions for the packing workflow.
	PackUoW interface {
		TxManager
		OrderRepoFactory
		PackTaskRepoFactory
		ProductRepoFactory
	}

	// PackUoWFactory creates new pack unit of work instances.
	PackUoWFactory interface {
		Create() PackUoW
	}

	// ShipmentUoW manages transactions for carrier handoff and tracking.
	ShipmentUoW interface {
		TxManager
		OrderRepoFactory
		AllocationRepoFactory
		PackTaskRepoFactory
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}
)
