package ports

import (
	"context"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for the stock ledger.
//
// Reserve, Release and CommitDepletion are executed as single guarded
// updates so concurrent transactions can never drive a quantity negative:
// each update carries the quantity precondition in its WHERE clause and
// reports InsufficientQuantity when no row matched.
type InventoryRepository interface {
	// Add persists a new ledger row.
	Add(ctx context.Context, aggregate *inventory.Inventory) error

	// Get retrieves a ledger row by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Inventory, error)

	// GetCandidatesForProduct retrieves allocatable ledger rows for a
	// product in a warehouse. Ranking by policy happens in the domain.
	GetCandidatesForProduct(
		ctx context.Context,
		tenantID, warehouseID, productID kernel.UUID,
	) ([]*inventory.Inventory, error)

	// Reserve atomically moves quantity from available to allocated on
	// one ledger row. Returns InsufficientQuantity when the row no longer
	// holds enough available quantity.
	Reserve(ctx context.Context, id kernel.UUID, quantity int) error

	// Release atomically moves quantity from allocated back to available.
	// Returns InsufficientQuantity when the row holds less allocated
	// quantity than requested.
	Release(ctx context.Context, id kernel.UUID, quantity int) error

	// CommitDepletion atomically removes picked quantity from both
	// allocated and on-hand. Returns InsufficientQuantity when the row
	// holds less allocated quantity than requested.
	CommitDepletion(ctx context.Context, id kernel.UUID, quantity int) error
}
