package inventoryrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new ledger row to the database.
func (r *GormInventoryRepository) Add(ctx context.Context, aggregate *inventory.Inventory) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a ledger row by ID.
func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Inventory, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InventoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetCandidatesForProduct retrieves allocatable ledger rows for a product in
// a warehouse. Only rows in Available status with stock left are returned;
// ranking by policy is a domain concern.
func (r *GormInventoryRepository) GetCandidatesForProduct(
	ctx context.Context,
	tenantID, warehouseID, productID kernel.UUID,
) ([]*inventory.Inventory, error) {
	var dtos []InventoryDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ? AND product_id = ?",
			tenantID.Bytes(), warehouseID.Bytes(), productID.Bytes()).
		Where("status = ? AND quantity_available > 0", int(inventory.Available)).
		Order("received_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	rows := make([]*inventory.Inventory, 0, len(dtos))
	for _, dto := range dtos {
		row, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Reserve atomically moves quantity from available to allocated. The WHERE
// clause carries the precondition; zero rows affected means another
// transaction got there first.
func (r *GormInventoryRepository) Reserve(ctx context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("reserve quantity")
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE inventory
		SET quantity_available = quantity_available - ?,
		    quantity_allocated = quantity_allocated + ?,
		    version = version + 1
		WHERE id = ? AND quantity_available >= ?
	`, quantity, quantity, id.Bytes(), quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewInsufficientQuantityError("inventory "+id.String(), quantity, 0)
	}

	return nil
}

// Release atomically moves quantity from allocated back to available.
func (r *GormInventoryRepository) Release(ctx context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("release quantity")
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE inventory
		SET quantity_available = quantity_available + ?,
		    quantity_allocated = quantity_allocated - ?,
		    version = version + 1
		WHERE id = ? AND quantity_allocated >= ?
	`, quantity, quantity, id.Bytes(), quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewInsufficientQuantityError("inventory "+id.String(), quantity, 0)
	}

	return nil
}

// CommitDepletion atomically removes picked quantity from both allocated and
// on-hand, keeping onHand = available + allocated intact.
func (r *GormInventoryRepository) CommitDepletion(ctx context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("depletion quantity")
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE inventory
		SET quantity_allocated = quantity_allocated - ?,
		    quantity_on_hand = quantity_on_hand - ?,
		    version = version + 1
		WHERE id = ? AND quantity_allocated >= ? AND quantity_on_hand >= ?
	`, quantity, quantity, id.Bytes(), quantity, quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewInsufficientQuantityError("inventory "+id.String(), quantity, 0)
	}

	return nil
}
