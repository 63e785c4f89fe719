package allocationrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAllocationRepository implements AllocationRepository using GORM.
type GormAllocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAllocationRepository creates a new GORM allocation repository.
func NewGormAllocationRepository(db *gorm.DB, tracker aggregateTracker) *GormAllocationRepository {
	return &GormAllocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new reservation to the database.
func (r *GormAllocationRepository) Add(ctx context.Context, aggregate *allocation.Allocation) error {
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

// Update saves an existing reservation to the database.
func (r *GormAllocationRepository) Update(ctx context.Context, aggregate *allocation.Allocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AllocationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a reservation by ID.
func (r *GormAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AllocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("allocation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLiveByOrder retrieves an order's live reservations, oldest first.
func (r *GormAllocationRepository) GetLiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*allocation.Allocation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AllocationDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID.Bytes(), int(allocation.Allocated)).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*allocation.Allocation, 0, len(dtos))
	for _, dto := range dtos {
		record, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		records = append(records, record)
	}

	return records, nil
}

// GetPickedByOrder retrieves an order's picked reservations, oldest first.
func (r *GormAllocationRepository) GetPickedByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*allocation.Allocation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AllocationDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID.Bytes(), int(allocation.Picked)).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*allocation.Allocation, 0, len(dtos))
	for _, dto := range dtos {
		record, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		records = append(records, record)
	}

	return records, nil
}
