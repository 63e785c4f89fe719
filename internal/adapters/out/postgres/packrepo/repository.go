package packrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/packing"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPackTaskRepository implements PackTaskRepository using GORM.
type GormPackTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackTaskRepository creates a new GORM pack task repository.
func NewGormPackTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormPackTaskRepository {
	return &GormPackTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pack task with its instructions to the database. New
// tasks have no cartons yet.
func (r *GormPackTaskRepository) Add(ctx context.Context, aggregate *packing.PackTask) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, lines, cartons, contents := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
		return err
	}
	if err := r.createCartons(ctx, cartons, contents); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing pack task to the database. Cartons missing from
// the database are inserted; carton contents are replaced wholesale since
// packing keeps appending to them.
func (r *GormPackTaskRepository) Update(ctx context.Context, aggregate *packing.PackTask) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, lines, cartons, contents := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PackTaskDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for _, line := range lines {
		lineResult := r.db.WithContext(ctx).Model(&PackTaskLineDTO{}).
			Where("id = ?", line.ID).
			Select("*").
			Updates(&line)
		if lineResult.Error != nil {
			return lineResult.Error
		}
		if lineResult.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}

	if err := r.upsertCartons(ctx, cartons, contents); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a pack task with its instructions and cartons by ID.
func (r *GormPackTaskRepository) Get(ctx context.Context, id kernel.UUID) (*packing.PackTask, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackTaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pack task", id.String())
		}
		return nil, err
	}

	return r.hydrate(ctx, dto)
}

// GetActiveByOrder retrieves the not-yet-completed pack task for an order.
func (r *GormPackTaskRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*packing.PackTask, error) {
	return r.getByOrder(ctx, orderID, "status NOT IN ?",
		[]int{int(packing.Completed), int(packing.Cancelled)})
}

// GetCompletedByOrder retrieves the completed pack task for an order.
func (r *GormPackTaskRepository) GetCompletedByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*packing.PackTask, error) {
	return r.getByOrder(ctx, orderID, "status = ?", int(packing.Completed))
}

func (r *GormPackTaskRepository) getByOrder(
	ctx context.Context,
	orderID kernel.UUID,
	statusQuery string,
	statusArg any,
) (*packing.PackTask, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PackTaskDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Where(statusQuery, statusArg).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pack task for order", orderID.String())
		}
		return nil, err
	}

	return r.hydrate(ctx, dto)
}

func (r *GormPackTaskRepository) hydrate(ctx context.Context, dto PackTaskDTO) (*packing.PackTask, error) {
	var lines []PackTaskLineDTO
	err := r.db.WithContext(ctx).
		Where("task_id = ?", dto.ID).
		Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}

	var cartons []CartonDTO
	err = r.db.WithContext(ctx).
		Where("task_id = ?", dto.ID).
		Order("number").
		Find(&cartons).Error
	if err != nil {
		return nil, err
	}

	var contents []CartonContentDTO
	if len(cartons) > 0 {
		cartonIDs := make([]uuid.UUID, 0, len(cartons))
		for _, carton := range cartons {
			cartonIDs = append(cartonIDs, carton.ID)
		}
		err = r.db.WithContext(ctx).
			Where("carton_id IN ?", cartonIDs).
			Find(&contents).Error
		if err != nil {
			return nil, err
		}
	}

	return toDomain(dto, lines, cartons, contents)
}

func (r *GormPackTaskRepository) createCartons(
	ctx context.Context,
	cartons []CartonDTO,
	contents []CartonContentDTO,
) error {
	if len(cartons) > 0 {
		if err := r.db.WithContext(ctx).Create(&cartons).Error; err != nil {
			return err
		}
	}
	if len(contents) > 0 {
		if err := r.db.WithContext(ctx).Create(&contents).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormPackTaskRepository) upsertCartons(
	ctx context.Context,
	cartons []CartonDTO,
	contents []CartonContentDTO,
) error {
	for _, carton := range cartons {
		result := r.db.WithContext(ctx).Model(&CartonDTO{}).
			Where("id = ?", carton.ID).
			Select("*").
			Updates(&carton)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := r.db.WithContext(ctx).Create(&carton).Error; err != nil {
				return err
			}
		}
	}

	if len(cartons) > 0 {
		cartonIDs := make([]uuid.UUID, 0, len(cartons))
		for _, carton := range cartons {
			cartonIDs = append(cartonIDs, carton.ID)
		}
		err := r.db.WithContext(ctx).
			Where("carton_id IN ?", cartonIDs).
			Delete(&CartonContentDTO{}).Error
		if err != nil {
			return err
		}
	}
	if len(contents) > 0 {
		if err := r.db.WithContext(ctx).Create(&contents).Error; err != nil {
			return err
		}
	}

	return nil
}
