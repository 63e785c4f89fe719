package pickrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/picking"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPickTaskRepository implements PickTaskRepository using GORM.
type GormPickTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPickTaskRepository creates a new GORM pick task repository.
func NewGormPickTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormPickTaskRepository {
	return &GormPickTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pick task with its instructions to the database.
func (r *GormPickTaskRepository) Add(ctx context.Context, aggregate *picking.PickTask) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, lines := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing pick task and its instructions to the database.
func (r *GormPickTaskRepository) Update(ctx context.Context, aggregate *picking.PickTask) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, lines := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PickTaskDTO{}).
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
		lineResult := r.db.WithContext(ctx).Model(&PickTaskLineDTO{}).
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

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a pick task with its instructions by ID.
func (r *GormPickTaskRepository) Get(ctx context.Context, id kernel.UUID) (*picking.PickTask, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PickTaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pick task", id.String())
		}
		return nil, err
	}

	lines, err := r.linesFor(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, lines)
}

// GetActiveByOrder retrieves the not-yet-completed pick tasks covering an
// order. Batch tasks show up here through their instruction rows.
func (r *GormPickTaskRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*picking.PickTask, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var taskIDs []uuid.UUID
	err := r.db.WithContext(ctx).Model(&PickTaskLineDTO{}).
		Distinct("task_id").
		Where("order_id = ?", orderID.Bytes()).
		Pluck("task_id", &taskIDs).Error
	if err != nil {
		return nil, err
	}
	if len(taskIDs) == 0 {
		return nil, nil
	}

	var dtos []PickTaskDTO
	err = r.db.WithContext(ctx).
		Where("id IN ?", taskIDs).
		Where("status NOT IN ?", []int{int(picking.Completed), int(picking.Cancelled)}).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*picking.PickTask, 0, len(dtos))
	for _, dto := range dtos {
		lines, linesErr := r.linesFor(ctx, dto.ID)
		if linesErr != nil {
			return nil, linesErr
		}
		task, mapErr := toDomain(dto, lines)
		if mapErr != nil {
			return nil, mapErr
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (r *GormPickTaskRepository) linesFor(ctx context.Context, taskID uuid.UUID) ([]PickTaskLineDTO, error) {
	var lines []PickTaskLineDTO
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("location_code").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
