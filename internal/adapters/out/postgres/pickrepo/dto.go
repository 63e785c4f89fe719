// Package pickrepo persists pick tasks and their location-sequenced
// instructions.
package pickrepo

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/picking"

	"github.com/google/uuid"
)

// PickTaskDTO represents one pick task row.
type PickTaskDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;index"`

	TaskType string
	Status   int `gorm:"index"`
	Assignee string

	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// TableName specifies the database table name for pick tasks.
func (PickTaskDTO) TableName() string {
	return "pick_tasks"
}

// PickTaskLineDTO represents one pick instruction row. OrderID is indexed so
// cancellation can find the active tasks covering an order.
type PickTaskLineDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID       uuid.UUID `gorm:"type:uuid;index"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	OrderLineID  uuid.UUID `gorm:"type:uuid"`
	AllocationID uuid.UUID `gorm:"type:uuid"`
	ProductID    uuid.UUID `gorm:"type:uuid"`

	LocationCode string
	LPN          string `gorm:"column:lpn"`
	BatchNumber  string

	QuantityToPick int
	QuantityPicked int

	Status   int
	PickedAt *time.Time
}

// TableName specifies the database table name for pick instructions.
func (PickTaskLineDTO) TableName() string {
	return "pick_task_lines"
}

// fromDomain converts a pick task aggregate to its database representation.
func fromDomain(aggregate *picking.PickTask) (PickTaskDTO, []PickTaskLineDTO) {
	dto := PickTaskDTO{
		ID:          aggregate.ID().Bytes(),
		TenantID:    aggregate.TenantID().Bytes(),
		WarehouseID: aggregate.WarehouseID().Bytes(),
		TaskType:    string(aggregate.TaskType()),
		Status:      int(aggregate.Status()),
		Assignee:    aggregate.Assignee(),
		CreatedAt:   aggregate.CreatedAt(),
		StartedAt:   aggregate.StartedAt(),
		CompletedAt: aggregate.CompletedAt(),
	}

	lines := make([]PickTaskLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, PickTaskLineDTO{
			ID:             line.ID().Bytes(),
			TaskID:         aggregate.ID().Bytes(),
			OrderID:        line.OrderID().Bytes(),
			OrderLineID:    line.OrderLineID().Bytes(),
			AllocationID:   line.AllocationID().Bytes(),
			ProductID:      line.ProductID().Bytes(),
			LocationCode:   line.LocationCode(),
			LPN:            line.LPN(),
			BatchNumber:    line.BatchNumber(),
			QuantityToPick: line.QuantityToPick(),
			QuantityPicked: line.QuantityPicked(),
			Status:         int(line.Status()),
			PickedAt:       line.PickedAt(),
		})
	}

	return dto, lines
}

// toDomain converts database rows to a pick task aggregate.
func toDomain(dto PickTaskDTO, lineDTOs []PickTaskLineDTO) (*picking.PickTask, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*picking.TaskLine, 0, len(lineDTOs))
	for _, lineDTO := range lineDTOs {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return picking.RestorePickTask(
		id, tenantID, warehouseID,
		picking.TaskType(dto.TaskType),
		picking.Status(dto.Status),
		dto.Assignee,
		lines,
		dto.CreatedAt,
		dto.StartedAt, dto.CompletedAt,
	)
}

func lineToDomain(dto PickTaskLineDTO) (*picking.TaskLine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	orderLineID, err := kernel.UUIDFromBytes(dto.OrderLineID[:])
	if err != nil {
		return nil, err
	}
	allocationID, err := kernel.UUIDFromBytes(dto.AllocationID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return picking.RestoreTaskLine(
		id, orderID, orderLineID, allocationID, productID,
		dto.LocationCode, dto.LPN, dto.BatchNumber,
		dto.QuantityToPick, dto.QuantityPicked,
		picking.LineStatus(dto.Status),
		dto.PickedAt,
	)
}
