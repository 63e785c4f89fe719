// Package packrepo persists pack tasks with their pack instructions, the
// cartons being filled and the carton contents.
package packrepo

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/packing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackTaskDTO represents one pack task row.
type PackTaskDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;index"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`

	Status   int `gorm:"index"`
	Assignee string

	LabelGenerated bool
	TrackingNumber string `gorm:"index"`
	LabelURL       string

	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// TableName specifies the database table name for pack tasks.
func (PackTaskDTO) TableName() string {
	return "pack_tasks"
}

// PackTaskLineDTO represents one pack instruction row.
type PackTaskLineDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID      uuid.UUID `gorm:"type:uuid;index"`
	OrderLineID uuid.UUID `gorm:"type:uuid"`
	ProductID   uuid.UUID `gorm:"type:uuid"`

	QuantityToPack int
	QuantityPacked int
	Status         int
}

// TableName specifies the database table name for pack instructions.
func (PackTaskLineDTO) TableName() string {
	return "pack_task_lines"
}

// CartonDTO represents one carton row.
type CartonDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID uuid.UUID `gorm:"type:uuid;index"`
	Number int

	LengthCm decimal.Decimal `gorm:"type:numeric"`
	WidthCm  decimal.Decimal `gorm:"type:numeric"`
	HeightCm decimal.Decimal `gorm:"type:numeric"`

	TareWeightKg decimal.Decimal `gorm:"type:numeric"`
	ItemWeightKg decimal.Decimal `gorm:"type:numeric"`
}

// TableName specifies the database table name for cartons.
func (CartonDTO) TableName() string {
	return "cartons"
}

// CartonContentDTO represents a quantity of one order line inside a carton.
type CartonContentDTO struct {
	CartonID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderLineID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"type:uuid"`
	Quantity    int
}

// TableName specifies the database table name for carton contents.
func (CartonContentDTO) TableName() string {
	return "carton_contents"
}

// fromDomain converts a pack task aggregate to its database representation.
func fromDomain(aggregate *packing.PackTask) (PackTaskDTO, []PackTaskLineDTO, []CartonDTO, []CartonContentDTO) {
	dto := PackTaskDTO{
		ID:             aggregate.ID().Bytes(),
		TenantID:       aggregate.TenantID().Bytes(),
		WarehouseID:    aggregate.WarehouseID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		Status:         int(aggregate.Status()),
		Assignee:       aggregate.Assignee(),
		LabelGenerated: aggregate.LabelGenerated(),
		TrackingNumber: aggregate.TrackingNumber(),
		LabelURL:       aggregate.LabelURL(),
		CreatedAt:      aggregate.CreatedAt(),
		StartedAt:      aggregate.StartedAt(),
		CompletedAt:    aggregate.CompletedAt(),
	}

	lines := make([]PackTaskLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, PackTaskLineDTO{
			ID:             line.ID().Bytes(),
			TaskID:         aggregate.ID().Bytes(),
			OrderLineID:    line.OrderLineID().Bytes(),
			ProductID:      line.ProductID().Bytes(),
			QuantityToPack: line.QuantityToPack(),
			QuantityPacked: line.QuantityPacked(),
			Status:         int(line.Status()),
		})
	}

	cartons := make([]CartonDTO, 0, len(aggregate.Cartons()))
	var contents []CartonContentDTO
	for _, carton := range aggregate.Cartons() {
		cartons = append(cartons, CartonDTO{
			ID:           carton.ID().Bytes(),
			TaskID:       aggregate.ID().Bytes(),
			Number:       carton.Number(),
			LengthCm:     carton.LengthCm(),
			WidthCm:      carton.WidthCm(),
			HeightCm:     carton.HeightCm(),
			TareWeightKg: carton.TareWeightKg(),
			ItemWeightKg: carton.ItemWeightKg(),
		})
		contents = append(contents, contentsFromDomain(carton)...)
	}

	return dto, lines, cartons, contents
}

// contentsFromDomain collapses a carton's content entries into one row per
// order line. Packing the same line into a carton twice appends two entries
// in the aggregate, but the table keys contents by carton and order line.
func contentsFromDomain(carton *packing.Carton) []CartonContentDTO {
	merged := make([]CartonContentDTO, 0, len(carton.Contents()))
	index := make(map[uuid.UUID]int, len(carton.Contents()))
	for _, content := range carton.Contents() {
		lineID := content.OrderLineID.Bytes()
		if at, ok := index[lineID]; ok {
			merged[at].Quantity += content.Quantity
			continue
		}
		index[lineID] = len(merged)
		merged = append(merged, CartonContentDTO{
			CartonID:    carton.ID().Bytes(),
			OrderLineID: lineID,
			ProductID:   content.ProductID.Bytes(),
			Quantity:    content.Quantity,
		})
	}
	return merged
}

// toDomain converts database rows to a pack task aggregate.
func toDomain(
	dto PackTaskDTO,
	lineDTOs []PackTaskLineDTO,
	cartonDTOs []CartonDTO,
	contentDTOs []CartonContentDTO,
) (*packing.PackTask, error) {
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
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*packing.TaskLine, 0, len(lineDTOs))
	for _, lineDTO := range lineDTOs {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	contentsByCarton := make(map[uuid.UUID][]packing.CartonContent, len(cartonDTOs))
	for _, contentDTO := range contentDTOs {
		content, contentErr := contentToDomain(contentDTO)
		if contentErr != nil {
			return nil, contentErr
		}
		contentsByCarton[contentDTO.CartonID] = append(contentsByCarton[contentDTO.CartonID], content)
	}

	cartons := make([]*packing.Carton, 0, len(cartonDTOs))
	for _, cartonDTO := range cartonDTOs {
		cartonID, cartonErr := kernel.UUIDFromBytes(cartonDTO.ID[:])
		if cartonErr != nil {
			return nil, cartonErr
		}
		carton, restoreErr := packing.RestoreCarton(
			cartonID,
			cartonDTO.Number,
			cartonDTO.LengthCm, cartonDTO.WidthCm, cartonDTO.HeightCm,
			cartonDTO.TareWeightKg, cartonDTO.ItemWeightKg,
			contentsByCarton[cartonDTO.ID],
		)
		if restoreErr != nil {
			return nil, restoreErr
		}
		cartons = append(cartons, carton)
	}

	return packing.RestorePackTask(
		id, tenantID, warehouseID, orderID,
		packing.Status(dto.Status),
		dto.Assignee,
		lines, cartons,
		dto.LabelGenerated,
		dto.TrackingNumber, dto.LabelURL,
		dto.CreatedAt,
		dto.StartedAt, dto.CompletedAt,
	)
}

func lineToDomain(dto PackTaskLineDTO) (*packing.TaskLine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderLineID, err := kernel.UUIDFromBytes(dto.OrderLineID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return packing.RestoreTaskLine(
		id, orderLineID, productID,
		dto.QuantityToPack, dto.QuantityPacked,
		packing.LineStatus(dto.Status))
}

func contentToDomain(dto CartonContentDTO) (packing.CartonContent, error) {
	orderLineID, err := kernel.UUIDFromBytes(dto.OrderLineID[:])
	if err != nil {
		return packing.CartonContent{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return packing.CartonContent{}, err
	}

	return packing.CartonContent{
		OrderLineID: orderLineID,
		ProductID:   productID,
		Quantity:    dto.Quantity,
	}, nil
}
