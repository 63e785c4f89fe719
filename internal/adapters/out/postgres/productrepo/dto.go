// Package productrepo reads catalog data. Products are managed by the
// catalog system; this pipeline only consults them.
package productrepo

import (
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents one product row.
type ProductDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index"`

	SKU  string `gorm:"column:sku;uniqueIndex"`
	Name string

	SafetyBufferDays int

	UnitWeightKg decimal.Decimal `gorm:"type:numeric"`
	UnitCost     decimal.Decimal `gorm:"type:numeric"`
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// toDomain converts a database row to a product.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id, tenantID,
		dto.SKU, dto.Name,
		dto.SafetyBufferDays,
		dto.UnitWeightKg, dto.UnitCost,
	)
}
