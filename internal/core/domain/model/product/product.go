package product

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through NewProduct or RestoreProduct.
var ErrProductIsNotConstructed = errors.New(
	"Product must be created via NewProduct or RestoreProduct constructor")

// Product is catalog data the pipeline consults: the safety-buffer window
// that excludes near-expiry lots from allocation, and the unit weight and
// cost used when cartons are weighed and valued during packing.
type Product struct {
	id       kernel.UUID
	tenantID kernel.UUID

	sku  string
	name string

	// safetyBufferDays excludes lots expiring within this many days from
	// allocation. Zero disables the buffer.
	safetyBufferDays int

	unitWeightKg decimal.Decimal
	unitCost     decimal.Decimal

	isConstructed bool
}

// NewProduct creates a catalog product.
func NewProduct(
	id, tenantID kernel.UUID,
	sku, name string,
	safetyBufferDays int,
	unitWeightKg, unitCost decimal.Decimal,
) (*Product, error) {
	p := &Product{
		name:          name,
		unitWeightKg:  unitWeightKg,
		unitCost:      unitCost,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTenantID(tenantID),
		p.setSKU(sku),
		p.setSafetyBufferDays(safetyBufferDays),
	); err != nil {
		return nil, err
	}

	if unitWeightKg.IsNegative() {
		return nil, errs.NewValueIsInvalidError("unit weight")
	}
	if unitCost.IsNegative() {
		return nil, errs.NewValueIsInvalidError("unit cost")
	}

	return p, nil
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(
	id, tenantID kernel.UUID,
	sku, name string,
	safetyBufferDays int,
	unitWeightKg, unitCost decimal.Decimal,
) (*Product, error) {
	return NewProduct(id, tenantID, sku, name, safetyBufferDays, unitWeightKg, unitCost)
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// TenantID returns the owning tenant.
func (p *Product) TenantID() kernel.UUID {
	return p.tenantID
}

// SKU returns the stock-keeping unit code.
func (p *Product) SKU() string {
	return p.sku
}

// Name returns the display name.
func (p *Product) Name() string {
	return p.name
}

// SafetyBufferDays returns the near-expiry exclusion window in days.
func (p *Product) SafetyBufferDays() int {
	return p.safetyBufferDays
}

// UnitWeightKg returns the weight of a single unit in kilograms.
func (p *Product) UnitWeightKg() decimal.Decimal {
	return p.unitWeightKg
}

// UnitCost returns the cost of a single unit.
func (p *Product) UnitCost() decimal.Decimal {
	return p.unitCost
}

// WeightOf returns the total weight of quantity units.
func (p *Product) WeightOf(quantity int) decimal.Decimal {
	return p.unitWeightKg.Mul(decimal.NewFromInt(int64(quantity)))
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.tenantID = id
	return nil
}

func (p *Product) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	p.sku = sku
	return nil
}

func (p *Product) setSafetyBufferDays(days int) error {
	if days < 0 {
		return errs.NewValueIsInvalidError("safety buffer days")
	}
	p.safetyBufferDays = days
	return nil
}
