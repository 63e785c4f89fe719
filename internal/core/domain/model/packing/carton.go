package packing

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrCartonIsNotConstructed is returned when a Carton instance was not
// created through NewCarton or RestoreCarton.
var ErrCartonIsNotConstructed = errors.New(
	"Carton must be created via NewCarton or RestoreCarton constructor")

// CartonContent is a quantity of one order line packed into a carton.
type CartonContent struct {
	OrderLineID kernel.UUID
	ProductID   kernel.UUID
	Quantity    int
}

// Carton is a physical shipping container being filled during packing.
// Weight accumulates as items go in; dimensions come from the box type.
type Carton struct {
	id     kernel.UUID
	number int

	lengthCm decimal.Decimal
	widthCm  decimal.Decimal
	heightCm decimal.Decimal

	tareWeightKg decimal.Decimal
	itemWeightKg decimal.Decimal

	contents []CartonContent

	isConstructed bool
}

// NewCarton creates an empty carton with the given box dimensions and
// tare weight.
func NewCarton(
	id kernel.UUID,
	number int,
	lengthCm, widthCm, heightCm, tareWeightKg decimal.Decimal,
) (*Carton, error) {
	c := &Carton{
		lengthCm:      lengthCm,
		widthCm:       widthCm,
		heightCm:      heightCm,
		tareWeightKg:  tareWeightKg,
		itemWeightKg:  decimal.Zero,
		isConstructed: true,
	}

	if err := c.setID(id); err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, errs.NewValueIsInvalidError("carton number")
	}
	c.number = number

	for name, dim := range map[string]decimal.Decimal{
		"carton length": lengthCm,
		"carton width":  widthCm,
		"carton height": heightCm,
	} {
		if dim.IsNegative() || dim.IsZero() {
			return nil, errs.NewValueIsInvalidError(name)
		}
	}
	if tareWeightKg.IsNegative() {
		return nil, errs.NewValueIsInvalidError("carton tare weight")
	}

	return c, nil
}

// RestoreCarton reconstructs a carton from persistence.
func RestoreCarton(
	id kernel.UUID,
	number int,
	lengthCm, widthCm, heightCm, tareWeightKg, itemWeightKg decimal.Decimal,
	contents []CartonContent,
) (*Carton, error) {
	c, err := NewCarton(id, number, lengthCm, widthCm, heightCm, tareWeightKg)
	if err != nil {
		return nil, err
	}
	if itemWeightKg.IsNegative() {
		return nil, errs.NewValueIsInvalidError("carton item weight")
	}
	c.itemWeightKg = itemWeightKg
	c.contents = contents
	return c, nil
}

// Validate ensures the Carton instance was properly constructed.
func (c *Carton) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartonIsNotConstructed
	}
	return nil
}

// ID returns the carton's unique identifier.
func (c *Carton) ID() kernel.UUID {
	return c.id
}

// Number returns the carton's sequence number within its pack task.
func (c *Carton) Number() int {
	return c.number
}

// LengthCm returns the box length in centimeters.
func (c *Carton) LengthCm() decimal.Decimal {
	return c.lengthCm
}

// WidthCm returns the box width in centimeters.
func (c *Carton) WidthCm() decimal.Decimal {
	return c.widthCm
}

// HeightCm returns the box height in centimeters.
func (c *Carton) HeightCm() decimal.Decimal {
	return c.heightCm
}

// TareWeightKg returns the empty box weight.
func (c *Carton) TareWeightKg() decimal.Decimal {
	return c.tareWeightKg
}

// ItemWeightKg returns the accumulated weight of the packed items.
func (c *Carton) ItemWeightKg() decimal.Decimal {
	return c.itemWeightKg
}

// GrossWeightKg returns tare plus packed item weight.
func (c *Carton) GrossWeightKg() decimal.Decimal {
	return c.tareWeightKg.Add(c.itemWeightKg)
}

// Contents returns what has been packed into the carton.
func (c *Carton) Contents() []CartonContent {
	return c.contents
}

// Pack places a quantity of an order line into the carton.
func (c *Carton) Pack(orderLineID, productID kernel.UUID, quantity int, weightKg decimal.Decimal) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("pack quantity")
	}
	if weightKg.IsNegative() {
		return errs.NewValueIsInvalidError("pack weight")
	}
	c.contents = append(c.contents, CartonContent{
		OrderLineID: orderLineID,
		ProductID:   productID,
		Quantity:    quantity,
	})
	c.itemWeightKg = c.itemWeightKg.Add(weightKg)
	return nil
}

// QuantityOf returns the packed quantity of an order line across contents.
func (c *Carton) QuantityOf(orderLineID kernel.UUID) int {
	total := 0
	for _, content := range c.contents {
		if content.OrderLineID.IsEqual(orderLineID) {
			total += content.Quantity
		}
	}
	return total
}

func (c *Carton) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}
