package product_test

import (
	"testing"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/product"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product", func(t *testing.T) {
		p, err := product.NewProduct(
			kernel.NewUUID(), kernel.NewUUID(),
			"SKU-100", "Wireless Mouse", 7,
			decimal.NewFromFloat(0.25), decimal.NewFromFloat(12.90),
		)
		require.NoError(t, err)

		assert.Equal(t, "SKU-100", p.SKU())
		assert.Equal(t, 7, p.SafetyBufferDays())
	})

	t.Run("requires sku", func(t *testing.T) {
		_, err := product.NewProduct(
			kernel.NewUUID(), kernel.NewUUID(),
			"", "No SKU", 0,
			decimal.Zero, decimal.Zero,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative buffer and amounts", func(t *testing.T) {
		_, err := product.NewProduct(
			kernel.NewUUID(), kernel.NewUUID(),
			"SKU-1", "X", -1, decimal.Zero, decimal.Zero,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = product.NewProduct(
			kernel.NewUUID(), kernel.NewUUID(),
			"SKU-1", "X", 0, decimal.NewFromInt(-1), decimal.Zero,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		var p product.Product
		require.ErrorIs(t, p.Validate(), product.ErrProductIsNotConstructed)
	})
}

func TestProduct_WeightOf(t *testing.T) {
	p, err := product.NewProduct(
		kernel.NewUUID(), kernel.NewUUID(),
		"SKU-2", "Keyboard", 0,
		decimal.NewFromFloat(0.75), decimal.NewFromFloat(45),
	)
	require.NoError(t, err)

	assert.True(t, p.WeightOf(4).Equal(decimal.NewFromFloat(3.0)))
	assert.True(t, p.WeightOf(0).Equal(decimal.Zero))
}
