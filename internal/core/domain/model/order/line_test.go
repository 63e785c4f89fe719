package order_test

import (
	"testing"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	t.Run("creates pending line", func(t *testing.T) {
		line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 100, nil)
		require.NoError(t, err)

		assert.Equal(t, order.LinePending, line.Status())
		assert.Equal(t, 100, line.QuantityOrdered())
		assert.Equal(t, 100, line.RemainingToAllocate())
		assert.Nil(t, line.PolicyOverride())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 0, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.NewLine(kernel.NewUUID(), kernel.NewUUID(), -5, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects invalid policy override", func(t *testing.T) {
		bad := order.Policy("NEWEST")
		_, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 10, &bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLine_EffectivePolicy(t *testing.T) {
	override := order.PolicyLIFO
	withOverride, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 10, &override)
	require.NoError(t, err)
	assert.Equal(t, order.PolicyLIFO, withOverride.EffectivePolicy(order.PolicyFIFO))

	plain, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 10, nil)
	require.NoError(t, err)
	assert.Equal(t, order.PolicyFEFO, plain.EffectivePolicy(order.PolicyFEFO))
}

func TestLine_FinishAllocation(t *testing.T) {
	t.Run("full allocation", func(t *testing.T) {
		line, _ := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 100, nil)
		require.NoError(t, line.FinishAllocation(100))

		assert.Equal(t, order.LineAllocated, line.Status())
		assert.Equal(t, 100, line.QuantityAllocated())
		assert.Zero(t, line.QuantityBackordered())
	})

	t.Run("partial allocation backorders the remainder", func(t *testing.T) {
		line, _ := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 100, nil)
		require.NoError(t, line.FinishAllocation(60))

		assert.Equal(t, order.LinePartiallyAllocated, line.Status())
		assert.Equal(t, 60, line.QuantityAllocated())
		assert.Equal(t, 40, line.QuantityBackordered())
	})

	t.Run("zero allocation backorders the line", func(t *testing.T) {
		line, _ := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 100, nil)
		require.NoError(t, line.FinishAllocation(0))

		assert.Equal(t, order.LineBackordered, line.Status())
		assert.Equal(t, 100, line.QuantityBackordered())
	})

	t.Run("over-allocation is rejected", func(t *testing.T) {
		line, _ := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 100, nil)
		err := line.FinishAllocation(101)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestLine_RecordPick(t *testing.T) {
	line, _ := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 100, nil)
	require.NoError(t, line.FinishAllocation(100))

	require.NoError(t, line.RecordPick(40))
	require.NoError(t, line.RecordPick(60))
	assert.Equal(t, 100, line.QuantityPicked())

	t.Run("picking beyond allocation is rejected", func(t *testing.T) {
		err := line.RecordPick(1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("non-positive pick is rejected", func(t *testing.T) {
		err := line.RecordPick(0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLine_PackAndShipChain(t *testing.T) {
	line, _ := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 50, nil)
	require.NoError(t, line.FinishAllocation(50))
	require.NoError(t, line.RecordPick(50))

	require.NoError(t, line.RecordPack(50))
	assert.Equal(t, 50, line.QuantityPacked())

	t.Run("packing beyond picked is rejected", func(t *testing.T) {
		err := line.RecordPack(1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	require.NoError(t, line.RecordShip(50))
	assert.Equal(t, 50, line.QuantityShipped())

	t.Run("shipping beyond packed is rejected", func(t *testing.T) {
		err := line.RecordShip(51)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestLine_RecordShortfall(t *testing.T) {
	line, _ := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 100, nil)
	require.NoError(t, line.FinishAllocation(100))
	require.NoError(t, line.RecordPick(90))

	require.NoError(t, line.RecordShortfall(10))
	assert.Equal(t, 10, line.QuantityBackordered())

	err := line.RecordShortfall(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestLine_ClosePickShortfall(t *testing.T) {
	line, _ := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 100, nil)
	require.NoError(t, line.FinishAllocation(100))
	require.NoError(t, line.RecordPick(90))

	released := line.ClosePickShortfall()

	assert.Equal(t, 10, released)
	assert.Equal(t, 90, line.QuantityAllocated())
	assert.Equal(t, 10, line.QuantityBackordered())
	assert.Equal(t, order.LinePartiallyAllocated, line.Status())

	t.Run("fully picked line is a no-op", func(t *testing.T) {
		full, _ := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 10, nil)
		require.NoError(t, full.FinishAllocation(10))
		require.NoError(t, full.RecordPick(10))

		assert.Zero(t, full.ClosePickShortfall())
		assert.Equal(t, order.LineAllocated, full.Status())
	})
}

func TestRestoreLine(t *testing.T) {
	t.Run("restores a consistent quantity chain", func(t *testing.T) {
		line, err := order.RestoreLine(
			kernel.NewUUID(), kernel.NewUUID(),
			100, 60, 40, 60, 60, 0,
			order.LinePartiallyAllocated, nil,
		)
		require.NoError(t, err)
		assert.Equal(t, 60, line.QuantityPicked())
	})

	t.Run("rejects a broken quantity chain", func(t *testing.T) {
		_, err := order.RestoreLine(
			kernel.NewUUID(), kernel.NewUUID(),
			100, 60, 0, 80, 0, 0, // picked > allocated
			order.LinePartiallyAllocated, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := order.RestoreLine(
			kernel.NewUUID(), kernel.NewUUID(),
			100, 0, 0, 0, 0, 0,
			order.LineStatus(9), nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
