package order_test

import (
	"testing"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLine(t *testing.T, quantity int) *order.Line {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), quantity, nil)
	require.NoError(t, err)
	return line
}

func newTestOrder(t *testing.T, lines ...*order.Line) *order.Order {
	t.Helper()
	if len(lines) == 0 {
		lines = []*order.Line{newTestLine(t, 10)}
	}
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"ORD-1001", order.PolicyFIFO, 0, lines,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in New status", func(t *testing.T) {
		line := newTestLine(t, 10)
		o := newTestOrder(t, line)

		assert.Equal(t, order.New, o.Status())
		assert.Equal(t, order.PolicyFIFO, o.Policy())
		assert.Equal(t, "ORD-1001", o.OrderNumber())
		assert.Len(t, o.Lines(), 1)
		assert.Equal(t, 10, o.UnitsOrdered())
		assert.Zero(t, o.UnitsAllocated())
	})

	t.Run("requires at least one line", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"ORD-1002", order.PolicyFIFO, 0, nil,
		)
		require.ErrorIs(t, err, order.ErrOrderHasNoLines)
	})

	t.Run("requires valid identifiers and order number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
			"ORD-1003", order.PolicyFIFO, 0, []*order.Line{newTestLine(t, 1)},
		)
		require.Error(t, err)

		_, err = order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", order.PolicyFIFO, 0, []*order.Line{newTestLine(t, 1)},
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unknown policy", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"ORD-1004", order.Policy("RANDOM"), 0, []*order.Line{newTestLine(t, 1)},
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_CompleteAllocation(t *testing.T) {
	t.Run("all lines full -> Allocated", func(t *testing.T) {
		line := newTestLine(t, 10)
		o := newTestOrder(t, line)

		require.NoError(t, line.FinishAllocation(10))
		require.NoError(t, o.CompleteAllocation())
		assert.Equal(t, order.Allocated, o.Status())
		assert.Equal(t, 10, o.UnitsAllocated())
	})

	t.Run("some allocation -> PartiallyAllocated", func(t *testing.T) {
		full := newTestLine(t, 10)
		partial := newTestLine(t, 100)
		o := newTestOrder(t, full, partial)

		require.NoError(t, full.FinishAllocation(10))
		require.NoError(t, partial.FinishAllocation(60))
		require.NoError(t, o.CompleteAllocation())

		assert.Equal(t, order.PartiallyAllocated, o.Status())
		assert.Equal(t, 70, o.UnitsAllocated())
		assert.Equal(t, 40, o.UnitsBackordered())
	})

	t.Run("no allocation -> AllocationFailed", func(t *testing.T) {
		line := newTestLine(t, 10)
		o := newTestOrder(t, line)

		require.NoError(t, line.FinishAllocation(0))
		require.NoError(t, o.CompleteAllocation())
		assert.Equal(t, order.AllocationFailed, o.Status())
	})

	t.Run("rejected outside New", func(t *testing.T) {
		line := newTestLine(t, 10)
		o := newTestOrder(t, line)
		require.NoError(t, line.FinishAllocation(10))
		require.NoError(t, o.CompleteAllocation())

		err := o.CompleteAllocation()
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestOrder_ResetAllocation(t *testing.T) {
	line := newTestLine(t, 30)
	o := newTestOrder(t, line)
	require.NoError(t, line.FinishAllocation(30))
	require.NoError(t, o.CompleteAllocation())

	require.NoError(t, o.ResetAllocation())

	assert.Equal(t, order.New, o.Status())
	assert.Zero(t, o.UnitsAllocated())
	assert.Equal(t, order.LinePending, line.Status())

	// Deallocating again is a no-op, not a transition failure.
	require.NoError(t, o.ResetAllocation())
	assert.Equal(t, order.New, o.Status())
	assert.Zero(t, o.UnitsAllocated())
}

func TestOrder_PrepareReallocation(t *testing.T) {
	line := newTestLine(t, 10)
	o := newTestOrder(t, line)
	require.NoError(t, line.FinishAllocation(0))
	require.NoError(t, o.CompleteAllocation())
	require.Equal(t, order.AllocationFailed, o.Status())

	require.NoError(t, o.PrepareReallocation())
	assert.Equal(t, order.New, o.Status())

	// Already New is a no-op.
	require.NoError(t, o.PrepareReallocation())
	assert.Equal(t, order.New, o.Status())
}

func TestOrder_PipelineHappyPath(t *testing.T) {
	line := newTestLine(t, 50)
	o := newTestOrder(t, line)

	require.NoError(t, line.FinishAllocation(50))
	require.NoError(t, o.CompleteAllocation())
	require.NoError(t, o.StartPicking())
	assert.Equal(t, order.Picking, o.Status())

	require.NoError(t, line.RecordPick(50))
	require.NoError(t, o.CompletePicking())
	assert.Equal(t, order.Picked, o.Status())

	require.NoError(t, o.StartPacking())
	require.NoError(t, line.RecordPack(50))
	require.NoError(t, o.CompletePacking())
	assert.Equal(t, order.Packed, o.Status())

	shippedAt := time.Now()
	require.NoError(t, o.Ship("UPS", "GROUND", "TRK-0001", shippedAt))
	assert.Equal(t, order.Shipped, o.Status())
	assert.Equal(t, "TRK-0001", o.TrackingNumber())
	assert.Equal(t, 50, o.UnitsShipped())
	require.NotNil(t, o.ShippedAt())

	require.NoError(t, o.MarkDelivered(shippedAt.Add(48*time.Hour)))
	assert.Equal(t, order.Delivered, o.Status())
	require.NotNil(t, o.DeliveredAt())
}

func TestOrder_Ship_Validation(t *testing.T) {
	line := newTestLine(t, 5)
	o := newTestOrder(t, line)

	t.Run("requires Packed status", func(t *testing.T) {
		err := o.Ship("UPS", "GROUND", "TRK-1", time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("requires carrier and tracking", func(t *testing.T) {
		err := o.Ship("", "GROUND", "TRK-1", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		err = o.Ship("UPS", "GROUND", "", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_HoldAndRelease(t *testing.T) {
	line := newTestLine(t, 10)
	o := newTestOrder(t, line)
	require.NoError(t, line.FinishAllocation(10))
	require.NoError(t, o.CompleteAllocation())

	require.NoError(t, o.Hold())
	assert.Equal(t, order.OnHold, o.Status())
	require.NotNil(t, o.StatusBeforeHold())
	assert.Equal(t, order.Allocated, *o.StatusBeforeHold())

	require.NoError(t, o.ReleaseHold())
	assert.Equal(t, order.Allocated, o.Status())
	assert.Nil(t, o.StatusBeforeHold())

	t.Run("release without hold is rejected", func(t *testing.T) {
		err := o.ReleaseHold()
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancel after allocation releases reservations", func(t *testing.T) {
		line := newTestLine(t, 30)
		o := newTestOrder(t, line)
		require.NoError(t, line.FinishAllocation(30))
		require.NoError(t, o.CompleteAllocation())

		cancelledAt := time.Now()
		require.NoError(t, o.Cancel("customer request", cancelledAt))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "customer request", o.CancellationReason())
		require.NotNil(t, o.CancelledAt())
		assert.Zero(t, o.UnitsAllocated())
	})

	t.Run("cancel mid-pick keeps picked quantity on record", func(t *testing.T) {
		line := newTestLine(t, 30)
		o := newTestOrder(t, line)
		require.NoError(t, line.FinishAllocation(30))
		require.NoError(t, o.CompleteAllocation())
		require.NoError(t, o.StartPicking())
		require.NoError(t, line.RecordPick(10))

		require.NoError(t, o.Cancel("damaged stock", time.Now()))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, 10, line.QuantityAllocated())
		assert.Equal(t, 10, line.QuantityPicked())
	})

	t.Run("cancel after shipping is rejected", func(t *testing.T) {
		line := newTestLine(t, 5)
		o := newTestOrder(t, line)
		require.NoError(t, line.FinishAllocation(5))
		require.NoError(t, o.CompleteAllocation())
		require.NoError(t, o.StartPicking())
		require.NoError(t, line.RecordPick(5))
		require.NoError(t, o.CompletePicking())
		require.NoError(t, o.StartPacking())
		require.NoError(t, line.RecordPack(5))
		require.NoError(t, o.CompletePacking())
		require.NoError(t, o.Ship("UPS", "GROUND", "TRK-2", time.Now()))

		err := o.Cancel("too late", time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	line := newTestLine(t, 10)
	id := kernel.NewUUID()
	tenant := kernel.NewUUID()
	wh := kernel.NewUUID()

	restored, err := order.RestoreOrder(
		id, tenant, wh, "ORD-2000", order.PolicyFEFO, 3,
		order.New, nil, "", "", "", nil, nil, nil, "",
		[]*order.Line{line},
	)
	require.NoError(t, err)
	assert.Equal(t, order.New, restored.Status())
	assert.Equal(t, order.PolicyFEFO, restored.Policy())
	assert.Equal(t, 3, restored.Priority())

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(
			id, tenant, wh, "ORD-2001", order.PolicyFIFO, 0,
			order.Status(77), nil, "", "", "", nil, nil, nil, "",
			[]*order.Line{newTestLine(t, 1)},
		)
		require.Error(t, err)
	})
}

func TestOrder_Line(t *testing.T) {
	line := newTestLine(t, 10)
	o := newTestOrder(t, line)

	found, err := o.Line(line.ID())
	require.NoError(t, err)
	assert.True(t, found.ID().IsEqual(line.ID()))

	_, err = o.Line(kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
