package packing_test

import (
	"testing"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/packing"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPackLine(t *testing.T, quantity int) *packing.TaskLine {
	t.Helper()
	line, err := packing.NewTaskLine(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), quantity,
	)
	require.NoError(t, err)
	return line
}

func newTestPackTask(t *testing.T, lines ...*packing.TaskLine) *packing.PackTask {
	t.Helper()
	if len(lines) == 0 {
		lines = []*packing.TaskLine{newTestPackLine(t, 10)}
	}
	task, err := packing.NewPackTask(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		lines, time.Now(),
	)
	require.NoError(t, err)
	return task
}

func openCarton(t *testing.T, task *packing.PackTask) *packing.Carton {
	t.Helper()
	carton, err := task.OpenCarton(
		kernel.NewUUID(),
		decimal.NewFromInt(40), decimal.NewFromInt(30), decimal.NewFromInt(20),
		decimal.NewFromFloat(0.3),
	)
	require.NoError(t, err)
	return carton
}

func TestNewPackTask(t *testing.T) {
	t.Run("creates pending task", func(t *testing.T) {
		task := newTestPackTask(t)
		assert.Equal(t, packing.Pending, task.Status())
		assert.False(t, task.LabelGenerated())
		assert.Empty(t, task.Cartons())
	})

	t.Run("requires at least one line", func(t *testing.T) {
		_, err := packing.NewPackTask(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, time.Now(),
		)
		require.ErrorIs(t, err, packing.ErrPackTaskHasNoLines)
	})
}

func TestPackTask_PackItem(t *testing.T) {
	line := newTestPackLine(t, 10)
	task := newTestPackTask(t, line)
	require.NoError(t, task.Start("packer-1", time.Now()))
	carton := openCarton(t, task)

	require.NoError(t, task.PackItem(line.ID(), carton.ID(), 6, decimal.NewFromFloat(1.5)))
	require.NoError(t, task.PackItem(line.ID(), carton.ID(), 4, decimal.NewFromFloat(1.0)))

	assert.True(t, line.IsFullyPacked())
	assert.Equal(t, packing.LinePacked, line.Status())
	assert.Zero(t, line.Variance())
	assert.Equal(t, 10, carton.QuantityOf(line.OrderLineID()))
	assert.True(t, carton.GrossWeightKg().Equal(decimal.NewFromFloat(2.8)))

	t.Run("packing a closed line is rejected", func(t *testing.T) {
		err := task.PackItem(line.ID(), carton.ID(), 1, decimal.Zero)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("over-pack is rejected", func(t *testing.T) {
		open := newTestPackLine(t, 5)
		task := newTestPackTask(t, open)
		require.NoError(t, task.Start("packer-1", time.Now()))
		carton := openCarton(t, task)
		err := task.PackItem(open.ID(), carton.ID(), 6, decimal.Zero)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unknown carton", func(t *testing.T) {
		err := task.PackItem(line.ID(), kernel.NewUUID(), 1, decimal.Zero)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("packing before start is rejected", func(t *testing.T) {
		fresh := newTestPackTask(t)
		err := fresh.PackItem(kernel.NewUUID(), kernel.NewUUID(), 1, decimal.Zero)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestPackTask_DeclareVariance(t *testing.T) {
	line := newTestPackLine(t, 10)
	task := newTestPackTask(t, line)
	require.NoError(t, task.Start("packer-1", time.Now()))
	carton := openCarton(t, task)
	require.NoError(t, task.PackItem(line.ID(), carton.ID(), 7, decimal.NewFromInt(1)))

	require.NoError(t, task.CloseLineWithVariance(line.ID()))
	assert.Equal(t, packing.LineVariance, line.Status())
	assert.Equal(t, -3, line.Variance())
	assert.True(t, task.AllLinesResolved())
	assert.True(t, task.HasVariance())
	assert.False(t, task.IsFullyPacked())

	t.Run("variance line takes no further packing", func(t *testing.T) {
		err := task.PackItem(line.ID(), carton.ID(), 1, decimal.Zero)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("fully packed line has nothing to declare", func(t *testing.T) {
		packed := newTestPackLine(t, 2)
		task := newTestPackTask(t, packed)
		require.NoError(t, task.Start("packer-1", time.Now()))
		carton := openCarton(t, task)
		require.NoError(t, task.PackItem(packed.ID(), carton.ID(), 2, decimal.Zero))

		err := task.CloseLineWithVariance(packed.ID())
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("requires in-progress task", func(t *testing.T) {
		fresh := newTestPackTask(t)
		err := fresh.CloseLineWithVariance(fresh.Lines()[0].ID())
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestPackTask_AttachLabel(t *testing.T) {
	t.Run("requires every line resolved", func(t *testing.T) {
		line := newTestPackLine(t, 10)
		task := newTestPackTask(t, line)
		require.NoError(t, task.Start("packer-1", time.Now()))
		carton := openCarton(t, task)
		require.NoError(t, task.PackItem(line.ID(), carton.ID(), 5, decimal.Zero))

		err := task.AttachLabel("TRK-1", "https://labels.example/TRK-1.pdf")
		require.ErrorIs(t, err, packing.ErrLinesNotResolved)
	})

	t.Run("attaches after full pack", func(t *testing.T) {
		line := newTestPackLine(t, 5)
		task := newTestPackTask(t, line)
		require.NoError(t, task.Start("packer-1", time.Now()))
		carton := openCarton(t, task)
		require.NoError(t, task.PackItem(line.ID(), carton.ID(), 5, decimal.NewFromInt(1)))

		require.NoError(t, task.AttachLabel("TRK-2", "https://labels.example/TRK-2.pdf"))
		assert.True(t, task.LabelGenerated())
		assert.Equal(t, "TRK-2", task.TrackingNumber())
	})

	t.Run("requires tracking number", func(t *testing.T) {
		line := newTestPackLine(t, 1)
		task := newTestPackTask(t, line)
		require.NoError(t, task.Start("packer-1", time.Now()))
		carton := openCarton(t, task)
		require.NoError(t, task.PackItem(line.ID(), carton.ID(), 1, decimal.Zero))

		err := task.AttachLabel("", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestPackTask_Complete(t *testing.T) {
	t.Run("gated on the label", func(t *testing.T) {
		line := newTestPackLine(t, 5)
		task := newTestPackTask(t, line)
		require.NoError(t, task.Start("packer-1", time.Now()))
		carton := openCarton(t, task)
		require.NoError(t, task.PackItem(line.ID(), carton.ID(), 5, decimal.NewFromInt(2)))

		err := task.Complete(time.Now())
		require.ErrorIs(t, err, packing.ErrLabelNotGenerated)

		require.NoError(t, task.AttachLabel("TRK-3", ""))
		require.NoError(t, task.Complete(time.Now()))
		assert.Equal(t, packing.Completed, task.Status())
		require.NotNil(t, task.CompletedAt())
	})

	t.Run("gated on resolved lines", func(t *testing.T) {
		line := newTestPackLine(t, 5)
		task := newTestPackTask(t, line)
		require.NoError(t, task.Start("packer-1", time.Now()))

		err := task.Complete(time.Now())
		require.ErrorIs(t, err, packing.ErrLinesNotResolved)
	})

	t.Run("variance line counts as terminal", func(t *testing.T) {
		full := newTestPackLine(t, 5)
		short := newTestPackLine(t, 4)
		task := newTestPackTask(t, full, short)
		require.NoError(t, task.Start("packer-1", time.Now()))
		carton := openCarton(t, task)
		require.NoError(t, task.PackItem(full.ID(), carton.ID(), 5, decimal.NewFromInt(1)))
		require.NoError(t, task.PackItem(short.ID(), carton.ID(), 1, decimal.Zero))
		require.NoError(t, task.CloseLineWithVariance(short.ID()))

		require.NoError(t, task.AttachLabel("TRK-4", ""))
		require.NoError(t, task.Complete(time.Now()))
		assert.Equal(t, packing.Completed, task.Status())
		assert.Equal(t, -3, short.Variance())
		assert.True(t, task.HasVariance())
	})
}

func TestPackTask_TotalWeightKg(t *testing.T) {
	lineA := newTestPackLine(t, 2)
	lineB := newTestPackLine(t, 3)
	task := newTestPackTask(t, lineA, lineB)
	require.NoError(t, task.Start("packer-1", time.Now()))

	first := openCarton(t, task)
	second := openCarton(t, task)
	assert.Equal(t, 1, first.Number())
	assert.Equal(t, 2, second.Number())

	require.NoError(t, task.PackItem(lineA.ID(), first.ID(), 2, decimal.NewFromFloat(1.2)))
	require.NoError(t, task.PackItem(lineB.ID(), second.ID(), 3, decimal.NewFromFloat(2.1)))

	// Two tares of 0.3 plus 1.2 and 2.1 of items.
	assert.True(t, task.TotalWeightKg().Equal(decimal.NewFromFloat(3.9)))
}

func TestNewCarton_Validation(t *testing.T) {
	_, err := packing.NewCarton(
		kernel.NewUUID(), 1,
		decimal.Zero, decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.Zero,
	)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = packing.NewCarton(
		kernel.NewUUID(), 0,
		decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.Zero,
	)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRestorePackTask(t *testing.T) {
	line, err := packing.RestoreTaskLine(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 5, 5, packing.LinePacked,
	)
	require.NoError(t, err)

	task, err := packing.RestorePackTask(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		packing.InProgress, "packer-2",
		[]*packing.TaskLine{line}, nil,
		true, "TRK-9", "https://labels.example/TRK-9.pdf",
		time.Now(), nil, nil,
	)
	require.NoError(t, err)
	assert.True(t, task.LabelGenerated())
	assert.True(t, task.IsFullyPacked())
}
