package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/picking"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPickOrderRepository struct{ mock.Mock }

func (m *MockPickOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockPickOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockPickOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockPickOrderRepository) GetAllInStatus(_ context.Context, _ order.Status, _ int) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockPickOrderRepository) AddEvent(ctx context.Context, event *order.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockPickOrderRepository) GetEvents(_ context.Context, _ kernel.UUID) ([]*order.Event, error) {
	return nil, errors.New("not implemented in mock")
}

type MockPickInventoryRepository struct{ mock.Mock }

func (m *MockPickInventoryRepository) Add(_ context.Context, _ *inventory.Inventory) error {
	return errors.New("not implemented in mock")
}
func (m *MockPickInventoryRepository) Get(_ context.Context, _ kernel.UUID) (*inventory.Inventory, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockPickInventoryRepository) GetCandidatesForProduct(
	_ context.Context, _, _, _ kernel.UUID,
) ([]*inventory.Inventory, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockPickInventoryRepository) Reserve(_ context.Context, _ kernel.UUID, _ int) error {
	return errors.New("not implemented in mock")
}
func (m *MockPickInventoryRepository) Release(ctx context.Context, id kernel.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}
func (m *MockPickInventoryRepository) CommitDepletion(ctx context.Context, id kernel.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

type MockPickAllocationRepository struct{ mock.Mock }

func (m *MockPickAllocationRepository) Add(_ context.Context, _ *allocation.Allocation) error {
	return errors.New("not implemented in mock")
}
func (m *MockPickAllocationRepository) Update(ctx context.Context, a *allocation.Allocation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockPickAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.Allocation), args.Error(1)
}
func (m *MockPickAllocationRepository) GetLiveByOrder(_ context.Context, _ kernel.UUID) ([]*allocation.Allocation, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockPickAllocationRepository) GetPickedByOrder(_ context.Context, _ kernel.UUID) ([]*allocation.Allocation, error) {
	return nil, errors.New("not implemented in mock")
}

type MockPickTaskRepository struct{ mock.Mock }

func (m *MockPickTaskRepository) Add(_ context.Context, _ *picking.PickTask) error {
	return errors.New("not implemented in mock")
}
func (m *MockPickTaskRepository) Update(ctx context.Context, task *picking.PickTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}
func (m *MockPickTaskRepository) Get(ctx context.Context, id kernel.UUID) (*picking.PickTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*picking.PickTask), args.Error(1)
}
func (m *MockPickTaskRepository) GetActiveByOrder(_ context.Context, _ kernel.UUID) ([]*picking.PickTask, error) {
	return nil, errors.New("not implemented in mock")
}

type MockPickUoW struct{ mock.Mock }

func (m *MockPickUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPickUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPickUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPickUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockPickUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}
func (m *MockPickUoW) AllocationRepository() ports.AllocationRepository {
	args := m.Called()
	return args.Get(0).(ports.AllocationRepository)
}
func (m *MockPickUoW) PickTaskRepository() ports.PickTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.PickTaskRepository)
}

type MockPickUoWFactory struct{ mock.Mock }

func (m *MockPickUoWFactory) Create() commands.PickUoW {
	args := m.Called()
	return args.Get(0).(commands.PickUoW)
}

type pickFixture struct {
	aggregate  *order.Order
	task       *picking.PickTask
	taskLine   *picking.TaskLine
	allocation *allocation.Allocation
	inventory  kernel.UUID
}

func newPickFixture(t *testing.T, quantityToPick int) pickFixture {
	t.Helper()
	now := time.Now().UTC()

	line, err := order.RestoreLine(
		kernel.NewUUID(), kernel.NewUUID(), quantityToPick, quantityToPick, 0, 0, 0, 0,
		order.LineAllocated, nil)
	require.NoError(t, err)
	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"SO-5001", order.PolicyFIFO, 1,
		order.Picking, nil,
		"", "", "",
		nil, nil, nil, "",
		[]*order.Line{line})
	require.NoError(t, err)

	inventoryID := kernel.NewUUID()
	record, err := allocation.NewAllocation(
		kernel.NewUUID(), aggregate.ID(), line.ID(), inventoryID,
		quantityToPick, "BATCH-1", nil, "LPN-1", "A-01-01", now)
	require.NoError(t, err)

	taskLine, err := picking.NewTaskLine(
		kernel.NewUUID(), aggregate.ID(), line.ID(), record.ID(), line.ProductID(),
		"A-01-01", "LPN-1", "BATCH-1", quantityToPick)
	require.NoError(t, err)
	task, err := picking.NewPickTask(
		kernel.NewUUID(), aggregate.TenantID(), aggregate.WarehouseID(),
		picking.TaskTypeSingle, []*picking.TaskLine{taskLine}, now)
	require.NoError(t, err)
	require.NoError(t, task.Assign("picker-1"))

	return pickFixture{
		aggregate:  aggregate,
		task:       task,
		taskLine:   taskLine,
		allocation: record,
		inventory:  inventoryID,
	}
}

func TestPickItemCommandHandler_Handle_FullPickDepletesAndFinalizes(t *testing.T) {
	ctx := t.Context()
	fx := newPickFixture(t, 5)
	cmd, err := commands.NewPickItemCommand(fx.task.ID(), fx.taskLine.ID(), 5)
	require.NoError(t, err)

	orderRepo := new(MockPickOrderRepository)
	inventoryRepo := new(MockPickInventoryRepository)
	allocationRepo := new(MockPickAllocationRepository)
	taskRepo := new(MockPickTaskRepository)
	uow := new(MockPickUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("AllocationRepository").Return(allocationRepo)
	uow.On("PickTaskRepository").Return(taskRepo)

	taskRepo.On("Get", ctx, fx.task.ID()).Return(fx.task, nil).Once()
	allocationRepo.On("Get", ctx, fx.allocation.ID()).Return(fx.allocation, nil).Once()
	inventoryRepo.On("CommitDepletion", ctx, fx.inventory, 5).Return(nil).Once()
	allocationRepo.On("Update", ctx, fx.allocation).Return(nil).Once()
	orderRepo.On("Get", ctx, fx.aggregate.ID()).Return(fx.aggregate, nil).Once()
	orderRepo.On("Update", ctx, fx.aggregate).Return(nil).Once()
	taskRepo.On("Update", ctx, fx.task).Return(nil).Once()

	factory := new(MockPickUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPickItemCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, picking.InProgress, fx.task.Status())
	assert.Equal(t, picking.LinePicked, fx.taskLine.Status())
	assert.Equal(t, allocation.Picked, fx.allocation.Status())
	assert.Equal(t, 5, fx.aggregate.UnitsPicked())
	orderRepo.AssertExpectations(t)
	inventoryRepo.AssertExpectations(t)
	allocationRepo.AssertExpectations(t)
	taskRepo.AssertExpectations(t)
}

func TestPickItemCommandHandler_Handle_PartialPickKeepsReservationLive(t *testing.T) {
	ctx := t.Context()
	fx := newPickFixture(t, 5)
	cmd, err := commands.NewPickItemCommand(fx.task.ID(), fx.taskLine.ID(), 2)
	require.NoError(t, err)

	orderRepo := new(MockPickOrderRepository)
	inventoryRepo := new(MockPickInventoryRepository)
	allocationRepo := new(MockPickAllocationRepository)
	taskRepo := new(MockPickTaskRepository)
	uow := new(MockPickUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("AllocationRepository").Return(allocationRepo)
	uow.On("PickTaskRepository").Return(taskRepo)

	taskRepo.On("Get", ctx, fx.task.ID()).Return(fx.task, nil).Once()
	allocationRepo.On("Get", ctx, fx.allocation.ID()).Return(fx.allocation, nil).Once()
	inventoryRepo.On("CommitDepletion", ctx, fx.inventory, 2).Return(nil).Once()
	orderRepo.On("Get", ctx, fx.aggregate.ID()).Return(fx.aggregate, nil).Once()
	orderRepo.On("Update", ctx, fx.aggregate).Return(nil).Once()
	taskRepo.On("Update", ctx, fx.task).Return(nil).Once()

	factory := new(MockPickUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPickItemCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, picking.LinePending, fx.taskLine.Status())
	assert.Equal(t, allocation.Allocated, fx.allocation.Status())
	assert.Equal(t, 2, fx.aggregate.UnitsPicked())
	allocationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPickItemCommandHandler_Handle_OverPickIsRejected(t *testing.T) {
	ctx := t.Context()
	fx := newPickFixture(t, 5)
	cmd, err := commands.NewPickItemCommand(fx.task.ID(), fx.taskLine.ID(), 6)
	require.NoError(t, err)

	taskRepo := new(MockPickTaskRepository)
	uow := new(MockPickUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("PickTaskRepository").Return(taskRepo)
	taskRepo.On("Get", ctx, fx.task.ID()).Return(fx.task, nil).Once()

	factory := new(MockPickUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPickItemCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewPickItemCommand_NonPositiveQuantity(t *testing.T) {
	_, err := commands.NewPickItemCommand(kernel.NewUUID(), kernel.NewUUID(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
