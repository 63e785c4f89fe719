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
	"warehouse/internal/core/domain/model/product"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAllocOrderRepository struct{ mock.Mock }

func (m *MockAllocOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockAllocOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockAllocOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockAllocOrderRepository) GetAllInStatus(_ context.Context, _ order.Status, _ int) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAllocOrderRepository) AddEvent(ctx context.Context, event *order.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockAllocOrderRepository) GetEvents(_ context.Context, _ kernel.UUID) ([]*order.Event, error) {
	return nil, errors.New("not implemented in mock")
}

type MockAllocInventoryRepository struct{ mock.Mock }

func (m *MockAllocInventoryRepository) Add(_ context.Context, _ *inventory.Inventory) error {
	return errors.New("not implemented in mock")
}
func (m *MockAllocInventoryRepository) Get(_ context.Context, _ kernel.UUID) (*inventory.Inventory, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAllocInventoryRepository) GetCandidatesForProduct(
	ctx context.Context, tenantID, warehouseID, productID kernel.UUID,
) ([]*inventory.Inventory, error) {
	args := m.Called(ctx, tenantID, warehouseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Inventory), args.Error(1)
}
func (m *MockAllocInventoryRepository) Reserve(ctx context.Context, id kernel.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}
func (m *MockAllocInventoryRepository) Release(_ context.Context, _ kernel.UUID, _ int) error {
	return errors.New("not implemented in mock")
}
func (m *MockAllocInventoryRepository) CommitDepletion(_ context.Context, _ kernel.UUID, _ int) error {
	return errors.New("not implemented in mock")
}

type MockAllocAllocationRepository struct{ mock.Mock }

func (m *MockAllocAllocationRepository) Add(ctx context.Context, a *allocation.Allocation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAllocAllocationRepository) Update(_ context.Context, _ *allocation.Allocation) error {
	return errors.New("not implemented in mock")
}
func (m *MockAllocAllocationRepository) Get(_ context.Context, _ kernel.UUID) (*allocation.Allocation, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAllocAllocationRepository) GetLiveByOrder(_ context.Context, _ kernel.UUID) ([]*allocation.Allocation, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAllocAllocationRepository) GetPickedByOrder(_ context.Context, _ kernel.UUID) ([]*allocation.Allocation, error) {
	return nil, errors.New("not implemented in mock")
}

type MockAllocProductRepository struct{ mock.Mock }

func (m *MockAllocProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}
func (m *MockAllocProductRepository) GetBatch(_ context.Context, _ []kernel.UUID) (map[kernel.UUID]*product.Product, error) {
	return nil, errors.New("not implemented in mock")
}

type MockAllocationUoW struct{ mock.Mock }

func (m *MockAllocationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAllocationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAllocationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAllocationUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockAllocationUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}
func (m *MockAllocationUoW) AllocationRepository() ports.AllocationRepository {
	args := m.Called()
	return args.Get(0).(ports.AllocationRepository)
}
func (m *MockAllocationUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockAllocationUoWFactory struct{ mock.Mock }

func (m *MockAllocationUoWFactory) Create() commands.AllocationUoW {
	args := m.Called()
	return args.Get(0).(commands.AllocationUoW)
}

func newAllocatableOrder(t *testing.T, quantity int) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), quantity, nil)
	require.NoError(t, err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"SO-2001", order.PolicyFIFO, 1, []*order.Line{line})
	require.NoError(t, err)
	return aggregate
}

func newLedgerRow(t *testing.T, productID kernel.UUID, quantity int, receivedAt time.Time) *inventory.Inventory {
	t.Helper()
	row, err := inventory.NewInventory(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), productID,
		"A-01-01", "LPN-1", "BATCH-1", nil, receivedAt, quantity)
	require.NoError(t, err)
	return row
}

func TestAllocateOrderCommandHandler_Handle_FullAllocation(t *testing.T) {
	ctx := t.Context()
	aggregate := newAllocatableOrder(t, 10)
	productID := aggregate.Lines()[0].ProductID()
	cmd, err := commands.NewAllocateOrderCommand(aggregate.ID())
	require.NoError(t, err)

	older := newLedgerRow(t, productID, 6, time.Now().Add(-48*time.Hour))
	newer := newLedgerRow(t, productID, 10, time.Now().Add(-24*time.Hour))

	orderRepo := new(MockAllocOrderRepository)
	inventoryRepo := new(MockAllocInventoryRepository)
	allocationRepo := new(MockAllocAllocationRepository)
	productRepo := new(MockAllocProductRepository)
	uow := new(MockAllocationUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("AllocationRepository").Return(allocationRepo)
	uow.On("ProductRepository").Return(productRepo)

	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	productRepo.On("Get", ctx, productID).
		Return(nil, errs.NewObjectNotFoundError("product", productID)).Once()
	inventoryRepo.On("GetCandidatesForProduct", ctx, aggregate.TenantID(), aggregate.WarehouseID(), productID).
		Return([]*inventory.Inventory{newer, older}, nil).Once()

	// FIFO drains the older receipt first.
	inventoryRepo.On("Reserve", ctx, older.ID(), 6).Return(nil).Once()
	inventoryRepo.On("Reserve", ctx, newer.ID(), 4).Return(nil).Once()
	allocationRepo.On("Add", ctx, mock.AnythingOfType("*allocation.Allocation")).Return(nil).Twice()

	orderRepo.On("Update", ctx, aggregate).Return(nil).Once()
	orderRepo.On("AddEvent", ctx, mock.AnythingOfType("*order.Event")).Return(nil).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAllocateOrderCommandHandler(factory, services.NewAllocationPlanner(), nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Allocated, aggregate.Status())
	assert.Equal(t, 10, aggregate.UnitsAllocated())
	assert.Equal(t, 0, aggregate.UnitsBackordered())
	orderRepo.AssertExpectations(t)
	inventoryRepo.AssertExpectations(t)
	allocationRepo.AssertExpectations(t)
}

func TestAllocateOrderCommandHandler_Handle_ShortStockBackorders(t *testing.T) {
	ctx := t.Context()
	aggregate := newAllocatableOrder(t, 10)
	productID := aggregate.Lines()[0].ProductID()
	cmd, err := commands.NewAllocateOrderCommand(aggregate.ID())
	require.NoError(t, err)

	row := newLedgerRow(t, productID, 4, time.Now().Add(-24*time.Hour))

	orderRepo := new(MockAllocOrderRepository)
	inventoryRepo := new(MockAllocInventoryRepository)
	allocationRepo := new(MockAllocAllocationRepository)
	productRepo := new(MockAllocProductRepository)
	uow := new(MockAllocationUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("AllocationRepository").Return(allocationRepo)
	uow.On("ProductRepository").Return(productRepo)

	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	productRepo.On("Get", ctx, productID).
		Return(nil, errs.NewObjectNotFoundError("product", productID)).Once()
	inventoryRepo.On("GetCandidatesForProduct", ctx, aggregate.TenantID(), aggregate.WarehouseID(), productID).
		Return([]*inventory.Inventory{row}, nil).Once()
	inventoryRepo.On("Reserve", ctx, row.ID(), 4).Return(nil).Once()
	allocationRepo.On("Add", ctx, mock.AnythingOfType("*allocation.Allocation")).Return(nil).Once()
	orderRepo.On("Update", ctx, aggregate).Return(nil).Once()
	orderRepo.On("AddEvent", ctx, mock.AnythingOfType("*order.Event")).Return(nil).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAllocateOrderCommandHandler(factory, services.NewAllocationPlanner(), nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.PartiallyAllocated, aggregate.Status())
	assert.Equal(t, 4, aggregate.UnitsAllocated())
	assert.Equal(t, 6, aggregate.UnitsBackordered())
}

func TestAllocateOrderCommandHandler_Handle_LostReservationRaceIsSkipped(t *testing.T) {
	ctx := t.Context()
	aggregate := newAllocatableOrder(t, 5)
	productID := aggregate.Lines()[0].ProductID()
	cmd, err := commands.NewAllocateOrderCommand(aggregate.ID())
	require.NoError(t, err)

	row := newLedgerRow(t, productID, 5, time.Now().Add(-24*time.Hour))

	orderRepo := new(MockAllocOrderRepository)
	inventoryRepo := new(MockAllocInventoryRepository)
	allocationRepo := new(MockAllocAllocationRepository)
	productRepo := new(MockAllocProductRepository)
	uow := new(MockAllocationUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("AllocationRepository").Return(allocationRepo)
	uow.On("ProductRepository").Return(productRepo)

	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	productRepo.On("Get", ctx, productID).
		Return(nil, errs.NewObjectNotFoundError("product", productID)).Once()
	inventoryRepo.On("GetCandidatesForProduct", ctx, aggregate.TenantID(), aggregate.WarehouseID(), productID).
		Return([]*inventory.Inventory{row}, nil).Once()

	// A concurrent transaction drained the row between planning and reserve.
	inventoryRepo.On("Reserve", ctx, row.ID(), 5).
		Return(errs.NewInsufficientQuantityError("inventory", 5, 0)).Once()

	orderRepo.On("Update", ctx, aggregate).Return(nil).Once()
	orderRepo.On("AddEvent", ctx, mock.AnythingOfType("*order.Event")).Return(nil).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAllocateOrderCommandHandler(factory, services.NewAllocationPlanner(), nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.AllocationFailed, aggregate.Status())
	assert.Equal(t, 0, aggregate.UnitsAllocated())
	assert.Equal(t, 5, aggregate.UnitsBackordered())
	allocationRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestAllocateOrderCommandHandler_Handle_RejectsWrongStatus(t *testing.T) {
	ctx := t.Context()
	aggregate := newAllocatableOrder(t, 5)
	require.NoError(t, aggregate.Cancel("customer request", time.Now().UTC()))
	cmd, err := commands.NewAllocateOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockAllocOrderRepository)
	uow := new(MockAllocationUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAllocateOrderCommandHandler(factory, services.NewAllocationPlanner(), nil)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}
