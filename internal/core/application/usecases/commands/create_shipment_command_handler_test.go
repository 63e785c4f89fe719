package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/allocation"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/packing"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipOrderRepository struct{ mock.Mock }

func (m *MockShipOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockShipOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockShipOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockShipOrderRepository) GetAllInStatus(_ context.Context, _ order.Status, _ int) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockShipOrderRepository) AddEvent(ctx context.Context, event *order.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockShipOrderRepository) GetEvents(_ context.Context, _ kernel.UUID) ([]*order.Event, error) {
	return nil, errors.New("not implemented in mock")
}

type MockShipAllocationRepository struct{ mock.Mock }

func (m *MockShipAllocationRepository) Add(_ context.Context, _ *allocation.Allocation) error {
	return errors.New("not implemented in mock")
}
func (m *MockShipAllocationRepository) Update(_ context.Context, _ *allocation.Allocation) error {
	return errors.New("not implemented in mock")
}
func (m *MockShipAllocationRepository) Get(_ context.Context, _ kernel.UUID) (*allocation.Allocation, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockShipAllocationRepository) GetLiveByOrder(_ context.Context, _ kernel.UUID) ([]*allocation.Allocation, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockShipAllocationRepository) GetPickedByOrder(ctx context.Context, orderID kernel.UUID) ([]*allocation.Allocation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*allocation.Allocation), args.Error(1)
}

type MockShipPackTaskRepository struct{ mock.Mock }

func (m *MockShipPackTaskRepository) Add(_ context.Context, _ *packing.PackTask) error {
	return errors.New("not implemented in mock")
}
func (m *MockShipPackTaskRepository) Update(_ context.Context, _ *packing.PackTask) error {
	return errors.New("not implemented in mock")
}
func (m *MockShipPackTaskRepository) Get(_ context.Context, _ kernel.UUID) (*packing.PackTask, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockShipPackTaskRepository) GetActiveByOrder(_ context.Context, _ kernel.UUID) (*packing.PackTask, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockShipPackTaskRepository) GetCompletedByOrder(ctx context.Context, orderID kernel.UUID) (*packing.PackTask, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packing.PackTask), args.Error(1)
}

type MockShipShipmentRepository struct{ mock.Mock }

func (m *MockShipShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipShipmentRepository) Get(_ context.Context, _ kernel.UUID) (*shipment.Shipment, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockShipShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockShipmentUoW) AllocationRepository() ports.AllocationRepository {
	args := m.Called()
	return args.Get(0).(ports.AllocationRepository)
}
func (m *MockShipmentUoW) PackTaskRepository() ports.PackTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.PackTaskRepository)
}
func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

func newPackedOrder(t *testing.T) *order.Order {
	t.Helper()
	line, err := order.RestoreLine(
		kernel.NewUUID(), kernel.NewUUID(), 5, 5, 0, 5, 5, 0, order.LineAllocated, nil)
	require.NoError(t, err)
	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"SO-3001", order.PolicyFIFO, 1,
		order.Packed, nil,
		"", "", "",
		nil, nil, nil, "",
		[]*order.Line{line})
	require.NoError(t, err)
	return aggregate
}

func newPickedAllocation(
	t *testing.T,
	orderID, orderLineID kernel.UUID,
	quantity int,
	batchNumber string,
	expiryDate *time.Time,
	lpn string,
) *allocation.Allocation {
	t.Helper()
	record, err := allocation.RestoreAllocation(
		kernel.NewUUID(), orderID, orderLineID, kernel.NewUUID(),
		quantity, batchNumber, expiryDate, lpn, "A-01-01",
		allocation.Picked, time.Now().UTC())
	require.NoError(t, err)
	return record
}

func newCompletedPackTask(t *testing.T, aggregate *order.Order) *packing.PackTask {
	t.Helper()
	orderLine := aggregate.Lines()[0]
	taskLine, err := packing.RestoreTaskLine(
		kernel.NewUUID(), orderLine.ID(), orderLine.ProductID(), 5, 5, packing.LinePacked)
	require.NoError(t, err)
	carton, err := packing.RestoreCarton(
		kernel.NewUUID(), 1,
		decimal.NewFromInt(40), decimal.NewFromInt(30), decimal.NewFromInt(20),
		decimal.NewFromFloat(0.5), decimal.NewFromFloat(2.5),
		[]packing.CartonContent{{OrderLineID: orderLine.ID(), ProductID: orderLine.ProductID(), Quantity: 5}})
	require.NoError(t, err)
	now := time.Now().UTC()
	task, err := packing.RestorePackTask(
		kernel.NewUUID(), aggregate.TenantID(), aggregate.WarehouseID(), aggregate.ID(),
		packing.Completed, "packer-1",
		[]*packing.TaskLine{taskLine}, []*packing.Carton{carton},
		true, "TRK-123456", "https://labels.example.com/TRK-123456.pdf",
		now, &now, &now)
	require.NoError(t, err)
	return task
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := newPackedOrder(t)
	orderLine := aggregate.Lines()[0]
	task := newCompletedPackTask(t, aggregate)
	cmd, err := commands.NewCreateShipmentCommand(aggregate.ID(), "UPS", "GROUND")
	require.NoError(t, err)

	expiry := time.Now().AddDate(0, 6, 0)
	picked := []*allocation.Allocation{
		newPickedAllocation(t, aggregate.ID(), orderLine.ID(), 3, "BATCH-A", &expiry, "LPN-A1"),
		newPickedAllocation(t, aggregate.ID(), orderLine.ID(), 2, "BATCH-B", nil, "LPN-B7"),
	}

	orderRepo := new(MockShipOrderRepository)
	allocationRepo := new(MockShipAllocationRepository)
	packRepo := new(MockShipPackTaskRepository)
	shipmentRepo := new(MockShipShipmentRepository)
	uow := new(MockShipmentUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AllocationRepository").Return(allocationRepo)
	uow.On("PackTaskRepository").Return(packRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)

	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	packRepo.On("GetCompletedByOrder", ctx, aggregate.ID()).Return(task, nil).Once()
	allocationRepo.On("GetPickedByOrder", ctx, aggregate.ID()).Return(picked, nil).Once()

	var added *shipment.Shipment
	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).
		Run(func(args mock.Arguments) {
			added = args.Get(1).(*shipment.Shipment)
		}).
		Return(nil).Once()
	orderRepo.On("Update", ctx, aggregate).Return(nil).Once()
	orderRepo.On("AddEvent", ctx, mock.AnythingOfType("*order.Event")).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, nil)
	shipmentID, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, shipmentID.Validate())

	assert.Equal(t, order.Shipped, aggregate.Status())
	assert.Equal(t, "UPS", aggregate.CarrierCode())
	assert.Equal(t, "TRK-123456", aggregate.TrackingNumber())
	assert.Equal(t, 5, aggregate.UnitsShipped())

	// One shipment line per picked reservation, lineage snapshot intact.
	require.NotNil(t, added)
	require.Len(t, added.Lines(), 2)
	first, second := added.Lines()[0], added.Lines()[1]
	assert.True(t, first.OrderLineID.IsEqual(orderLine.ID()))
	assert.Equal(t, 3, first.Quantity)
	assert.Equal(t, "BATCH-A", first.BatchNumber)
	assert.Equal(t, "LPN-A1", first.LPN)
	require.NotNil(t, first.ExpiryDate)
	assert.True(t, first.ExpiryDate.Equal(expiry))
	assert.Equal(t, 2, second.Quantity)
	assert.Equal(t, "BATCH-B", second.BatchNumber)
	assert.Equal(t, "LPN-B7", second.LPN)
	assert.Nil(t, second.ExpiryDate)

	orderRepo.AssertExpectations(t)
	allocationRepo.AssertExpectations(t)
	packRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_RejectsUnpackedOrder(t *testing.T) {
	ctx := t.Context()
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 5, nil)
	require.NoError(t, err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"SO-3002", order.PolicyFIFO, 1, []*order.Line{line})
	require.NoError(t, err)
	task := newCompletedPackTask(t, aggregate)
	cmd, err := commands.NewCreateShipmentCommand(aggregate.ID(), "UPS", "GROUND")
	require.NoError(t, err)

	orderRepo := new(MockShipOrderRepository)
	packRepo := new(MockShipPackTaskRepository)
	uow := new(MockShipmentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PackTaskRepository").Return(packRepo)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	packRepo.On("GetCompletedByOrder", ctx, aggregate.ID()).Return(task, nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, nil)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCreateShipmentCommand_RequiresCarrier(t *testing.T) {
	_, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), "", "GROUND")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCarrierCodeIsRequired)
}
