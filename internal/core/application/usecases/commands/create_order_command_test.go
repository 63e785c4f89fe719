package commands_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	tenantID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	lines := []commands.CreateOrderLine{{ProductID: kernel.NewUUID(), Quantity: 3}}

	cmd, err := commands.NewCreateOrderCommand(id, tenantID, warehouseID, "SO-1001", order.PolicyFEFO, 5, lines)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, tenantID, cmd.TenantID())
	assert.Equal(t, warehouseID, cmd.WarehouseID())
	assert.Equal(t, "SO-1001", cmd.OrderNumber())
	assert.Equal(t, order.PolicyFEFO, cmd.Policy())
	assert.Equal(t, 5, cmd.Priority())
	assert.Len(t, cmd.Lines(), 1)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	lines := []commands.CreateOrderLine{{ProductID: kernel.NewUUID(), Quantity: 3}}
	_, err := commands.NewCreateOrderCommand(
		invalidID, kernel.NewUUID(), kernel.NewUUID(), "SO-1001", order.PolicyFIFO, 0, lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyOrderNumber(t *testing.T) {
	lines := []commands.CreateOrderLine{{ProductID: kernel.NewUUID(), Quantity: 3}}
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", order.PolicyFIFO, 0, lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOrderNumberIsRequired)
}

func TestNewCreateOrderCommand_UnknownPolicy(t *testing.T) {
	lines := []commands.CreateOrderLine{{ProductID: kernel.NewUUID(), Quantity: 3}}
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "SO-1001", order.Policy("RANDOM"), 0, lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateOrderCommand_NoLines(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "SO-1001", order.PolicyFIFO, 0, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOrderLinesAreRequired)
}

func TestNewCreateOrderCommand_NonPositiveLineQuantity(t *testing.T) {
	lines := []commands.CreateOrderLine{{ProductID: kernel.NewUUID(), Quantity: 0}}
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "SO-1001", order.PolicyFIFO, 0, lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
