package queries_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckAllocationAvailabilityQuery_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewCheckAllocationAvailabilityQuery(orderID)

	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.Equal(t, orderID, query.OrderID())
}

func TestNewCheckAllocationAvailabilityQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewCheckAllocationAvailabilityQuery(kernel.UUID{})

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCheckAllocationAvailabilityQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.CheckAllocationAvailabilityQuery

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrCheckAllocationAvailabilityQueryIsNotConstructed)
}

func TestLineAvailability_CanAllocate(t *testing.T) {
	covered := queries.LineAvailability{QuantityOrdered: 5, QuantityAvailable: 5}
	short := queries.LineAvailability{QuantityOrdered: 5, QuantityAvailable: 4}

	assert.True(t, covered.CanAllocate())
	assert.False(t, short.CanAllocate())
}

func TestCheckAllocationAvailabilityQueryResponse_CanFullyAllocate(t *testing.T) {
	full := queries.CheckAllocationAvailabilityQueryResponse{
		Lines: []queries.LineAvailability{
			{QuantityOrdered: 5, QuantityAvailable: 10},
			{QuantityOrdered: 3, QuantityAvailable: 3},
		},
	}
	partial := queries.CheckAllocationAvailabilityQueryResponse{
		Lines: []queries.LineAvailability{
			{QuantityOrdered: 5, QuantityAvailable: 10},
			{QuantityOrdered: 3, QuantityAvailable: 0},
		},
	}
	empty := queries.CheckAllocationAvailabilityQueryResponse{}

	assert.True(t, full.CanFullyAllocate())
	assert.False(t, partial.CanFullyAllocate())
	assert.False(t, empty.CanFullyAllocate())
}

func TestGetActiveOrdersQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.GetActiveOrdersQuery

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveOrdersQueryIsNotConstructed)
}

func TestNewGetActiveOrdersQuery_Validates(t *testing.T) {
	query := queries.NewGetActiveOrdersQuery()

	assert.NoError(t, query.Validate())
}
