package queries_test

import (
	"testing"

	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/queries"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetItemQuantitiesQuery_ValidInput(t *testing.T) {
	query, err := queries.NewGetItemQuantitiesQuery(1001, "sku-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), query.OrderID())
	assert.Equal(t, "SKU-A", query.ItemCode().String())
	assert.NoError(t, query.Validate())
}

func TestNewGetItemQuantitiesQuery_InvalidInput(t *testing.T) {
	_, err := queries.NewGetItemQuantitiesQuery(0, "SKU-A")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewGetItemQuantitiesQuery(1001, "   ")
	require.Error(t, err)
}

func TestGetItemQuantitiesQuery_NotConstructed(t *testing.T) {
	var query queries.GetItemQuantitiesQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetItemQuantitiesQueryIsNotConstructed)
}

func TestNewGetPendingOrdersQuery_ValidInput(t *testing.T) {
	query := queries.NewGetPendingOrdersQuery()
	assert.NoError(t, query.Validate())
}

func TestGetPendingOrdersQuery_NotConstructed(t *testing.T) {
	var query queries.GetPendingOrdersQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingOrdersQueryIsNotConstructed)
}

func TestNewCheckCompletionLockQuery_ValidInput(t *testing.T) {
	query, err := queries.NewCheckCompletionLockQuery(1001)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), query.OrderID())
	assert.NoError(t, query.Validate())
}

func TestNewCheckCompletionLockQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewCheckCompletionLockQuery(-1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCheckCompletionLockQuery_NotConstructed(t *testing.T) {
	var query queries.CheckCompletionLockQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrCheckCompletionLockQueryIsNotConstructed)
}
