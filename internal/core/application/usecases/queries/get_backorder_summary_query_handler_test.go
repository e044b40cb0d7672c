package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/queries"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackorderRepository struct{ mock.Mock }

func (m *MockBackorderRepository) Upsert(ctx context.Context, backorder *order.Backorder) error {
	args := m.Called(ctx, backorder)
	return args.Error(0)
}

func (m *MockBackorderRepository) PendingCountsByWarehouse(ctx context.Context) (map[int]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int64), args.Error(1)
}

func TestGetBackorderSummaryQueryHandler_Handle_SortsByWarehouse(t *testing.T) {
	ctx := t.Context()
	backorders := new(MockBackorderRepository)
	backorders.On("PendingCountsByWarehouse", ctx).Return(map[int]int64{
		9: 4,
		2: 1,
		5: 7,
	}, nil)

	h := queries.NewGetBackorderSummaryQueryHandler(backorders)
	resp, err := h.Handle(ctx, queries.NewGetBackorderSummaryQuery())
	require.NoError(t, err)

	assert.Equal(t, []queries.WarehouseBackorderCount{
		{WarehouseID: 2, Pending: 1},
		{WarehouseID: 5, Pending: 7},
		{WarehouseID: 9, Pending: 4},
	}, resp.Warehouses)
	assert.Equal(t, int64(12), resp.Total)
}

func TestGetBackorderSummaryQueryHandler_Handle_EmptyLedger(t *testing.T) {
	ctx := t.Context()
	backorders := new(MockBackorderRepository)
	backorders.On("PendingCountsByWarehouse", ctx).Return(map[int]int64{}, nil)

	h := queries.NewGetBackorderSummaryQueryHandler(backorders)
	resp, err := h.Handle(ctx, queries.NewGetBackorderSummaryQuery())
	require.NoError(t, err)

	assert.Empty(t, resp.Warehouses)
	assert.Zero(t, resp.Total)
}

func TestGetBackorderSummaryQueryHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()
	backorders := new(MockBackorderRepository)
	backorders.On("PendingCountsByWarehouse", ctx).Return(nil, errors.New("connection reset"))

	h := queries.NewGetBackorderSummaryQueryHandler(backorders)
	_, err := h.Handle(ctx, queries.NewGetBackorderSummaryQuery())
	require.Error(t, err)
}

func TestGetBackorderSummaryQueryHandler_Handle_ValidationError(t *testing.T) {
	backorders := new(MockBackorderRepository)

	h := queries.NewGetBackorderSummaryQueryHandler(backorders)
	_, err := h.Handle(t.Context(), queries.GetBackorderSummaryQuery{})
	require.ErrorIs(t, err, queries.ErrGetBackorderSummaryQueryIsNotConstructed)

	backorders.AssertNotCalled(t, "PendingCountsByWarehouse", mock.Anything)
}
