package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/commands"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"
	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPickLineRepository struct{ mock.Mock }

func (m *MockPickLineRepository) IncrementPicked(ctx context.Context, orderID int64, itemCode kernel.ItemCode, delta float64) (float64, float64, error) {
	args := m.Called(ctx, orderID, itemCode, delta)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}
func (m *MockPickLineRepository) GetQuantities(ctx context.Context, orderID int64, itemCode kernel.ItemCode) (float64, float64, error) {
	args := m.Called(ctx, orderID, itemCode)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}
func (m *MockPickLineRepository) ListByOrder(_ context.Context, _ int64) ([]*order.PickLine, error) {
	return nil, errors.New("not implemented in mock")
}

type MockScanUoW struct{ mock.Mock }

func (m *MockScanUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockScanUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockScanUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockScanUoW) PickLineRepository() ports.PickLineRepository {
	args := m.Called()
	return args.Get(0).(ports.PickLineRepository)
}

type MockScanUoWFactory struct{ mock.Mock }

func (m *MockScanUoWFactory) Create() commands.ScanUoW {
	args := m.Called()
	return args.Get(0).(commands.ScanUoW)
}

type MockActivityLogger struct{ mock.Mock }

func (m *MockActivityLogger) Record(ctx context.Context, entry ports.ActivityEntry) {
	m.Called(ctx, entry)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRecordScanCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRecordScanCommand(1001, "SKU-A", 1, nil, 0, "operator1")

	repo := new(MockPickLineRepository)
	uow := new(MockScanUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickLineRepository").Return(repo).Once(),
		repo.On("IncrementPicked", mock.Anything, int64(1001), cmd.ItemCode(), 1.0).
			Return(5.0, 10.0, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScanUoWFactory)
	factory.On("Create").Return(uow).Once()

	activity := new(MockActivityLogger)
	activity.On("Record", mock.Anything, mock.MatchedBy(func(e ports.ActivityEntry) bool {
		return e.Action == "scan" && e.OrderID == 1001 && e.ItemCode == "SKU-A"
	})).Once()

	h := commands.NewRecordScanCommandHandler(factory, activity, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.ScanOK, result.Outcome)
	assert.True(t, result.Success())
	assert.Equal(t, 5.0, result.QuantityPicked)
	assert.Equal(t, 10.0, result.Limit)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	activity.AssertExpectations(t)
}

func TestRecordScanCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RecordScanCommand{} // not constructed properly
	factory := new(MockScanUoWFactory)
	h := commands.NewRecordScanCommandHandler(factory, nil, discardLogger())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRecordScanCommandIsNotConstructed)
}

func TestRecordScanCommandHandler_Handle_ItemNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRecordScanCommand(1001, "SKU-X", 1, nil, 0, "operator1")

	repo := new(MockPickLineRepository)
	uow := new(MockScanUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickLineRepository").Return(repo).Once(),
		repo.On("IncrementPicked", mock.Anything, int64(1001), cmd.ItemCode(), 1.0).
			Return(0.0, 0.0, errs.NewObjectNotFoundError("itemCode", "SKU-X")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScanUoWFactory)
	factory.On("Create").Return(uow).Once()

	activity := new(MockActivityLogger)
	activity.On("Record", mock.Anything, mock.MatchedBy(func(e ports.ActivityEntry) bool {
		return e.Action == "invalid_scan"
	})).Once()

	h := commands.NewRecordScanCommandHandler(factory, activity, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.ScanItemNotFound, result.Outcome)
	assert.False(t, result.Success())
	uow.AssertNotCalled(t, "Commit", ctx)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	activity.AssertExpectations(t)
}

func TestRecordScanCommandHandler_Handle_OverLimitCommitsAnyway(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRecordScanCommand(1001, "SKU-B", 1, nil, 0, "operator1")

	repo := new(MockPickLineRepository)
	uow := new(MockScanUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickLineRepository").Return(repo).Once(),
		repo.On("IncrementPicked", mock.Anything, int64(1001), cmd.ItemCode(), 1.0).
			Return(6.0, 5.0, nil).Once(),
		// Over the limit, yet the increment is committed: physical
		// scans are never reverted.
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScanUoWFactory)
	factory.On("Create").Return(uow).Once()

	activity := new(MockActivityLogger)
	activity.On("Record", mock.Anything, mock.MatchedBy(func(e ports.ActivityEntry) bool {
		return e.Action == "over_scan"
	})).Once()

	h := commands.NewRecordScanCommandHandler(factory, activity, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.ScanOverLimit, result.Outcome)
	assert.Equal(t, 6.0, result.QuantityPicked)
	assert.Equal(t, 5.0, result.Limit)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	activity.AssertExpectations(t)
}

func TestRecordScanCommandHandler_Handle_OrderedQtyOverride(t *testing.T) {
	ctx := t.Context()
	qty := 8.0
	cmd, _ := commands.NewRecordScanCommand(1001, "SKU-B", 1, &qty, 0.5, "operator1")

	repo := new(MockPickLineRepository)
	uow := new(MockScanUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickLineRepository").Return(repo).Once(),
		repo.On("IncrementPicked", mock.Anything, int64(1001), cmd.ItemCode(), 1.0).
			Return(8.4, 5.0, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScanUoWFactory)
	factory.On("Create").Return(uow).Once()

	activity := new(MockActivityLogger)
	activity.On("Record", mock.Anything, mock.Anything).Once()

	h := commands.NewRecordScanCommandHandler(factory, activity, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	// The override replaces the stored ordered quantity: 8 + 0.5
	// tolerance makes 8.4 an accepted scan.
	assert.Equal(t, commands.ScanOK, result.Outcome)
	assert.Equal(t, 8.5, result.Limit)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordScanCommandHandler_Handle_StorageError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRecordScanCommand(1001, "SKU-A", 1, nil, 0, "operator1")

	repo := new(MockPickLineRepository)
	uow := new(MockScanUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickLineRepository").Return(repo).Once(),
		repo.On("IncrementPicked", mock.Anything, int64(1001), cmd.ItemCode(), 1.0).
			Return(0.0, 0.0, errors.New("connection reset")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScanUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordScanCommandHandler(factory, nil, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.ScanStorageError, result.Outcome)
	uow.AssertNotCalled(t, "Commit", ctx)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordScanCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRecordScanCommand(1001, "SKU-A", 1, nil, 0, "operator1")

	uow := new(MockScanUoW)
	factory := new(MockScanUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewRecordScanCommandHandler(factory, nil, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.ScanStorageError, result.Outcome)
}
