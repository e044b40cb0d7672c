package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/commands"
	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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
func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

func TestMarkPackageLoadedCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewMarkPackageLoadedCommand(77, 3, "driver1")
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("MarkPackageLoaded", mock.Anything, int64(77), 3, "driver1", mock.Anything).
			Return(nil).Once(),
		repo.On("RaiseTotals", ctx, int64(77), 3).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkPackageLoadedCommandHandler(factory, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestMarkPackageLoadedCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.MarkPackageLoadedCommand{} // not constructed properly
	factory := new(MockShipmentUoWFactory)
	h := commands.NewMarkPackageLoadedCommandHandler(factory, discardLogger())
	require.Error(t, h.Handle(ctx, cmd))
}

func TestMarkPackageLoadedCommandHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewMarkPackageLoadedCommand(77, 3, "driver1")
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("MarkPackageLoaded", mock.Anything, int64(77), 3, "driver1", mock.Anything).
			Return(errors.New("package not found")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkPackageLoadedCommandHandler(factory, discardLogger())
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "Commit", ctx)
}
