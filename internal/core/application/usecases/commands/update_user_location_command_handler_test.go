package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 {
	return &f
}

func TestNewUpdateUserLocationCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewUpdateUserLocationCommand(kernel.NewUUID(), ptr(12.97), ptr(77.59))

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.InDelta(t, 12.97, cmd.Location().Latitude(), 0)
		assert.InDelta(t, 77.59, cmd.Location().Longitude(), 0)
	})

	t.Run("zero coordinates are accepted", func(t *testing.T) {
		_, err := commands.NewUpdateUserLocationCommand(kernel.NewUUID(), ptr(0), ptr(0))

		require.NoError(t, err)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		_, err := commands.NewUpdateUserLocationCommand(kernel.NewUUID(), nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := commands.NewUpdateUserLocationCommand(kernel.NewUUID(), ptr(91), ptr(0))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.UpdateUserLocationCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateUserLocationCommandIsNotConstructed)
	})
}

func TestUpdateUserLocationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	partner := newPartner(t, mustLocation(t, 0, 0))
	users := new(MockUserRepository)
	uow := newUoW(new(MockOrderRepository), users)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		users.On("Get", ctx, partner.ID()).Return(partner, nil).Once(),
		users.On("Update", ctx, partner).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateUserLocationCommandHandler(factory)
	cmd, err := commands.NewUpdateUserLocationCommand(partner.ID(), ptr(12.97), ptr(77.59))
	require.NoError(t, err)

	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.HasLocation())
	assert.InDelta(t, 12.97, got.Location().Latitude(), 0)
	assert.True(t, got.IsAvailablePartner())
	uow.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestUpdateUserLocationCommandHandler_UserNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	users := new(MockUserRepository)
	uow := newUoW(new(MockOrderRepository), users)

	uow.On("Begin", ctx).Return(nil).Once()
	users.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("user", id)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateUserLocationCommandHandler(factory)
	cmd, _ := commands.NewUpdateUserLocationCommand(id, ptr(1), ptr(1))

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

var _ commands.UserUoW = (*MockUoW)(nil)
