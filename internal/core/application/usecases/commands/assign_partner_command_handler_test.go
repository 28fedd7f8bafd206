package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewAssignPartnerCommand(t *testing.T) {
	cmd, err := commands.NewAssignPartnerCommand(commands.DefaultAssignBatchSize)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, commands.DefaultAssignBatchSize, cmd.BatchSize())

	_, err = commands.NewAssignPartnerCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	var zero commands.AssignPartnerCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrAssignPartnerCommandIsNotConstructed)
}

func TestAssignPartnerCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	shopLoc := mustLocation(t, 77.5946, 12.9716)
	shop := newShop(t, &shopLoc)
	partner := newPartner(t, mustLocation(t, 77.5950, 12.9720))

	matched := newAcceptedOrder(t, shop.ID())
	unmatched := newAcceptedOrder(t, shop.ID())

	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	finder := new(MockPartnerFinder)
	uow := newUoW(orders, users)

	uow.On("Begin", mock.Anything).Return(nil).Times(3)
	uow.On("Rollback", mock.Anything).Return(nil).Times(3)
	orders.On("ListAccepted", mock.Anything, 10).Return([]*order.Order{matched, unmatched}, nil).Once()
	orders.On("Get", mock.Anything, matched.ID()).Return(matched, nil).Once()
	orders.On("Get", mock.Anything, unmatched.ID()).Return(unmatched, nil).Once()
	users.On("Get", mock.Anything, shop.ID()).Return(shop, nil).Twice()
	mock.InOrder(
		finder.On("FindNearestAvailablePartner", mock.Anything, shopLoc).Return(partner, nil).Once(),
		finder.On("FindNearestAvailablePartner", mock.Anything, shopLoc).Return(nil, services.ErrPartnerNotFound).Once(),
	)
	orders.On("Update", mock.Anything, matched, order.Accepted).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	handler := commands.NewAssignPartnerCommandHandler(newFactory(uow), finderFor(finder), discardLogger())
	cmd, _ := commands.NewAssignPartnerCommand(10)

	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, assigned)
	assert.Equal(t, order.Assigned, matched.Status())
	assert.Equal(t, order.Accepted, unmatched.Status())
	orders.AssertNotCalled(t, "Update", mock.Anything, unmatched, mock.Anything)
	uow.AssertExpectations(t)
	orders.AssertExpectations(t)
	finder.AssertExpectations(t)
}

func TestAssignPartnerCommandHandler_OneFailureDoesNotStopBatch(t *testing.T) {
	ctx := t.Context()
	shopLoc := mustLocation(t, 77.5946, 12.9716)
	shop := newShop(t, &shopLoc)
	partner := newPartner(t, shopLoc)

	raced := newAcceptedOrder(t, shop.ID())
	next := newAcceptedOrder(t, shop.ID())

	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	finder := new(MockPartnerFinder)
	uow := newUoW(orders, users)

	uow.On("Begin", mock.Anything).Return(nil).Times(3)
	uow.On("Rollback", mock.Anything).Return(nil).Times(3)
	orders.On("ListAccepted", mock.Anything, 5).Return([]*order.Order{raced, next}, nil).Once()
	orders.On("Get", mock.Anything, raced.ID()).Return(raced, nil).Once()
	orders.On("Get", mock.Anything, next.ID()).Return(next, nil).Once()
	users.On("Get", mock.Anything, shop.ID()).Return(shop, nil).Twice()
	finder.On("FindNearestAvailablePartner", mock.Anything, shopLoc).Return(partner, nil).Twice()
	orders.On("Update", mock.Anything, raced, order.Accepted).Return(errs.NewConflictError("order", raced.ID())).Once()
	orders.On("Update", mock.Anything, next, order.Accepted).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	handler := commands.NewAssignPartnerCommandHandler(newFactory(uow), finderFor(finder), discardLogger())
	cmd, _ := commands.NewAssignPartnerCommand(5)

	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, assigned)
	orders.AssertExpectations(t)
}

func TestAssignPartnerCommandHandler_SkipsOrdersThatMovedOn(t *testing.T) {
	shop := newShop(t, nil)
	listed := newAcceptedOrder(t, shop.ID())
	current := newPendingOrder(t, shop.ID())
	require.NoError(t, current.RequestTransition(mustActor(t, shop.ID(), user.Shopkeeper), order.Rejected))

	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	uow := newUoW(orders, users)

	uow.On("Begin", mock.Anything).Return(nil).Twice()
	uow.On("Rollback", mock.Anything).Return(nil).Twice()
	orders.On("ListAccepted", mock.Anything, 1).Return([]*order.Order{listed}, nil).Once()
	orders.On("Get", mock.Anything, listed.ID()).Return(current, nil).Once()

	handler := commands.NewAssignPartnerCommandHandler(newFactory(uow), finderFor(new(MockPartnerFinder)), discardLogger())
	cmd, _ := commands.NewAssignPartnerCommand(1)

	assigned, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Zero(t, assigned)
	users.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignPartnerCommandHandler_ListFails(t *testing.T) {
	orders := new(MockOrderRepository)
	uow := newUoW(orders, new(MockUserRepository))

	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	orders.On("ListAccepted", mock.Anything, 3).
		Return(nil, errs.NewDependencyError("postgres", errors.New("timeout"))).Once()

	handler := commands.NewAssignPartnerCommandHandler(newFactory(uow), finderFor(new(MockPartnerFinder)), discardLogger())
	cmd, _ := commands.NewAssignPartnerCommand(3)

	assigned, err := handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrDependency)
	assert.Zero(t, assigned)
}

func TestAssignPartnerCommandHandler_NilLoggerFallsBackToDefault(t *testing.T) {
	shopLoc := mustLocation(t, 77.5946, 12.9716)
	shop := newShop(t, &shopLoc)
	partner := newPartner(t, mustLocation(t, 77.5950, 12.9720))
	accepted := newAcceptedOrder(t, shop.ID())

	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	finder := new(MockPartnerFinder)
	uow := newUoW(orders, users)

	uow.On("Begin", mock.Anything).Return(nil).Twice()
	uow.On("Rollback", mock.Anything).Return(nil).Twice()
	orders.On("ListAccepted", mock.Anything, 1).Return([]*order.Order{accepted}, nil).Once()
	orders.On("Get", mock.Anything, accepted.ID()).Return(accepted, nil).Once()
	users.On("Get", mock.Anything, shop.ID()).Return(shop, nil).Once()
	finder.On("FindNearestAvailablePartner", mock.Anything, shopLoc).Return(partner, nil).Once()
	orders.On("Update", mock.Anything, accepted, order.Accepted).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	var handler commands.AssignPartnerCommandHandler
	require.NotPanics(t, func() {
		handler = commands.NewAssignPartnerCommandHandler(newFactory(uow), finderFor(finder), nil)
	})
	cmd, _ := commands.NewAssignPartnerCommand(1)

	var assigned int
	var err error
	require.NotPanics(t, func() {
		assigned, err = handler.Handle(t.Context(), cmd)
	})

	require.NoError(t, err)
	assert.Equal(t, 1, assigned)
	assert.Equal(t, order.Assigned, accepted.Status())
}
