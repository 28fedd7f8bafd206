package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAccepted(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindAvailablePartnersWithin(
	ctx context.Context,
	origin kernel.Location,
	radiusMeters float64,
) ([]*user.User, error) {
	args := m.Called(ctx, origin, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

type MockPartnerFinder struct{ mock.Mock }

func (m *MockPartnerFinder) FindNearestAvailablePartner(ctx context.Context, origin kernel.Location) (*user.User, error) {
	args := m.Called(ctx, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

// finderFor returns a factory that ignores the repository and hands out finder.
func finderFor(finder ports.PartnerFinder) commands.PartnerFinderFactory {
	return func(ports.UserRepository) ports.PartnerFinder {
		return finder
	}
}

// newUoW wires a MockUoW to the given repositories. Repository accessors may
// be called any number of times.
func newUoW(orders *MockOrderRepository, users *MockUserRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders).Maybe()
	uow.On("UserRepository").Return(users).Maybe()
	return uow
}

func newFactory(uow *MockUoW) *MockUoWFactory {
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)
	return factory
}

func mustLocation(t *testing.T, lon, lat float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lon, lat)
	require.NoError(t, err)
	return loc
}

func mustActor(t *testing.T, id kernel.UUID, role user.Role) user.Actor {
	t.Helper()
	actor, err := user.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func newShop(t *testing.T, loc *kernel.Location) *user.User {
	t.Helper()
	shop, err := user.NewUser(kernel.NewUUID(), "Fresh Mart", "12 Market Road", user.Shopkeeper)
	require.NoError(t, err)
	if loc != nil {
		require.NoError(t, shop.UpdateLocation(*loc))
	}
	return shop
}

func newPartner(t *testing.T, loc kernel.Location) *user.User {
	t.Helper()
	partner, err := user.RestoreUser(kernel.NewUUID(), "Ravi", "", user.DeliveryPartner, loc, true)
	require.NoError(t, err)
	return partner
}

func newPendingOrder(t *testing.T, shopID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Milk", 2, decimal.RequireFromString("1.50"), "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), shopID,
		[]order.LineItem{item}, decimal.RequireFromString("3.00"), "7 Lake View", time.Now())
	require.NoError(t, err)
	return o
}

func newAcceptedOrder(t *testing.T, shopID kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingOrder(t, shopID)
	require.NoError(t, o.RequestTransition(mustActor(t, shopID, user.Shopkeeper), order.Accepted))
	o.ClearDomainEvents()
	return o
}
