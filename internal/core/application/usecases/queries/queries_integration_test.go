package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type OrderQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository
	users     *userrepo.GormUserRepository

	customer user.Actor
	shop     user.Actor
	partner  user.Actor
}

func (suite *OrderQueriesTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.orders = orderrepo.NewGormOrderRepository(db, nopTracker{})
	suite.users = userrepo.NewGormUserRepository(db, nopTracker{})

	suite.customer = suite.actor(user.Customer)
	suite.shop = suite.actor(user.Shopkeeper)
	suite.partner = suite.actor(user.DeliveryPartner)
}

func (suite *OrderQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueriesTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))

	suite.seedUser(suite.customer, "Asha Rao", "7 Lake View", nil)
	suite.seedUser(suite.shop, "Green Basket", "12 Market Road", &[2]float64{77.5946, 12.9716})
	suite.seedUser(suite.partner, "Vikram S", "3 Hill Street", &[2]float64{77.6012, 12.9750})
}

func (suite *OrderQueriesTestSuite) seedUser(a user.Actor, name, address string, lonLat *[2]float64) {
	u, err := user.NewUser(a.ID(), name, address, a.Role())
	suite.Require().NoError(err)
	if lonLat != nil {
		loc, locErr := kernel.NewLocation(lonLat[0], lonLat[1])
		suite.Require().NoError(locErr)
		suite.Require().NoError(u.UpdateLocation(loc))
	}
	suite.Require().NoError(suite.users.Add(context.Background(), u))
}

func (suite *OrderQueriesTestSuite) actor(role user.Role) user.Actor {
	a, err := user.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return a
}

func (suite *OrderQueriesTestSuite) seedOrder(customerID kernel.UUID, createdAt time.Time) *order.Order {
	apples, err := order.NewLineItem(kernel.NewUUID(), "Apples 1kg", 1, decimal.RequireFromString("3.10"), "apples.png")
	suite.Require().NoError(err)
	eggs, err := order.NewLineItem(kernel.NewUUID(), "Eggs x12", 2, decimal.RequireFromString("2.50"), "")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), customerID, suite.shop.ID(),
		[]order.LineItem{apples, eggs}, decimal.RequireFromString("8.10"), "7 Lake View", createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *OrderQueriesTestSuite) assign(o *order.Order) {
	suite.Require().NoError(o.RequestTransition(suite.shop, order.Accepted))
	suite.Require().NoError(o.AssignPartner(suite.partner.ID()))
	suite.Require().NoError(suite.orders.Update(context.Background(), o, order.Pending))
}

func (suite *OrderQueriesTestSuite) TestGetOrder_ParticipantsSeeIt() {
	o := suite.seedOrder(suite.customer.ID(), time.Now())
	suite.assign(o)
	handler := queries.NewGetOrderQueryHandler(suite.db)

	for _, requester := range []kernel.UUID{suite.customer.ID(), suite.shop.ID(), suite.partner.ID()} {
		query, err := queries.NewGetOrderQuery(o.ID(), requester)
		suite.Require().NoError(err)

		resp, err := handler.Handle(context.Background(), query)

		suite.Require().NoError(err)
		suite.True(resp.ID.IsEqual(o.ID()))
		suite.Equal("Assigned", resp.Status)
		suite.Require().NotNil(resp.DeliveryPartnerID)
		suite.True(resp.DeliveryPartnerID.IsEqual(suite.partner.ID()))
		suite.True(decimal.RequireFromString("8.10").Equal(resp.TotalAmount))
		suite.Require().Len(resp.Items, 2)
		suite.Equal("Apples 1kg", resp.Items[0].Name)
		suite.Equal(2, resp.Items[1].Quantity)

		suite.Equal("Asha Rao", resp.CustomerName)
		suite.Require().NotNil(resp.Shop)
		suite.Equal("Green Basket", resp.Shop.Name)
		suite.Equal("12 Market Road", resp.Shop.Address)
		suite.Require().NotNil(resp.Shop.Location)
		suite.InDelta(77.5946, resp.Shop.Location.Longitude(), 1e-9)
		suite.InDelta(12.9716, resp.Shop.Location.Latitude(), 1e-9)
		suite.Require().NotNil(resp.DeliveryPartner)
		suite.Equal("Vikram S", resp.DeliveryPartner.Name)
		suite.Empty(resp.DeliveryPartner.Address)
		suite.Require().NotNil(resp.DeliveryPartner.Location)
		suite.InDelta(12.9750, resp.DeliveryPartner.Location.Latitude(), 1e-9)
	}
}

func (suite *OrderQueriesTestSuite) TestGetOrder_StrangerIsForbidden() {
	o := suite.seedOrder(suite.customer.ID(), time.Now())
	handler := queries.NewGetOrderQueryHandler(suite.db)

	query, err := queries.NewGetOrderQuery(o.ID(), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_UnassignedPartnerIsForbidden() {
	o := suite.seedOrder(suite.customer.ID(), time.Now())
	handler := queries.NewGetOrderQueryHandler(suite.db)

	query, _ := queries.NewGetOrderQuery(o.ID(), suite.partner.ID())

	_, err := handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_NotFound() {
	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, _ := queries.NewGetOrderQuery(kernel.NewUUID(), suite.customer.ID())

	_, err := handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesTestSuite) TestListOrders_NewestFirstPerScope() {
	now := time.Now().UTC().Truncate(time.Second)
	older := suite.seedOrder(suite.customer.ID(), now.Add(-time.Hour))
	newer := suite.seedOrder(suite.customer.ID(), now)
	other := suite.seedOrder(kernel.NewUUID(), now.Add(-30*time.Minute))
	suite.assign(older)

	handler := queries.NewListOrdersQueryHandler(suite.db)

	mine, _ := queries.NewListOrdersQuery(suite.customer, queries.CustomerScope)
	result, err := handler.Handle(context.Background(), mine)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(newer.ID()))
	suite.True(result[1].ID.IsEqual(older.ID()))
	suite.Len(result[0].Items, 2)

	shop, _ := queries.NewListOrdersQuery(suite.shop, queries.ShopScope)
	result, err = handler.Handle(context.Background(), shop)
	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.True(result[0].ID.IsEqual(newer.ID()))
	suite.True(result[1].ID.IsEqual(other.ID()))
	suite.True(result[2].ID.IsEqual(older.ID()))
	suite.Empty(result[1].CustomerName, "customer missing from the directory")
	suite.Nil(result[0].DeliveryPartner)
	for _, r := range result {
		suite.Require().NotNil(r.Shop)
		suite.Equal("Green Basket", r.Shop.Name)
	}

	delivery, _ := queries.NewListOrdersQuery(suite.partner, queries.PartnerScope)
	result, err = handler.Handle(context.Background(), delivery)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(older.ID()))
	suite.Require().NotNil(result[0].Shop)
	suite.Require().NotNil(result[0].Shop.Location)
	suite.InDelta(77.5946, result[0].Shop.Location.Longitude(), 1e-9)
	suite.Equal("Asha Rao", result[0].CustomerName)
	suite.Require().NotNil(result[0].DeliveryPartner)
	suite.Equal("Vikram S", result[0].DeliveryPartner.Name)
}

func (suite *OrderQueriesTestSuite) TestListOrders_EmptyIsEmptySlice() {
	handler := queries.NewListOrdersQueryHandler(suite.db)
	query, _ := queries.NewListOrdersQuery(suite.customer, queries.CustomerScope)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *OrderQueriesTestSuite) TestListOrders_CanceledContext() {
	suite.seedOrder(suite.customer.ID(), time.Now())
	handler := queries.NewListOrdersQueryHandler(suite.db)
	query, _ := queries.NewListOrdersQuery(suite.customer, queries.CustomerScope)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := handler.Handle(ctx, query)

	suite.Require().ErrorIs(err, errs.ErrDependency)
	suite.Nil(result)
}

func TestOrderQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}

