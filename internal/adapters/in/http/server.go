// Package http exposes the order operations over REST with echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Use case ports consumed by the server. The concrete command and query
// handlers satisfy them.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}

	UpdateUserLocationHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateUserLocationCommand) (*user.User, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error)
	}
)

// Server routes HTTP requests to the application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    CreateOrderHandler
	changeStatusHandler   ChangeOrderStatusHandler
	updateLocationHandler UpdateUserLocationHandler

	// Query handlers
	getOrderHandler   GetOrderHandler
	listOrdersHandler ListOrdersHandler

	logger *slog.Logger
}

func NewServer(
	createOrderHandler CreateOrderHandler,
	changeStatusHandler ChangeOrderStatusHandler,
	updateLocationHandler UpdateUserLocationHandler,
	getOrderHandler GetOrderHandler,
	listOrdersHandler ListOrdersHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		createOrderHandler:    createOrderHandler,
		changeStatusHandler:   changeStatusHandler,
		updateLocationHandler: updateLocationHandler,
		getOrderHandler:       getOrderHandler,
		listOrdersHandler:     listOrdersHandler,
		logger:                logger.With("component", "http"),
	}
}

// Register mounts the API under /api/v1 behind auth, plus an open /health.
func (s *Server) Register(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", auth)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/myorders", s.listOrders(queries.CustomerScope))
	api.GET("/orders/shop", s.listOrders(queries.ShopScope))
	api.GET("/orders/delivery", s.listOrders(queries.PartnerScope))
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.ChangeOrderStatus)

	api.PUT("/users/location", s.UpdateLocation)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req CreateOrderRequest
	if err = c.Bind(&req); err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	items, err := req.toItems()
	if err != nil {
		return s.writeError(c, err)
	}
	location, err := req.toLocation()
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actor, items,
		req.TotalAmount, req.ShippingAddress, location)
	if err != nil {
		return s.writeError(c, err)
	}

	o, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, orderFromAggregate(o))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return s.writeError(c, err)
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor.ID())
	if err != nil {
		return s.writeError(c, err)
	}

	resp, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderFromReadModel(resp))
}

func (s *Server) listOrders(scope queries.Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := ActorFrom(c)
		if err != nil {
			return s.writeError(c, err)
		}

		query, err := queries.NewListOrdersQuery(actor, scope)
		if err != nil {
			return s.writeError(c, err)
		}

		orders, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
		if err != nil {
			return s.writeError(c, err)
		}

		response := make([]OrderResponse, len(orders))
		for i, o := range orders {
			response[i] = orderFromReadModel(o)
		}

		return c.JSON(http.StatusOK, response)
	}
}

// ChangeOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return s.writeError(c, err)
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	var req ChangeStatusRequest
	if err = c.Bind(&req); err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, actor, req.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	o, err := s.changeStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderFromAggregate(o))
}

// UpdateLocation handles PUT /api/v1/users/location for the caller.
func (s *Server) UpdateLocation(c echo.Context) error {
	actor, err := ActorFrom(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req UpdateLocationRequest
	if err = c.Bind(&req); err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewUpdateUserLocationCommand(actor.ID(), req.Latitude, req.Longitude)
	if err != nil {
		return s.writeError(c, err)
	}

	u, err := s.updateLocationHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, userLocationFromAggregate(u))
}
