package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

// CreateOrderCommandHandler stores a new Pending order after checking that the
// shop and the customer exist.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CreateOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
		logger:     logger.With("component", "create_order"),
	}
}

// Handle creates the order and returns it as stored.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "CreateOrder")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.shop_id", cmd.ShopID().String()),
	)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()

	shop, err := users.Get(ctx, cmd.ShopID())
	if err != nil {
		return nil, err
	}
	if shop.Role() != user.Shopkeeper {
		return nil, errs.NewValueIsInvalidErrorWithCause("shopId",
			fmt.Errorf("user %s is not a shop", shop.ID()))
	}

	customer, err := users.Get(ctx, cmd.Customer().ID())
	if err != nil {
		return nil, err
	}

	address := cmd.ShippingAddress()
	if address == "" {
		address = customer.Address()
	}

	o, err := order.NewOrder(cmd.OrderID(), customer.ID(), shop.ID(),
		cmd.Items(), cmd.TotalAmount(), address, h.now())
	if err != nil {
		return nil, err
	}

	if loc := cmd.DeliveryLocation(); loc != nil {
		if err = o.SetDeliveryLocation(*loc); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	// totalAmount is kept as sent; a mismatch is only reported.
	if itemsTotal := o.ItemsTotal(); !itemsTotal.Equal(o.TotalAmount()) {
		h.logger.WarnContext(ctx, "order total differs from items",
			"order_id", o.ID().String(),
			"total_amount", o.TotalAmount().String(),
			"items_total", itemsTotal.String(),
		)
	}

	return o, nil
}
