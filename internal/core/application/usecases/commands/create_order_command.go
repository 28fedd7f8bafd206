package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	// ErrItemsFromSeveralShops is returned when the items of one order name different shops.
	ErrItemsFromSeveralShops = errs.NewValueIsInvalidErrorWithCause("items",
		errors.New("all items must belong to the same shop"))
)

// CreateOrderItem is one requested line as received from the client. The shop
// is carried by each item; an order takes its shop from them.
type CreateOrderItem struct {
	ShopID    kernel.UUID
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Image     string
}

// CreateOrderCommand places a new order for the requesting customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customer, items,
//	    decimal.RequireFromString("12.50"), "", nil)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customer         user.Actor
	shopID           kernel.UUID
	items            []order.LineItem
	totalAmount      decimal.Decimal
	shippingAddress  string
	deliveryLocation *kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. shippingAddress may be empty,
// the handler then falls back to the customer's stored address.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer user.Actor,
	items []CreateOrderItem,
	totalAmount decimal.Decimal,
	shippingAddress string,
	deliveryLocation *kernel.Location,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		shippingAddress: strings.TrimSpace(shippingAddress),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setItems(items),
		cmd.setTotalAmount(totalAmount),
		cmd.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Customer() user.Actor {
	return c.customer
}

func (c CreateOrderCommand) ShopID() kernel.UUID {
	return c.shopID
}

func (c CreateOrderCommand) Items() []order.LineItem {
	return c.items
}

func (c CreateOrderCommand) TotalAmount() decimal.Decimal {
	return c.totalAmount
}

func (c CreateOrderCommand) ShippingAddress() string {
	return c.shippingAddress
}

func (c CreateOrderCommand) DeliveryLocation() *kernel.Location {
	return c.deliveryLocation
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer user.Actor) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	if customer.Role() != user.Customer {
		return errs.NewForbiddenErrorWithCause(customer.ID(), "orders",
			fmt.Errorf("role %s cannot place orders", customer.Role()))
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return order.ErrItemsAreRequired
	}

	shopID := items[0].ShopID
	if err := shopID.Validate(); err != nil {
		return fmt.Errorf("shopId: %w", err)
	}

	lineItems := make([]order.LineItem, 0, len(items))
	for i, it := range items {
		if !it.ShopID.IsEqual(shopID) {
			return ErrItemsFromSeveralShops
		}
		li, err := order.NewLineItem(it.ProductID, it.Name, it.Quantity, it.UnitPrice, it.Image)
		if err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
		lineItems = append(lineItems, li)
	}

	c.shopID = shopID
	c.items = lineItems
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%s is negative", amount))
	}
	c.totalAmount = amount
	return nil
}

func (c *CreateOrderCommand) setDeliveryLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	c.deliveryLocation = &loc
	return nil
}
