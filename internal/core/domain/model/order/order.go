package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrItemsAreRequired is returned when an order has no line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrShippingAddressIsRequired is returned for an empty shipping address.
	ErrShippingAddressIsRequired = errs.NewValueIsRequiredError("shippingAddress")
	// ErrPartnerAlreadyAssigned is the cause reported when matching targets an
	// order that already has a delivery partner.
	ErrPartnerAlreadyAssigned = errors.New("delivery partner is already assigned")
)

// Order is the aggregate root of the order lifecycle. It is the only writer of
// status and of the delivery partner reference.
//
// Business rules:
//   - An order is created Pending with at least one line item and a shipping address
//   - Status changes go through RequestTransition (actors) or AssignPartner (matching)
//   - The delivery partner is set together with Assigned and never replaced
//   - totalAmount is taken as supplied by the caller and never recomputed
//
// Every status change records a StatusChanged event, collected by the unit of
// work after commit.
type Order struct {
	id               kernel.UUID
	customerID       kernel.UUID
	shopID           kernel.UUID
	partnerID        *kernel.UUID
	items            []LineItem
	totalAmount      decimal.Decimal
	status           Status
	shippingAddress  string
	deliveryLocation *kernel.Location
	createdAt        time.Time
	events           []kernel.DomainEvent
	guard            guard.ConstructorGuard
}

// NewOrder creates a Pending order without a delivery partner.
//
// Example:
//
//	item, _ := order.NewLineItem(productID, "Milk 1L", 2, decimal.RequireFromString("1.20"), "")
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, shopID,
//	    []order.LineItem{item}, decimal.RequireFromString("2.40"), "12 MG Road", time.Now())
func NewOrder(
	id, customerID, shopID kernel.UUID,
	items []LineItem,
	totalAmount decimal.Decimal,
	shippingAddress string,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, customerID, shopID, nil, items, totalAmount, Pending, shippingAddress, nil, createdAt)
}

// RestoreOrder rebuilds an Order from storage. Besides the NewOrder checks it
// verifies that the partner reference is consistent with the status.
func RestoreOrder(
	id, customerID, shopID kernel.UUID,
	partnerID *kernel.UUID,
	items []LineItem,
	totalAmount decimal.Decimal,
	status Status,
	shippingAddress string,
	deliveryLocation *kernel.Location,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setShopID(shopID),
		o.setItems(items),
		o.setTotalAmount(totalAmount),
		o.setShippingAddress(shippingAddress),
		o.setDeliveryLocation(deliveryLocation),
		o.setStatusAndPartner(status, partnerID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) ShopID() kernel.UUID {
	return o.shopID
}

// DeliveryPartnerID is nil until the order is Assigned.
func (o *Order) DeliveryPartnerID() *kernel.UUID {
	if o.partnerID == nil {
		return nil
	}
	id := *o.partnerID
	return &id
}

func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// ItemsTotal sums the item subtotals. It may differ from TotalAmount, which
// is stored as the client sent it.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// DeliveryLocation is reserved and may be nil.
func (o *Order) DeliveryLocation() *kernel.Location {
	if o.deliveryLocation == nil {
		return nil
	}
	loc := *o.deliveryLocation
	return &loc
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// SetDeliveryLocation records the optional drop-off point. Only allowed
// before the shop has handled the order.
func (o *Order) SetDeliveryLocation(location kernel.Location) error {
	if o.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("deliveryLocation",
			fmt.Errorf("cannot be changed in status %s", o.status))
	}
	return o.setDeliveryLocation(&location)
}

// CanBeViewedBy reports whether userID is the customer, the shop or the
// assigned delivery partner of the order.
func (o *Order) CanBeViewedBy(userID kernel.UUID) bool {
	return o.customerID.IsEqual(userID) ||
		o.shopID.IsEqual(userID) ||
		(o.partnerID != nil && o.partnerID.IsEqual(userID))
}

// Authorize checks that actor may drive the status of this order: the owning
// shop, or the assigned delivery partner. Customers never drive status.
func (o *Order) Authorize(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	var cause error
	switch actor.Role() {
	case user.Shopkeeper:
		if !actor.Is(o.shopID) {
			cause = errors.New("actor is not the shop of the order")
		}
	case user.DeliveryPartner:
		switch {
		case o.partnerID == nil:
			cause = errors.New("order has no delivery partner")
		case !actor.Is(*o.partnerID):
			cause = errors.New("actor is not the assigned delivery partner")
		}
	default:
		cause = fmt.Errorf("role %s cannot change order status", actor.Role())
	}

	if cause != nil {
		return errs.NewForbiddenErrorWithCause(actor.ID(), "order "+o.id.String(), cause)
	}
	return nil
}

// RequestTransition moves the order to target on behalf of actor.
//
// Authorization is checked before the edge, so a stranger learns nothing about
// the current status. A shop re-requesting Accepted on an Accepted order is
// allowed and changes nothing; the caller uses it to retry matching.
func (o *Order) RequestTransition(actor user.Actor, target Status) error {
	if err := o.Authorize(actor); err != nil {
		return err
	}

	if !CanTransition(o.status, actor.Role(), true, target) {
		return errs.NewTransitionIsInvalidError(o.status.String(), target.String())
	}

	if target == o.status {
		return nil
	}

	o.changeStatus(target)
	return nil
}

// AssignPartner attaches the matched delivery partner and advances the order
// to Assigned. Only an Accepted order without a partner can be assigned.
func (o *Order) AssignPartner(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	if o.status != Accepted {
		return errs.NewTransitionIsInvalidError(o.status.String(), Assigned.String())
	}
	if o.partnerID != nil {
		return errs.NewTransitionIsInvalidErrorWithCause(o.status.String(), Assigned.String(), ErrPartnerAlreadyAssigned)
	}

	o.partnerID = &partnerID
	o.changeStatus(Assigned)
	return nil
}

// DomainEvents returns events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return slices.Clone(o.events)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) changeStatus(target Status) {
	from := o.status
	o.status = target
	o.events = append(o.events, StatusChanged{
		OrderID:    o.id,
		ShopID:     o.shopID,
		CustomerID: o.customerID,
		From:       from.String(),
		To:         target.String(),
		PartnerID:  o.DeliveryPartnerID(),
		At:         time.Now().UTC(),
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("customerId: %w", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setShopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("shopId: %w", err)
	}
	o.shopID = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setTotalAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%s is negative", amount))
	}
	o.totalAmount = amount
	return nil
}

func (o *Order) setShippingAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrShippingAddressIsRequired
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setDeliveryLocation(location *kernel.Location) error {
	if location == nil {
		o.deliveryLocation = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	o.deliveryLocation = &loc
	return nil
}

func (o *Order) setStatusAndPartner(status Status, partnerID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}

	hasPartner := partnerID != nil
	if hasPartner {
		if err := partnerID.Validate(); err != nil {
			return fmt.Errorf("deliveryPartnerId: %w", err)
		}
	}
	if hasPartner != status.HasPartner() {
		return errs.NewValueIsInvalidErrorWithCause("deliveryPartnerId",
			fmt.Errorf("status %s with partner set = %t", status, hasPartner))
	}

	o.status = status
	if hasPartner {
		id := *partnerID
		o.partnerID = &id
	}
	return nil
}
