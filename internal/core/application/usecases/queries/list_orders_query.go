package queries

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// Scope selects whose orders are listed.
type Scope int

const (
	// CustomerScope lists orders the requester placed. Any role may use it.
	CustomerScope Scope = iota
	// ShopScope lists orders addressed to the requesting shop.
	ShopScope
	// PartnerScope lists orders assigned to the requesting delivery partner.
	PartnerScope
)

func (s Scope) String() string {
	switch s {
	case CustomerScope:
		return "customer"
	case ShopScope:
		return "shop"
	case PartnerScope:
		return "partner"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

func (s Scope) column() string {
	switch s {
	case ShopScope:
		return "o.shop_id"
	case PartnerScope:
		return "o.delivery_partner_id"
	default:
		return "o.customer_id"
	}
}

// ListOrdersQuery lists the requester's orders in one scope, newest first.
type ListOrdersQuery struct {
	requester user.Actor
	scope     Scope
	guard     guard.ConstructorGuard
}

// NewListOrdersQuery rejects a shop listing for non-shops and a delivery
// listing for non-partners with ForbiddenError.
func NewListOrdersQuery(requester user.Actor, scope Scope) (ListOrdersQuery, error) {
	if err := requester.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	switch scope {
	case CustomerScope:
	case ShopScope:
		if requester.Role() != user.Shopkeeper {
			return ListOrdersQuery{}, errs.NewForbiddenError(requester.ID(), "shop orders")
		}
	case PartnerScope:
		if requester.Role() != user.DeliveryPartner {
			return ListOrdersQuery{}, errs.NewForbiddenError(requester.ID(), "delivery orders")
		}
	default:
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("scope",
			fmt.Errorf("unknown scope %s", scope))
	}

	return ListOrdersQuery{
		requester: requester,
		scope:     scope,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Requester() user.Actor {
	return q.requester
}

func (q ListOrdersQuery) Scope() Scope {
	return q.scope
}
