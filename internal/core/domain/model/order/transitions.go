package order

import (
	"slices"

	"marketplace/internal/core/domain/model/user"
)

type edge struct {
	from Status
	role user.Role
}

// transitionTable lists every actor-driven edge. Accepted -> Accepted lets the
// owning shop retry partner matching on an order that found nobody.
// Accepted -> Assigned is absent: only matching performs it, via AssignPartner.
var transitionTable = map[edge][]Status{
	{Pending, user.Shopkeeper}:       {Accepted, Rejected},
	{Accepted, user.Shopkeeper}:      {Accepted},
	{Assigned, user.DeliveryPartner}: {PickedUp},
	{PickedUp, user.DeliveryPartner}: {Delivered},
}

// AllowedTransitions returns the statuses an actor of role may request from
// current. isOwner tells whether the actor is the shop or the assigned partner
// of the order; non-owners get nothing.
func AllowedTransitions(current Status, role user.Role, isOwner bool) []Status {
	if !isOwner {
		return nil
	}
	return slices.Clone(transitionTable[edge{current, role}])
}

// CanTransition reports whether target is in AllowedTransitions.
func CanTransition(current Status, role user.Role, isOwner bool, target Status) bool {
	return slices.Contains(transitionTable[edge{current, role}], target) && isOwner
}
