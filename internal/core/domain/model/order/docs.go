// Package order provides the Order aggregate and its lifecycle state machine
// for the marketplace.
//
// The package includes:
//   - Order: the aggregate root owning status and the delivery partner reference
//   - Status: the closed set of lifecycle states
//   - AllowedTransitions: the pure permission table consulted on every request
//   - LineItem: an immutable snapshot of a purchased product
//   - StatusChanged: the domain event recorded on every status change
//
// Key business rules:
//   - Orders start Pending with no delivery partner
//   - Status only moves forward: Pending -> Accepted -> Assigned -> PickedUp -> Delivered
//   - Rejected is reachable only from Pending; Rejected and Delivered are terminal
//   - Assigned is never requested by an actor, it is set when a partner is matched
//   - The delivery partner is set once, together with Assigned, and never changes
package order
