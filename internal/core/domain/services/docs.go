// Package services provides domain services that span more than one
// aggregate of the marketplace.
//
// The package includes:
//   - PartnerMatcher: picks the nearest available delivery partner for a shop
//
// Domain services here are pure: they read aggregates and return a decision,
// the caller applies it to the order.
package services
