// Package kernel provides the shared value objects of the marketplace domain.
//
// The package includes:
//   - UUID: identity of orders, users and products
//   - Location: a longitude/latitude point with great-circle distance
//   - DomainEvent: the contract for events recorded by aggregates
//
// Value objects are immutable and must be created through their constructors;
// zero values fail Validate.
package kernel
