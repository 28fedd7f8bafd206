// Package user models marketplace users as seen by the order lifecycle:
// their role, their last reported location and, for delivery partners,
// their availability.
//
// The package includes:
//   - Role: Customer, Shopkeeper or DeliveryPartner, fixed for the account
//   - User: the aggregate read by partner matching and order creation
//   - Actor: the authenticated identity issuing a request
//
// Registration, credentials and availability toggling belong to external
// services; this package only validates and carries their results.
package user
