// Package errs provides standardized error types for the marketplace order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the failure taxonomy of the order lifecycle:
//   - ObjectNotFoundError: a missing order or user
//   - ForbiddenError: an authenticated actor not permitted for the resource
//   - TransitionIsInvalidError: a requested status that is unreachable
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - DependencyError: a persistence or broker failure
//   - ConflictError: a conditional write that lost a race
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
package errs
