package user

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role is the single role a user holds for the lifetime of the account.
type Role int

const (
	// UnknownRole catches uninitialized values.
	UnknownRole Role = iota
	Customer
	Shopkeeper
	DeliveryPartner
)

var roleNames = map[Role]string{
	UnknownRole:     "Unknown",
	Customer:        "Customer",
	Shopkeeper:      "Shopkeeper",
	DeliveryPartner: "DeliveryPartner",
}

// ParseRole converts the wire name of a role ("Customer", "Shopkeeper",
// "DeliveryPartner") into a Role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if r != UnknownRole && name == s {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate rejects UnknownRole and out-of-range values.
func (r Role) Validate() error {
	if r == UnknownRole {
		return errs.NewValueIsRequiredError("role")
	}
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return roleNames[UnknownRole]
}
