package user

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	// ErrNameIsRequired is returned for an empty or blank name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// User is a marketplace account as the order lifecycle sees it.
//
// Shops and delivery partners carry a location; accounts that never reported
// one keep the 0,0 default, which kernel.Location.IsKnown treats as unknown.
// Only delivery partners can be available for matching.
//
// Example:
//
//	loc, _ := kernel.NewLocation(77.5946, 12.9716)
//	partner, err := user.NewUser(kernel.NewUUID(), "Ravi", "", user.DeliveryPartner)
//	_ = partner.UpdateLocation(loc)
type User struct {
	id        kernel.UUID
	name      string
	address   string
	role      Role
	location  kernel.Location
	available bool
	guard     guard.ConstructorGuard
}

// NewUser creates a user with the 0,0 default location and availability off.
func NewUser(id kernel.UUID, name, address string, role Role) (*User, error) {
	origin, err := kernel.NewLocation(0, 0)
	if err != nil {
		return nil, err
	}

	return RestoreUser(id, name, address, role, origin, false)
}

// RestoreUser rebuilds a User from storage.
func RestoreUser(
	id kernel.UUID,
	name, address string,
	role Role,
	location kernel.Location,
	available bool,
) (*User, error) {
	u := &User{
		address: strings.TrimSpace(address),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setRole(role),
		u.setLocation(location),
		u.setAvailable(available),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

// Address is the stored delivery address, possibly empty.
func (u *User) Address() string {
	return u.address
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) Location() kernel.Location {
	return u.location
}

func (u *User) IsAvailable() bool {
	return u.available
}

// HasLocation reports whether the user ever reported a real position.
func (u *User) HasLocation() bool {
	return u.location.IsKnown()
}

// IsAvailablePartner reports whether the user can be picked by matching.
func (u *User) IsAvailablePartner() bool {
	return u.role == DeliveryPartner && u.available
}

// UpdateLocation replaces the stored position. Any role may report one.
func (u *User) UpdateLocation(location kernel.Location) error {
	return u.setLocation(location)
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	u.location = location
	return nil
}

func (u *User) setAvailable(available bool) error {
	if available && u.role != DeliveryPartner {
		return errs.NewValueIsInvalidErrorWithCause("isAvailable",
			errors.New("only delivery partners can be available"))
	}
	u.available = available
	return nil
}
