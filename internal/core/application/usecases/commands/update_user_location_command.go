package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateUserLocationCommandIsNotConstructed = errors.New(
	"UpdateUserLocationCommand must be created via NewUpdateUserLocationCommand constructor",
)

// UpdateUserLocationCommand records the current position of a user, typically
// a shop once or a delivery partner periodically. Both coordinates are
// pointers so that a missing one is told apart from zero.
type UpdateUserLocationCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	location kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateUserLocationCommand(
	userID kernel.UUID,
	latitude, longitude *float64,
) (UpdateUserLocationCommand, error) {
	if err := userID.Validate(); err != nil {
		return UpdateUserLocationCommand{}, err
	}

	var missing []error
	if latitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("latitude"))
	}
	if longitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("longitude"))
	}
	if len(missing) > 0 {
		return UpdateUserLocationCommand{}, errors.Join(missing...)
	}

	location, err := kernel.NewLocation(*longitude, *latitude)
	if err != nil {
		return UpdateUserLocationCommand{}, err
	}

	return UpdateUserLocationCommand{
		userID:   userID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateUserLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserLocationCommandIsNotConstructed)
}

func (c UpdateUserLocationCommand) UserID() kernel.UUID {
	return c.userID
}

func (c UpdateUserLocationCommand) Location() kernel.Location {
	return c.location
}
