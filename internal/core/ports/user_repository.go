package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

// UserRepository gives access to the user directory. Accounts are created by
// the identity service; Add exists for provisioning and tests.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error

	Update(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// FindAvailablePartnersWithin returns available delivery partners that may
	// lie within radiusMeters of origin. The result can contain partners
	// slightly outside the radius; callers apply the exact distance check.
	FindAvailablePartnersWithin(ctx context.Context, origin kernel.Location, radiusMeters float64) ([]*user.User, error)
}
