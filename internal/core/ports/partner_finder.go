package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

// PartnerFinder locates the nearest available delivery partner around a point.
// It returns services.ErrPartnerNotFound when nobody is in range.
type PartnerFinder interface {
	FindNearestAvailablePartner(ctx context.Context, origin kernel.Location) (*user.User, error)
}
