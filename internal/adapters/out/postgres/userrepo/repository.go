// Package userrepo reads and writes the users table.
package userrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

const dependencyName = "postgres"

type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewDependencyError(dependencyName, err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves every column of the user. Select("*") makes gorm write zero
// values such as is_available = false.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return errs.NewDependencyError(dependencyName, result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, errs.NewDependencyError(dependencyName, err)
	}

	return toDomain(dto)
}

// FindAvailablePartnersWithin prefilters available partners with the
// bounding box of the search circle, which the lat/lon index can serve.
// Partners still at the 0,0 default are excluded.
func (r *GormUserRepository) FindAvailablePartnersWithin(
	ctx context.Context,
	origin kernel.Location,
	radiusMeters float64,
) ([]*user.User, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	minLon, minLat, maxLon, maxLat := origin.BoundingBox(radiusMeters)

	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_available = ?", user.DeliveryPartner.String(), true).
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLon, maxLon).
		Where("NOT (latitude = 0 AND longitude = 0)").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewDependencyError(dependencyName, err)
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}
