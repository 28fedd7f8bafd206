package userrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the users row. Longitude and latitude default to 0,0 for users
// that never reported a location.
type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Address     string    `gorm:"type:text"`
	Role        string    `gorm:"type:varchar(32);not null;index:idx_users_role_available,priority:1"`
	IsAvailable bool      `gorm:"not null;default:false;index:idx_users_role_available,priority:2"`
	Longitude   float64   `gorm:"not null;default:0;index:idx_users_lat_lon,priority:2"`
	Latitude    float64   `gorm:"not null;default:0;index:idx_users_lat_lon,priority:1"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID().Bytes(),
		Name:        u.Name(),
		Address:     u.Address(),
		Role:        u.Role().String(),
		IsAvailable: u.IsAvailable(),
		Longitude:   u.Location().Longitude(),
		Latitude:    u.Location().Latitude(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Longitude, dto.Latitude)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.Address, role, loc, dto.IsAvailable)
}
