package postgres

import (
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the orders, order_items and users tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userrepo.UserDTO{}, &orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
}
