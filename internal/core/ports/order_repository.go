package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates. Line items are written once on
// Add and never change afterwards.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes status and delivery partner only if the stored status
	// still equals expected. A miss returns errs.ConflictError and writes nothing.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListAccepted returns up to limit Accepted orders, oldest first.
	ListAccepted(ctx context.Context, limit int) ([]*order.Order, error)
}
