package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

// AssignPartnerCommandHandler walks the oldest Accepted orders and assigns a
// partner where one is now in range. Each order gets its own unit of work, so
// one failing order does not hold back the rest of the batch.
type AssignPartnerCommandHandler struct {
	uowFactory    UoWFactory
	finderFactory PartnerFinderFactory
	logger        *slog.Logger
}

func NewAssignPartnerCommandHandler(
	uowFactory UoWFactory,
	finderFactory PartnerFinderFactory,
	logger *slog.Logger,
) AssignPartnerCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AssignPartnerCommandHandler{
		uowFactory:    uowFactory,
		finderFactory: finderFactory,
		logger:        logger.With("component", "assign_partner"),
	}
}

// Handle returns how many orders were assigned. It fails only when the batch
// itself cannot be listed.
func (h AssignPartnerCommandHandler) Handle(ctx context.Context, cmd AssignPartnerCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ctx, span := tracer.Start(ctx, "AssignPartners")
	defer span.End()

	ids, err := h.listWaiting(ctx, cmd.BatchSize())
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	assigned := 0
	for _, id := range ids {
		ok, err := h.assignOne(ctx, id)
		switch {
		case err == nil && ok:
			assigned++
		case errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrTransitionIsInvalid):
			h.logger.DebugContext(ctx, "order changed during matching", "order_id", id.String())
		case err != nil:
			h.logger.ErrorContext(ctx, "failed to assign partner", "order_id", id.String(), "error", err)
		}
	}

	span.SetAttributes(
		attribute.Int("match.orders", len(ids)),
		attribute.Int("match.assigned", assigned),
	)
	return assigned, nil
}

func (h AssignPartnerCommandHandler) listWaiting(ctx context.Context, limit int) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().ListAccepted(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		if o.DeliveryPartnerID() == nil {
			ids = append(ids, o.ID())
		}
	}
	return ids, nil
}

func (h AssignPartnerCommandHandler) assignOne(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	o, err := orders.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if o.Status() != order.Accepted {
		return false, nil
	}

	users := uow.UserRepository()
	if err = assignPartner(ctx, o, users, h.finderFactory(users)); err != nil {
		return false, err
	}
	if o.Status() != order.Assigned {
		return false, nil
	}

	if err = orders.Update(ctx, o, order.Accepted); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.logger.InfoContext(ctx, "delivery partner assigned",
		"order_id", o.ID().String(),
		"partner_id", o.DeliveryPartnerID().String(),
	)
	return true, nil
}
