package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

// ChangeOrderStatusCommandHandler applies a requested status change. When a
// shop accepts an order the handler also tries to assign the nearest available
// delivery partner inside the same unit of work.
type ChangeOrderStatusCommandHandler struct {
	uowFactory    UoWFactory
	finderFactory PartnerFinderFactory
}

func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	finderFactory PartnerFinderFactory,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory:    uowFactory,
		finderFactory: finderFactory,
	}
}

// Handle returns the order as stored after the change.
//
// The write is conditional on the status read at the start. If another request
// changed the order in between, nothing is written and the caller gets an
// invalid transition error wrapping the conflict.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "ChangeOrderStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.target_status", cmd.Target().String()),
		attribute.String("actor.role", cmd.Actor().Role().String()),
	)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	expected := o.Status()
	if err = o.RequestTransition(cmd.Actor(), cmd.Target()); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if cmd.Target() == order.Accepted {
		users := uow.UserRepository()
		if err = assignPartner(ctx, o, users, h.finderFactory(users)); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	if err = orders.Update(ctx, o, expected); err != nil {
		span.RecordError(err)
		if errors.Is(err, errs.ErrConflict) {
			return nil, errs.NewTransitionIsInvalidErrorWithCause(expected.String(), cmd.Target().String(), err)
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("order.status", o.Status().String()))
	return o, nil
}
