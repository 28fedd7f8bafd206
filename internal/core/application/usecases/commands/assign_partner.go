package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("marketplace/commands")

// assignPartner runs matching for an Accepted order and, when a partner is
// found, advances it to Assigned. A shop that never reported its location is
// not matched and no candidate query is issued. Finding nobody is not an error.
func assignPartner(
	ctx context.Context,
	o *order.Order,
	users ports.UserRepository,
	finder ports.PartnerFinder,
) error {
	ctx, span := tracer.Start(ctx, "assignPartner")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", o.ID().String()))

	shop, err := users.Get(ctx, o.ShopID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		span.SetAttributes(attribute.String("match.skipped", "shop not found"))
		return nil
	}
	if err != nil {
		span.RecordError(err)
		return err
	}

	if !shop.HasLocation() {
		span.SetAttributes(attribute.String("match.skipped", "shop location unknown"))
		return nil
	}

	partner, err := finder.FindNearestAvailablePartner(ctx, shop.Location())
	if errors.Is(err, services.ErrPartnerNotFound) {
		span.SetAttributes(attribute.Bool("match.found", false))
		return nil
	}
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.Bool("match.found", true),
		attribute.String("match.partner_id", partner.ID().String()),
	)
	return o.AssignPartner(partner.ID())
}
