package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
)

// PartnerFinderFactory binds a PartnerFinder to the user repository of the
// current unit of work, so candidate reads share its transaction.
type PartnerFinderFactory func(users ports.UserRepository) ports.PartnerFinder

// NearestPartnerFinder asks the repository for candidates around the origin
// and lets the domain PartnerMatcher pick the nearest one.
type NearestPartnerFinder struct {
	users   ports.UserRepository
	matcher services.PartnerMatcher
}

func NewNearestPartnerFinder(users ports.UserRepository, matcher services.PartnerMatcher) *NearestPartnerFinder {
	return &NearestPartnerFinder{users: users, matcher: matcher}
}

// NearestPartnerFinderFactory returns a PartnerFinderFactory producing
// NearestPartnerFinder instances with matcher.
func NearestPartnerFinderFactory(matcher services.PartnerMatcher) PartnerFinderFactory {
	return func(users ports.UserRepository) ports.PartnerFinder {
		return NewNearestPartnerFinder(users, matcher)
	}
}

func (f *NearestPartnerFinder) FindNearestAvailablePartner(ctx context.Context, origin kernel.Location) (*user.User, error) {
	ctx, span := tracer.Start(ctx, "FindNearestAvailablePartner")
	defer span.End()

	radius := f.matcher.RadiusMeters()
	span.SetAttributes(
		attribute.Float64("match.origin.longitude", origin.Longitude()),
		attribute.Float64("match.origin.latitude", origin.Latitude()),
		attribute.Float64("match.radius_meters", radius),
	)

	candidates, err := f.users.FindAvailablePartnersWithin(ctx, origin, radius)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("match.candidates", len(candidates)))

	return f.matcher.Match(origin, candidates)
}
