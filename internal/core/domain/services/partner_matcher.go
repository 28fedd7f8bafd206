package services

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// DefaultMatchRadiusMeters is the hard distance limit between a shop and a
// matched delivery partner.
const DefaultMatchRadiusMeters = 15000.0

// ErrPartnerNotFound is returned when no candidate is available within the radius.
var ErrPartnerNotFound = errors.New("delivery partner not found")

// PartnerMatcher selects the nearest available delivery partner within a
// fixed radius of an origin point.
//
// Business rules:
//   - Only delivery partners flagged available are considered
//   - Partners that never reported a location are skipped
//   - Distance is the great-circle distance and must not exceed the radius
//   - On equal distance the earlier candidate wins
//
// Example usage:
//
//	matcher, _ := services.NewPartnerMatcher(services.DefaultMatchRadiusMeters)
//	partner, err := matcher.Match(shop.Location(), candidates)
//	if errors.Is(err, services.ErrPartnerNotFound) {
//	    // order stays Accepted
//	}
type PartnerMatcher struct {
	radiusMeters float64
}

// NewPartnerMatcher creates a matcher for the given radius in meters.
func NewPartnerMatcher(radiusMeters float64) (PartnerMatcher, error) {
	if math.IsNaN(radiusMeters) || radiusMeters <= 0 {
		return PartnerMatcher{}, errs.NewValueIsInvalidErrorWithCause("radius",
			fmt.Errorf("%v is not greater than 0", radiusMeters))
	}
	return PartnerMatcher{radiusMeters: radiusMeters}, nil
}

// RadiusMeters returns the configured search radius.
func (m PartnerMatcher) RadiusMeters() float64 {
	if m.radiusMeters == 0 {
		return DefaultMatchRadiusMeters
	}
	return m.radiusMeters
}

// Match returns the nearest matchable candidate to origin.
func (m PartnerMatcher) Match(origin kernel.Location, candidates []*user.User) (*user.User, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	var (
		best     *user.User
		bestDist = math.MaxFloat64
		radius   = m.RadiusMeters()
	)

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsAvailablePartner() || !c.HasLocation() {
			continue
		}

		dist, err := origin.DistanceTo(c.Location())
		if err != nil {
			return nil, err
		}

		if dist <= radius && dist < bestDist {
			bestDist = dist
			best = c
		}
	}

	if best == nil {
		return nil, ErrPartnerNotFound
	}

	return best, nil
}
