package kernel

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// LongitudeMin and LongitudeMax bound a valid longitude in degrees.
	LongitudeMin = -180.0
	LongitudeMax = 180.0
	// LatitudeMin and LatitudeMax bound a valid latitude in degrees.
	LatitudeMin = -90.0
	LatitudeMax = 90.0

	// EarthRadiusMeters is the mean earth radius (IUGG) used for great-circle distances.
	EarthRadiusMeters = 6371008.8
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a geographic point in degrees, longitude first as in GeoJSON.
//
// The zero value is invalid. A constructed Location at exactly (0, 0) is
// valid but treated as "no real location" by IsKnown: the user directory
// stores 0,0 as the default for users that never reported a position.
//
// Example:
//
//	shop, _ := kernel.NewLocation(37.6173, 55.7558)
//	partner, _ := kernel.NewLocation(37.6500, 55.7600)
//	meters, _ := shop.DistanceTo(partner)
type Location struct { //nolint:recvcheck //using for validation
	longitude float64
	latitude  float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location, validating both coordinates.
func NewLocation(longitude, latitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLongitude(longitude), loc.setLatitude(latitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate returns ErrLocationIsNotConstructed for the zero value.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// IsKnown reports whether the location is constructed and not the 0,0 default.
func (l Location) IsKnown() bool {
	return l.Validate() == nil && (l.longitude != 0 || l.latitude != 0)
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.longitude, l.latitude)
}

// IsEqual compares coordinates of two constructed locations.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.longitude == other.longitude && l.latitude == other.latitude, nil
}

// DistanceTo returns the great-circle distance in meters using the haversine
// formula on a sphere of EarthRadiusMeters.
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(l.latitude)
	lat2 := toRadians(other.latitude)
	dLat := lat2 - lat1
	dLon := toRadians(other.longitude - l.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c, nil
}

// BoundingBox returns the min/max longitude and latitude enclosing a circle of
// radiusMeters around l. Repositories use it as an index-friendly prefilter;
// callers still apply DistanceTo for the exact circle. Near the poles or when
// the circle crosses the antimeridian the longitude span widens to the full
// range.
func (l Location) BoundingBox(radiusMeters float64) (minLon, minLat, maxLon, maxLat float64) {
	dLat := toDegrees(radiusMeters / EarthRadiusMeters)
	minLat = math.Max(l.latitude-dLat, LatitudeMin)
	maxLat = math.Min(l.latitude+dLat, LatitudeMax)

	ratio := math.Sin(radiusMeters/EarthRadiusMeters) / math.Cos(toRadians(l.latitude))
	if ratio >= 1 || minLat == LatitudeMin || maxLat == LatitudeMax {
		return LongitudeMin, minLat, LongitudeMax, maxLat
	}

	dLon := toDegrees(math.Asin(ratio))
	minLon = l.longitude - dLon
	maxLon = l.longitude + dLon
	if minLon < LongitudeMin || maxLon > LongitudeMax {
		return LongitudeMin, minLat, LongitudeMax, maxLat
	}

	return minLon, minLat, maxLon, maxLat
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	l.longitude = longitude
	return nil
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	l.latitude = latitude
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
