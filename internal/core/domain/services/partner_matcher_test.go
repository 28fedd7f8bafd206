package services_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// metersPerDegreeLat is the length of one degree of latitude on the sphere
// used by kernel.Location.
const metersPerDegreeLat = 111194.93

var shopLon, shopLat = 77.5946, 12.9716

func createPartnerNorthOfShop(t *testing.T, meters float64, available bool) *user.User {
	t.Helper()
	loc, err := kernel.NewLocation(shopLon, shopLat+meters/metersPerDegreeLat)
	require.NoError(t, err)
	u, err := user.RestoreUser(kernel.NewUUID(), "Partner", "", user.DeliveryPartner, loc, available)
	require.NoError(t, err)
	return u
}

func shopLocation(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(shopLon, shopLat)
	require.NoError(t, err)
	return loc
}

func TestNewPartnerMatcher(t *testing.T) {
	m, err := services.NewPartnerMatcher(5000)
	require.NoError(t, err)
	assert.InDelta(t, 5000, m.RadiusMeters(), 0)

	for _, bad := range []float64{0, -1} {
		_, err = services.NewPartnerMatcher(bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}

	var zero services.PartnerMatcher
	assert.InDelta(t, services.DefaultMatchRadiusMeters, zero.RadiusMeters(), 0)
}

func TestPartnerMatcher_Match(t *testing.T) {
	matcher, err := services.NewPartnerMatcher(services.DefaultMatchRadiusMeters)
	require.NoError(t, err)

	t.Run("should pick the nearest partner", func(t *testing.T) {
		far := createPartnerNorthOfShop(t, 8000, true)
		near := createPartnerNorthOfShop(t, 2000, true)

		got, err := matcher.Match(shopLocation(t), []*user.User{far, near})

		require.NoError(t, err)
		assert.True(t, got.ID().IsEqual(near.ID()))
	})

	t.Run("should skip unavailable partners", func(t *testing.T) {
		busy := createPartnerNorthOfShop(t, 500, false)
		free := createPartnerNorthOfShop(t, 9000, true)

		got, err := matcher.Match(shopLocation(t), []*user.User{busy, free})

		require.NoError(t, err)
		assert.True(t, got.ID().IsEqual(free.ID()))
	})

	t.Run("should skip partners without location", func(t *testing.T) {
		unknown, err := user.NewUser(kernel.NewUUID(), "New", "", user.DeliveryPartner)
		require.NoError(t, err)

		_, err = matcher.Match(shopLocation(t), []*user.User{unknown})

		require.ErrorIs(t, err, services.ErrPartnerNotFound)
	})

	t.Run("should skip non partner users", func(t *testing.T) {
		loc := shopLocation(t)
		shop, err := user.RestoreUser(kernel.NewUUID(), "Shop", "", user.Shopkeeper, loc, false)
		require.NoError(t, err)

		_, err = matcher.Match(loc, []*user.User{shop})

		require.ErrorIs(t, err, services.ErrPartnerNotFound)
	})

	t.Run("should ignore partners beyond the radius", func(t *testing.T) {
		outside := createPartnerNorthOfShop(t, 15100, true)

		_, err := matcher.Match(shopLocation(t), []*user.User{outside})

		require.ErrorIs(t, err, services.ErrPartnerNotFound)
	})

	t.Run("partner just inside the radius matches", func(t *testing.T) {
		inside := createPartnerNorthOfShop(t, 14990, true)

		got, err := matcher.Match(shopLocation(t), []*user.User{inside})

		require.NoError(t, err)
		assert.True(t, got.ID().IsEqual(inside.ID()))
	})

	t.Run("ties keep the first candidate", func(t *testing.T) {
		first := createPartnerNorthOfShop(t, 3000, true)
		second, err := user.RestoreUser(kernel.NewUUID(), "Twin", "", user.DeliveryPartner, first.Location(), true)
		require.NoError(t, err)

		got, err := matcher.Match(shopLocation(t), []*user.User{first, second})

		require.NoError(t, err)
		assert.True(t, got.ID().IsEqual(first.ID()))
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := matcher.Match(shopLocation(t), nil)

		require.ErrorIs(t, err, services.ErrPartnerNotFound)
	})

	t.Run("zero value origin fails", func(t *testing.T) {
		_, err := matcher.Match(kernel.Location{}, []*user.User{createPartnerNorthOfShop(t, 10, true)})

		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})

	t.Run("smaller radius excludes the far partner", func(t *testing.T) {
		small, err := services.NewPartnerMatcher(5000)
		require.NoError(t, err)

		_, err = small.Match(shopLocation(t), []*user.User{createPartnerNorthOfShop(t, 8000, true)})

		require.ErrorIs(t, err, services.ErrPartnerNotFound)
	})
}
