package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/provider"
)

// Connaught Place, Delhi. Distances below are relative to this point.
const (
	originLat = 28.6315
	originLng = 77.2167
)

func newMatchBooking(t *testing.T, serviceID kernel.UUID) *booking.Booking {
	geo, err := kernel.NewGeoPoint(originLat, originLng)
	require.NoError(t, err)

	bkg, err := booking.NewBooking(
		kernel.NewUUID(),
		kernel.NewUUID(),
		serviceID,
		"Connaught Place, New Delhi",
		&geo,
		250,
		"1234",
	)
	require.NoError(t, err)
	return bkg
}

func newMatchProvider(t *testing.T, lat, lng float64, capabilities ...kernel.UUID) *provider.Provider {
	location, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)

	p, err := provider.NewProvider(kernel.NewUUID(), "Provider", 100, &location, capabilities)
	require.NoError(t, err)
	return p
}

func TestMatchOrdersByDistance(t *testing.T) {
	serviceID := kernel.NewUUID()
	bkg := newMatchBooking(t, serviceID)

	// Roughly 11km, 1km and 5.5km north of the booking.
	far := newMatchProvider(t, originLat+0.10, originLng, serviceID)
	near := newMatchProvider(t, originLat+0.01, originLng, serviceID)
	middle := newMatchProvider(t, originLat+0.05, originLng, serviceID)

	candidates, err := NewProximityMatcher().Match(bkg, []*provider.Provider{far, near, middle})

	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.True(t, candidates[0].Provider.IsEqual(near))
	assert.True(t, candidates[1].Provider.IsEqual(middle))
	assert.True(t, candidates[2].Provider.IsEqual(far))
	assert.Less(t, candidates[0].DistanceKm, candidates[1].DistanceKm)
	assert.Less(t, candidates[1].DistanceKm, candidates[2].DistanceKm)
}

func TestMatchExcludesProvidersOutsideRadius(t *testing.T) {
	serviceID := kernel.NewUUID()
	bkg := newMatchBooking(t, serviceID)

	// Agra is well over 150km from Delhi.
	distant := newMatchProvider(t, 27.1767, 78.0081, serviceID)
	nearby := newMatchProvider(t, originLat+0.01, originLng, serviceID)

	candidates, err := NewProximityMatcher().Match(bkg, []*provider.Provider{distant, nearby})

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.True(t, candidates[0].Provider.IsEqual(nearby))
	assert.LessOrEqual(t, candidates[0].DistanceKm, MatchRadiusKm)
}

func TestMatchExcludesProvidersWithoutCapability(t *testing.T) {
	serviceID := kernel.NewUUID()
	bkg := newMatchBooking(t, serviceID)

	capable := newMatchProvider(t, originLat+0.01, originLng, serviceID)
	otherTrade := newMatchProvider(t, originLat+0.01, originLng, kernel.NewUUID())

	candidates, err := NewProximityMatcher().Match(bkg, []*provider.Provider{otherTrade, capable})

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.True(t, candidates[0].Provider.IsEqual(capable))
}

func TestMatchExcludesProvidersWithoutLocation(t *testing.T) {
	serviceID := kernel.NewUUID()
	bkg := newMatchBooking(t, serviceID)

	hidden, err := provider.NewProvider(kernel.NewUUID(), "No Location", 100, nil, []kernel.UUID{serviceID})
	require.NoError(t, err)

	candidates, err := NewProximityMatcher().Match(bkg, []*provider.Provider{hidden})

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestMatchBreaksDistanceTiesByProviderID(t *testing.T) {
	serviceID := kernel.NewUUID()
	bkg := newMatchBooking(t, serviceID)

	// Same coordinates, so identical distance.
	first := newMatchProvider(t, originLat+0.01, originLng, serviceID)
	second := newMatchProvider(t, originLat+0.01, originLng, serviceID)

	expected := []*provider.Provider{first, second}
	if second.ID().String() < first.ID().String() {
		expected = []*provider.Provider{second, first}
	}

	candidates, err := NewProximityMatcher().Match(bkg, []*provider.Provider{first, second})

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.True(t, candidates[0].Provider.IsEqual(expected[0]))
	assert.True(t, candidates[1].Provider.IsEqual(expected[1]))
}

func TestMatchRequiresBookingGeo(t *testing.T) {
	serviceID := kernel.NewUUID()
	bkg, err := booking.NewBooking(
		kernel.NewUUID(),
		kernel.NewUUID(),
		serviceID,
		"Somewhere without coordinates",
		nil,
		250,
		"1234",
	)
	require.NoError(t, err)

	candidates, err := NewProximityMatcher().Match(bkg, nil)

	assert.Nil(t, candidates)
	assert.ErrorIs(t, err, ErrBookingHasNoGeo)
}

func TestMatchRejectsUnconstructedProvider(t *testing.T) {
	serviceID := kernel.NewUUID()
	bkg := newMatchBooking(t, serviceID)

	candidates, err := NewProximityMatcher().Match(bkg, []*provider.Provider{{}})

	assert.Nil(t, candidates)
	assert.ErrorIs(t, err, provider.ErrProviderIsNotConstructed)
}
