package services

import (
	"errors"
	"sort"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/provider"
)

// MatchRadiusKm is the maximum distance between a booking and a provider
// for the provider to be considered a candidate.
const MatchRadiusKm = 20.0

// ErrBookingHasNoGeo is returned when a booking without a geographic position
// is submitted for candidate matching. Proximity cannot be computed without it.
var ErrBookingHasNoGeo = errors.New("booking has no geographic position")

// Candidate pairs a provider with the computed distance to a booking.
type Candidate struct {
	Provider   *provider.Provider
	DistanceKm float64
}

// ProximityMatcher is a domain service that selects which providers should be
// offered a booking, based on geographic proximity and service capability.
//
// Key responsibilities:
//   - Validating the booking and every candidate provider
//   - Filtering providers by capability and match radius
//   - Ordering candidates deterministically
//
// Business rules:
//   - The booking must be valid and carry a geographic position
//   - Providers without a known position are never candidates
//   - Only providers able to serve the booked catalog service qualify
//   - Candidates further than MatchRadiusKm are excluded
//   - Candidates are ordered by ascending distance; ties break on
//     ascending provider ID so the order is stable across runs
type ProximityMatcher struct{}

// NewProximityMatcher creates a new ProximityMatcher instance.
//
// Returns:
//   - ProximityMatcher: A new instance ready for matching operations
func NewProximityMatcher() ProximityMatcher {
	return ProximityMatcher{}
}

// Match returns the providers eligible to be offered the given booking,
// ordered nearest first.
//
// Parameters:
//   - bkg: The booking to find candidates for (must be valid and have a position)
//   - providers: Slice of providers to evaluate
//
// Returns:
//   - []Candidate: Eligible providers with their distance, nearest first.
//     Empty when no provider qualifies.
//   - error: ErrBookingHasNoGeo if the booking has no position, or validation errors
func (m ProximityMatcher) Match(bkg *booking.Booking, providers []*provider.Provider) ([]Candidate, error) {
	if err := bkg.Validate(); err != nil {
		return nil, err
	}

	geo := bkg.Geo()
	if geo == nil {
		return nil, ErrBookingHasNoGeo
	}

	candidates := make([]Candidate, 0, len(providers))
	for _, p := range providers {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		location := p.Location()
		if location == nil {
			continue
		}

		if !p.CanServe(bkg.ServiceID()) {
			continue
		}

		distance, err := geo.DistanceKm(*location)
		if err != nil {
			return nil, err
		}

		if distance > MatchRadiusKm {
			continue
		}

		candidates = append(candidates, Candidate{Provider: p, DistanceKm: distance})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].DistanceKm != candidates[j].DistanceKm {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		}
		return candidates[i].Provider.ID().String() < candidates[j].Provider.ID().String()
	})

	return candidates, nil
}
