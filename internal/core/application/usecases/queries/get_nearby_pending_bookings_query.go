// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetNearbyPendingBookingsQueryIsNotConstructed = errors.New(
	"GetNearbyPendingBookingsQuery must be created via NewGetNearbyPendingBookingsQuery constructor",
)

// GetNearbyPendingBookingsQuery retrieves the pending bookings a provider can
// claim: within match radius of the provider's last known position and limited
// to the catalog services the provider offers. This is the pull complement of
// the realtime job offer, used when a provider reconnects or opens the job list.
//
// Example:
//
//	query, err := NewGetNearbyPendingBookingsQuery(providerID)
//	if err != nil {
//	    return fmt.Errorf("invalid provider: %w", err)
//	}
//
//	handler := NewGetNearbyPendingBookingsQueryHandler(db)
//	jobs, err := handler.Handle(ctx, query)
type GetNearbyPendingBookingsQuery struct {
	providerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNearbyPendingBookingsQuery creates a query for claimable nearby bookings.
// Validates that the provider identifier is a valid UUID.
func NewGetNearbyPendingBookingsQuery(providerID kernel.UUID) (GetNearbyPendingBookingsQuery, error) {
	if err := providerID.Validate(); err != nil {
		return GetNearbyPendingBookingsQuery{}, err
	}

	return GetNearbyPendingBookingsQuery{
		providerID: providerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetNearbyPendingBookingsQueryIsNotConstructed if validation fails.
func (q GetNearbyPendingBookingsQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyPendingBookingsQueryIsNotConstructed)
}

// ProviderID returns the identifier of the asking provider.
func (q GetNearbyPendingBookingsQuery) ProviderID() kernel.UUID {
	return q.providerID
}

// GetNearbyPendingBookingsQueryResponse represents a claimable booking in the
// read model, together with the distance from the provider's position.
type GetNearbyPendingBookingsQueryResponse struct {
	BookingID  kernel.UUID
	ServiceID  kernel.UUID
	Address    string
	Latitude   float64
	Longitude  float64
	Price      float64
	DistanceKm float64
	CreatedAt  time.Time
}
