package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetProviderBookingsQueryIsNotConstructed = errors.New(
	"GetProviderBookingsQuery must be created via NewGetProviderBookingsQuery constructor",
)

// GetProviderBookingsQuery retrieves the bookings assigned to a provider,
// newest first. The completion code is deliberately absent from this view:
// the provider learns it from the customer on site.
type GetProviderBookingsQuery struct {
	providerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProviderBookingsQuery creates a query for a provider's assigned bookings.
// Validates that the provider identifier is a valid UUID.
func NewGetProviderBookingsQuery(providerID kernel.UUID) (GetProviderBookingsQuery, error) {
	if err := providerID.Validate(); err != nil {
		return GetProviderBookingsQuery{}, err
	}

	return GetProviderBookingsQuery{
		providerID: providerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetProviderBookingsQueryIsNotConstructed if validation fails.
func (q GetProviderBookingsQuery) Validate() error {
	return q.guard.Validate(ErrGetProviderBookingsQueryIsNotConstructed)
}

// ProviderID returns the identifier of the provider.
func (q GetProviderBookingsQuery) ProviderID() kernel.UUID {
	return q.providerID
}

// GetProviderBookingsQueryResponse represents one booking in the provider's view.
type GetProviderBookingsQueryResponse struct {
	BookingID kernel.UUID
	ServiceID kernel.UUID
	OwnerID   kernel.UUID
	Status    string
	Address   string
	Price     float64
	CreatedAt time.Time
}
