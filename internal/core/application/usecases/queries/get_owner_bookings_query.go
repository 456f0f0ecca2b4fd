package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOwnerBookingsQueryIsNotConstructed = errors.New(
	"GetOwnerBookingsQuery must be created via NewGetOwnerBookingsQuery constructor",
)

// GetOwnerBookingsQuery retrieves a customer's bookings, newest first.
// The owner view includes the completion code: the customer reads it out to
// the provider when the job is done.
type GetOwnerBookingsQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOwnerBookingsQuery creates a query for a customer's booking history.
// Validates that the owner identifier is a valid UUID.
func NewGetOwnerBookingsQuery(ownerID kernel.UUID) (GetOwnerBookingsQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetOwnerBookingsQuery{}, err
	}

	return GetOwnerBookingsQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOwnerBookingsQueryIsNotConstructed if validation fails.
func (q GetOwnerBookingsQuery) Validate() error {
	return q.guard.Validate(ErrGetOwnerBookingsQueryIsNotConstructed)
}

// OwnerID returns the identifier of the customer.
func (q GetOwnerBookingsQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// GetOwnerBookingsQueryResponse represents one booking in the owner's view.
type GetOwnerBookingsQueryResponse struct {
	BookingID      kernel.UUID
	ServiceID      kernel.UUID
	ProviderID     *kernel.UUID
	Status         string
	Address        string
	Price          float64
	CompletionCode string
	CreatedAt      time.Time
}
