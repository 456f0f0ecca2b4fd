// Package ports defines repository and messaging interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
)

// BookingRepository defines the persistence contract for booking aggregates.
// Provides methods for storing, retrieving, and querying booking entities
// with their lifecycle status and provider assignment.
type BookingRepository interface {
	// Add persists a new booking aggregate to storage.
	// The booking must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *booking.Booking) error

	// Update persists changes to an existing booking aggregate.
	// The booking must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *booking.Booking) error

	// Get retrieves a booking aggregate by its unique identifier.
	// Returns the complete booking with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error)

	// GetForUpdate retrieves a booking aggregate by its unique identifier,
	// locking the underlying row for the duration of the current transaction.
	// Concurrent callers block until the lock is released, which serializes
	// competing acceptance attempts on the same booking.
	//
	// Must be called inside an active unit of work transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*booking.Booking, error)

	// GetAllPending retrieves all bookings awaiting provider acceptance,
	// oldest first. Used to re-offer unclaimed jobs.
	GetAllPending(ctx context.Context) ([]*booking.Booking, error)
}
