package queries

import (
	"context"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProviderBookingsQueryHandler retrieves a provider's assigned bookings
// from the database. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
type GetProviderBookingsQueryHandler struct {
	db *gorm.DB
}

// NewGetProviderBookingsQueryHandler creates a handler for provider booking queries.
// Requires a GORM database connection for query execution.
func NewGetProviderBookingsQueryHandler(db *gorm.DB) GetProviderBookingsQueryHandler {
	return GetProviderBookingsQueryHandler{db: db}
}

// Handle executes the query for the provider's assigned bookings, newest first.
func (h GetProviderBookingsQueryHandler) Handle(
	ctx context.Context,
	query GetProviderBookingsQuery,
) ([]GetProviderBookingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	bookings := make([]GetProviderBookingsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, service_id, owner_id, status, address, price_at_booking, created_at
		FROM bookings
		WHERE provider_id = ?
		ORDER BY created_at DESC, id
	`, query.ProviderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetProviderBookingsQueryResponse
		var id, serviceID, ownerID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&serviceID,
			&ownerID,
			&status,
			&response.Address,
			&response.Price,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		bookingID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.BookingID = bookingID

		bookedServiceID, idErr := kernel.UUIDFromBytes(serviceID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ServiceID = bookedServiceID

		bookingOwnerID, idErr := kernel.UUIDFromBytes(ownerID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.OwnerID = bookingOwnerID

		response.Status = booking.Status(status).String()
		bookings = append(bookings, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
