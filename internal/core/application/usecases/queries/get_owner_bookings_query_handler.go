package queries

import (
	"context"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOwnerBookingsQueryHandler retrieves a customer's booking history from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
type GetOwnerBookingsQueryHandler struct {
	db *gorm.DB
}

// NewGetOwnerBookingsQueryHandler creates a handler for owner booking queries.
// Requires a GORM database connection for query execution.
func NewGetOwnerBookingsQueryHandler(db *gorm.DB) GetOwnerBookingsQueryHandler {
	return GetOwnerBookingsQueryHandler{db: db}
}

// Handle executes the query for the customer's bookings, newest first.
func (h GetOwnerBookingsQueryHandler) Handle(
	ctx context.Context,
	query GetOwnerBookingsQuery,
) ([]GetOwnerBookingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	bookings := make([]GetOwnerBookingsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, service_id, provider_id, status, address, price_at_booking, completion_code, created_at
		FROM bookings
		WHERE owner_id = ?
		ORDER BY created_at DESC, id
	`, query.OwnerID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetOwnerBookingsQueryResponse
		var id, serviceID uuid.UUID
		var providerID *uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&serviceID,
			&providerID,
			&status,
			&response.Address,
			&response.Price,
			&response.CompletionCode,
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

		if providerID != nil {
			assignedProviderID, idErr := kernel.UUIDFromBytes(providerID[:])
			if idErr != nil {
				return nil, idErr
			}
			response.ProviderID = &assignedProviderID
		}

		response.Status = booking.Status(status).String()
		bookings = append(bookings, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
