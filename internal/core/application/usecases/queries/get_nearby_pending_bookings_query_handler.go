package queries

import (
	"context"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrProviderLocationUnknown is returned when the asking provider has never
// reported a position. Distance cannot be computed, so the provider must send
// a location update first.
var ErrProviderLocationUnknown = errs.NewValueIsRequiredError("provider location")

// GetNearbyPendingBookingsQueryHandler retrieves claimable bookings around a
// provider. The distance filter runs in SQL with the same haversine formula
// and radius the push fan-out uses, so pull and push agree on what "nearby"
// means.
type GetNearbyPendingBookingsQueryHandler struct {
	db *gorm.DB
}

// NewGetNearbyPendingBookingsQueryHandler creates a handler for nearby booking queries.
// Requires a GORM database connection for query execution.
func NewGetNearbyPendingBookingsQueryHandler(db *gorm.DB) GetNearbyPendingBookingsQueryHandler {
	return GetNearbyPendingBookingsQueryHandler{db: db}
}

// Handle executes the query for claimable nearby bookings.
// Returns pending bookings with coordinates, limited to catalog services the
// provider offers, within the match radius, nearest first with ties broken by
// booking id. Fails with ErrProviderLocationUnknown when the provider has no
// known position and errs.ErrObjectNotFound when the provider does not exist.
func (h GetNearbyPendingBookingsQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyPendingBookingsQuery,
) ([]GetNearbyPendingBookingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var origin struct {
		Latitude  *float64
		Longitude *float64
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT latitude, longitude
		FROM providers
		WHERE id = ?
	`, query.ProviderID().String()).Scan(&origin)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("providerID", query.ProviderID())
	}
	if origin.Latitude == nil || origin.Longitude == nil {
		return nil, ErrProviderLocationUnknown
	}

	bookings := make([]GetNearbyPendingBookingsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, service_id, address, latitude, longitude, price_at_booking, created_at, distance_km
		FROM (
			SELECT
				b.id,
				b.service_id,
				b.address,
				b.latitude,
				b.longitude,
				b.price_at_booking,
				b.created_at,
				6371 * acos(LEAST(1.0,
					cos(radians(?)) * cos(radians(b.latitude)) * cos(radians(b.longitude) - radians(?))
					+ sin(radians(?)) * sin(radians(b.latitude))
				)) AS distance_km
			FROM bookings b
			JOIN provider_capabilities pc
				ON pc.service_id = b.service_id AND pc.provider_id = ?
			WHERE b.status = ?
				AND b.latitude IS NOT NULL
				AND b.longitude IS NOT NULL
		) nearby
		WHERE distance_km <= ?
		ORDER BY distance_km, id
	`,
		*origin.Latitude, *origin.Longitude, *origin.Latitude,
		query.ProviderID().String(),
		int(booking.Pending),
		services.MatchRadiusKm,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetNearbyPendingBookingsQueryResponse
		var id, serviceID uuid.UUID

		err = rows.Scan(
			&id,
			&serviceID,
			&response.Address,
			&response.Latitude,
			&response.Longitude,
			&response.Price,
			&response.CreatedAt,
			&response.DistanceKm,
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

		bookings = append(bookings, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
