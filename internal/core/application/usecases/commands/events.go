package commands

import (
	"dispatch/internal/core/domain/model/booking"
)

// bookingEventPayload builds the realtime payload describing a booking.
// Completion codes are never included: the code is a secret between the
// platform and the booking owner.
func bookingEventPayload(aggregate *booking.Booking) map[string]any {
	payload := map[string]any{
		"bookingId": aggregate.ID().String(),
		"serviceId": aggregate.ServiceID().String(),
		"address":   aggregate.Address(),
		"price":     aggregate.PriceAtBooking(),
		"status":    aggregate.Status().String(),
	}

	if geo := aggregate.Geo(); geo != nil {
		payload["latitude"] = geo.Latitude()
		payload["longitude"] = geo.Longitude()
	}

	return payload
}
