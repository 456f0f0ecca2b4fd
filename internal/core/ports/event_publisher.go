package ports

import (
	"context"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
)

// Realtime event names pushed to connected providers and customers.
const (
	EventJobAvailable           = "job-available"
	EventJobTaken               = "job-taken"
	EventJobAccepted            = "job-accepted"
	EventJobCancelled           = "job-cancelled"
	EventJobUnavailable         = "job-unavailable"
	EventInsufficientBalance    = "insufficient-balance"
	EventDispatchError          = "dispatch-error"
	EventProviderLocationUpdate = "provider-location-update"
)

// Event is a named realtime notification with a JSON-serializable payload.
type Event struct {
	Name string
	Data any
}

// EventPublisher pushes realtime events to connected clients. Publishing is
// best effort and fire-and-forget for disconnected targets: command handlers
// call it strictly after their transaction commits, and a failed or dropped
// delivery never affects the committed state.
type EventPublisher interface {
	// PublishToAll delivers the event to every connected client.
	PublishToAll(event Event)

	// PublishToProvider delivers the event to the given provider if connected.
	// Disconnected providers are silently skipped.
	PublishToProvider(providerID kernel.UUID, event Event)

	// PublishToNearbyOnline delivers the event to every connected provider
	// that is eligible for the booking: within match radius of its position
	// and able to serve the booked catalog service.
	PublishToNearbyOnline(ctx context.Context, aggregate *booking.Booking, event Event) error
}
