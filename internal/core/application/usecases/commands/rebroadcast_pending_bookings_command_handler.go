package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
)

// RebroadcastPendingBookingsCommandHandler re-offers unclaimed bookings to
// nearby online providers. Runs periodically so providers who came online
// after a booking was created still hear about it.
type RebroadcastPendingBookingsCommandHandler struct {
	uowFactory BookingUoWFactory
	publisher  ports.EventPublisher
}

// NewRebroadcastPendingBookingsCommandHandler creates a handler for the
// periodic re-offer of pending bookings.
func NewRebroadcastPendingBookingsCommandHandler(
	uowFactory BookingUoWFactory,
	publisher ports.EventPublisher,
) RebroadcastPendingBookingsCommandHandler {
	return RebroadcastPendingBookingsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the re-broadcast command.
// Loads every pending booking and publishes a job-available offer for each to
// the nearby online providers able to serve it. Bookings without coordinates
// are skipped by the publisher and remain reachable through the pull endpoint.
// Delivery is best effort: a failed publish for one booking is logged and does
// not stop the others.
func (h RebroadcastPendingBookingsCommandHandler) Handle(
	ctx context.Context,
	command RebroadcastPendingBookingsCommand,
) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	pending, err := uow.BookingRepository().GetAllPending(ctx)
	if err != nil {
		return err
	}

	for _, pendingBooking := range pending {
		offer := ports.Event{
			Name: ports.EventJobAvailable,
			Data: bookingEventPayload(pendingBooking),
		}
		if err = h.publisher.PublishToNearbyOnline(ctx, pendingBooking, offer); err != nil {
			slog.Error("failed to re-offer pending booking",
				"bookingId", pendingBooking.ID().String(),
				"error", err)
		}
	}

	return nil
}
