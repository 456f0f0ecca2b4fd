package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/ports"
)

// CreateBookingCommandHandler handles the business logic for booking creation.
// Creates new bookings in "pending" status with a generated completion code,
// then offers the job to nearby online providers.
//
// Example:
//
//	handler := NewCreateBookingCommandHandler(uowFactory, publisher)
//	bookingID := kernel.NewUUID()
//	cmd, _ := NewCreateBookingCommand(bookingID, ownerID, serviceID,
//	    "45 MG Road", &geo, 300)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("booking creation failed: %w", err)
//	}
//	// Booking is now pending and offered to nearby providers
type CreateBookingCommandHandler struct {
	uowFactory BookingUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateBookingCommandHandler creates a handler for booking creation operations.
// Requires a BookingUoWFactory for transactional persistence and an
// EventPublisher for the post-commit job offer.
func NewCreateBookingCommandHandler(
	uowFactory BookingUoWFactory,
	publisher ports.EventPublisher,
) CreateBookingCommandHandler {
	return CreateBookingCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the booking creation command.
// Generates the completion code, persists the booking in "pending" status and,
// strictly after the commit, publishes a job-available offer to nearby online
// providers able to serve the booked catalog service. A failed publish is
// logged and does not fail the creation: the pull endpoint and the periodic
// re-broadcast keep the booking discoverable.
func (h CreateBookingCommandHandler) Handle(ctx context.Context, command CreateBookingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newBooking, err := booking.NewBooking(
		command.BookingID(),
		command.OwnerID(),
		command.ServiceID(),
		command.Address(),
		command.Geo(),
		command.Price(),
		booking.NewCompletionCode(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BookingRepository().Add(ctx, newBooking); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	offer := ports.Event{
		Name: ports.EventJobAvailable,
		Data: bookingEventPayload(newBooking),
	}
	if err = h.publisher.PublishToNearbyOnline(ctx, newBooking, offer); err != nil {
		slog.Error("failed to offer booking to nearby providers",
			"bookingId", newBooking.ID().String(),
			"error", err,
		)
	}

	return nil
}
