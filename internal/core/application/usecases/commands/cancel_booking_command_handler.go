package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CancelBookingCommandHandler withdraws a pending booking on the owner's behalf.
// Cancellation is rejected once a provider has accepted: the booking has left
// Pending status by then and the row lock taken here serializes against any
// in-flight acceptance.
type CancelBookingCommandHandler struct {
	uowFactory BookingUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelBookingCommandHandler creates a handler for booking cancellation.
// Requires a BookingUoWFactory for transactional persistence and an
// EventPublisher for the post-commit offer withdrawal.
func NewCancelBookingCommandHandler(
	uowFactory BookingUoWFactory,
	publisher ports.EventPublisher,
) CancelBookingCommandHandler {
	return CancelBookingCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
// Locks the booking, verifies the caller owns it and moves it from "pending"
// to its terminal "cancelled" status. Strictly after the commit a
// job-cancelled event is broadcast so providers drop the stale offer.
func (h CancelBookingCommandHandler) Handle(ctx context.Context, command CancelBookingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bookingRepo := uow.BookingRepository()

	cancelledBooking, err := bookingRepo.GetForUpdate(ctx, command.BookingID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}

	if err = cancelledBooking.Cancel(command.OwnerID()); err != nil {
		return err
	}

	if err = bookingRepo.Update(ctx, cancelledBooking); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishToAll(ports.Event{
		Name: ports.EventJobCancelled,
		Data: map[string]any{"bookingId": cancelledBooking.ID().String()},
	})

	return nil
}
