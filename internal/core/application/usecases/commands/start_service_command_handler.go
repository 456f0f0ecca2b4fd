package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// StartServiceCommandHandler marks a confirmed booking as on the way.
// Only the provider assigned to the booking may report departure.
type StartServiceCommandHandler struct {
	uowFactory BookingUoWFactory
}

// NewStartServiceCommandHandler creates a handler for start-of-service operations.
// Requires a BookingUoWFactory for transactional persistence.
func NewStartServiceCommandHandler(uowFactory BookingUoWFactory) StartServiceCommandHandler {
	return StartServiceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command.
// Loads the booking, verifies the caller is the assigned provider and moves
// the booking from "confirmed" to "on_the_way".
func (h StartServiceCommandHandler) Handle(ctx context.Context, command StartServiceCommand) error {
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

	startedBooking, err := bookingRepo.Get(ctx, command.BookingID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}

	if err = startedBooking.Start(command.ProviderID()); err != nil {
		return err
	}

	if err = bookingRepo.Update(ctx, startedBooking); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
