package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// CompleteServiceCommandHandler finishes an on-the-way booking.
// Completion is gated on the code generated at booking creation: the customer
// reads it out on site and a wrong code leaves the booking untouched, so the
// provider can retry with the correct one.
type CompleteServiceCommandHandler struct {
	uowFactory BookingUoWFactory
}

// NewCompleteServiceCommandHandler creates a handler for service completion.
// Requires a BookingUoWFactory for transactional persistence.
func NewCompleteServiceCommandHandler(uowFactory BookingUoWFactory) CompleteServiceCommandHandler {
	return CompleteServiceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command.
// Loads the booking, verifies the caller is the assigned provider and that the
// supplied code matches, then moves the booking to its terminal "completed"
// status. A code mismatch surfaces booking.ErrInvalidCompletionCode.
func (h CompleteServiceCommandHandler) Handle(ctx context.Context, command CompleteServiceCommand) error {
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

	completedBooking, err := bookingRepo.Get(ctx, command.BookingID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}

	if err = completedBooking.Complete(command.ProviderID(), command.CompletionCode()); err != nil {
		return err
	}

	if err = bookingRepo.Update(ctx, completedBooking); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
