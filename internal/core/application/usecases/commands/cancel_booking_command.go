package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelBookingCommandIsNotConstructed = errors.New(
	"CancelBookingCommand must be created via NewCancelBookingCommand constructor",
)

// CancelBookingCommand represents the booking owner withdrawing a booking
// before any provider accepted it.
type CancelBookingCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.UUID
	ownerID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelBookingCommand creates a command to cancel a pending booking.
// Validates that both identifiers are valid UUIDs.
func NewCancelBookingCommand(bookingID, ownerID kernel.UUID) (CancelBookingCommand, error) {
	cancelCommand := CancelBookingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cancelCommand.setBookingID(bookingID),
		cancelCommand.setOwnerID(ownerID),
	); err != nil {
		return CancelBookingCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelBookingCommandIsNotConstructed if validation fails.
func (c CancelBookingCommand) Validate() error {
	return c.guard.Validate(ErrCancelBookingCommandIsNotConstructed)
}

// BookingID returns the identifier of the booking being cancelled.
func (c CancelBookingCommand) BookingID() kernel.UUID {
	return c.bookingID
}

// OwnerID returns the identifier of the requesting customer.
func (c CancelBookingCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

func (c *CancelBookingCommand) setBookingID(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}

	c.bookingID = bookingID
	return nil
}

func (c *CancelBookingCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}
