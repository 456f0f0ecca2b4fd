package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartServiceCommandIsNotConstructed = errors.New(
	"StartServiceCommand must be created via NewStartServiceCommand constructor",
)

// StartServiceCommand represents the assigned provider reporting departure
// towards the service location.
type StartServiceCommand struct { //nolint:recvcheck //using for validation
	bookingID  kernel.UUID
	providerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartServiceCommand creates a command marking a confirmed booking as on the way.
// Validates that both identifiers are valid UUIDs.
func NewStartServiceCommand(bookingID, providerID kernel.UUID) (StartServiceCommand, error) {
	startCommand := StartServiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		startCommand.setBookingID(bookingID),
		startCommand.setProviderID(providerID),
	); err != nil {
		return StartServiceCommand{}, err
	}

	return startCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartServiceCommandIsNotConstructed if validation fails.
func (c StartServiceCommand) Validate() error {
	return c.guard.Validate(ErrStartServiceCommandIsNotConstructed)
}

// BookingID returns the identifier of the booking being started.
func (c StartServiceCommand) BookingID() kernel.UUID {
	return c.bookingID
}

// ProviderID returns the identifier of the assigned provider.
func (c StartServiceCommand) ProviderID() kernel.UUID {
	return c.providerID
}

func (c *StartServiceCommand) setBookingID(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}

	c.bookingID = bookingID
	return nil
}

func (c *StartServiceCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	c.providerID = providerID
	return nil
}
