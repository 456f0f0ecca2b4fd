package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptBookingCommandIsNotConstructed = errors.New(
	"AcceptBookingCommand must be created via NewAcceptBookingCommand constructor",
)

// AcceptBookingCommand represents a provider's attempt to claim a pending booking.
// The same command is issued by the HTTP endpoint and by the realtime accept-job
// event, so both paths share one settlement protocol.
//
// Example:
//
//	cmd, err := NewAcceptBookingCommand(bookingID, providerID)
//	if err != nil {
//	    return fmt.Errorf("invalid acceptance data: %w", err)
//	}
//
//	handler := NewAcceptBookingCommandHandler(uowFactory, publisher)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrBookingAlreadyProcessed) {
//	    // Another provider claimed the booking first
//	    return
//	}
type AcceptBookingCommand struct { //nolint:recvcheck //using for validation
	bookingID  kernel.UUID
	providerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptBookingCommand creates a command for a provider to claim a booking.
// Validates that both identifiers are valid UUIDs.
func NewAcceptBookingCommand(bookingID, providerID kernel.UUID) (AcceptBookingCommand, error) {
	acceptCommand := AcceptBookingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setBookingID(bookingID),
		acceptCommand.setProviderID(providerID),
	); err != nil {
		return AcceptBookingCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptBookingCommandIsNotConstructed if validation fails.
func (c AcceptBookingCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBookingCommandIsNotConstructed)
}

// BookingID returns the identifier of the booking being claimed.
func (c AcceptBookingCommand) BookingID() kernel.UUID {
	return c.bookingID
}

// ProviderID returns the identifier of the claiming provider.
func (c AcceptBookingCommand) ProviderID() kernel.UUID {
	return c.providerID
}

func (c *AcceptBookingCommand) setBookingID(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}

	c.bookingID = bookingID
	return nil
}

func (c *AcceptBookingCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	c.providerID = providerID
	return nil
}
