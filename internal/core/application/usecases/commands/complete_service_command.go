package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteServiceCommandIsNotConstructed = errors.New(
	"CompleteServiceCommand must be created via NewCompleteServiceCommand constructor",
)

// CompleteServiceCommand represents the assigned provider finishing the job.
// Carries the completion code the customer read out on site; the code must
// match the one generated at booking creation.
type CompleteServiceCommand struct { //nolint:recvcheck //using for validation
	bookingID      kernel.UUID
	providerID     kernel.UUID
	completionCode string

	guard guard.ConstructorGuard
}

// NewCompleteServiceCommand creates a command to complete an on-the-way booking.
// Validates that both identifiers are valid UUIDs and that the supplied code
// has the completion code shape. Whether the code is the right one is decided
// against the booking itself during handling.
func NewCompleteServiceCommand(
	bookingID kernel.UUID,
	providerID kernel.UUID,
	completionCode string,
) (CompleteServiceCommand, error) {
	completeCommand := CompleteServiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		completeCommand.setBookingID(bookingID),
		completeCommand.setProviderID(providerID),
		completeCommand.setCompletionCode(completionCode),
	); err != nil {
		return CompleteServiceCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteServiceCommandIsNotConstructed if validation fails.
func (c CompleteServiceCommand) Validate() error {
	return c.guard.Validate(ErrCompleteServiceCommandIsNotConstructed)
}

// BookingID returns the identifier of the booking being completed.
func (c CompleteServiceCommand) BookingID() kernel.UUID {
	return c.bookingID
}

// ProviderID returns the identifier of the assigned provider.
func (c CompleteServiceCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// CompletionCode returns the code supplied by the provider.
func (c CompleteServiceCommand) CompletionCode() string {
	return c.completionCode
}

func (c *CompleteServiceCommand) setBookingID(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}

	c.bookingID = bookingID
	return nil
}

func (c *CompleteServiceCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	c.providerID = providerID
	return nil
}

func (c *CompleteServiceCommand) setCompletionCode(completionCode string) error {
	if err := booking.ValidateCompletionCode(completionCode); err != nil {
		return err
	}

	c.completionCode = completionCode
	return nil
}
