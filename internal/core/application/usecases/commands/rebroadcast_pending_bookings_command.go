package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrRebroadcastPendingBookingsCommandIsNotConstructed = errors.New(
	"RebroadcastPendingBookingsCommand must be created via NewRebroadcastPendingBookingsCommand constructor",
)

// RebroadcastPendingBookingsCommand triggers a re-offer of every unclaimed
// booking to nearby online providers. Providers who connect after a booking
// was created never saw its original offer; the periodic re-broadcast keeps
// those bookings discoverable until someone accepts or the owner cancels.
//
// Example:
//
//	cmd := NewRebroadcastPendingBookingsCommand()
//	handler := NewRebroadcastPendingBookingsCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Re-broadcast failed: %v", err)
//	}
type RebroadcastPendingBookingsCommand struct {
	guard guard.ConstructorGuard
}

// NewRebroadcastPendingBookingsCommand creates a new command to re-offer
// pending bookings. This is a parameterless command.
func NewRebroadcastPendingBookingsCommand() RebroadcastPendingBookingsCommand {
	return RebroadcastPendingBookingsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRebroadcastPendingBookingsCommandIsNotConstructed if validation fails.
func (c *RebroadcastPendingBookingsCommand) Validate() error {
	return c.guard.Validate(
		ErrRebroadcastPendingBookingsCommandIsNotConstructed,
	)
}
