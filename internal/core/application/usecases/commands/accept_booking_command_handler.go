package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/provider"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrBookingNotFound is returned when the claimed booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrProviderNotFound is returned when the claiming provider does not exist.
	ErrProviderNotFound = errors.New("provider not found")
	// ErrBookingAlreadyProcessed is returned when the booking left Pending
	// status before the claim was settled, typically because another provider
	// won the race.
	ErrBookingAlreadyProcessed = errors.New("booking already processed")
	// ErrInsufficientBalance is returned when the provider's wallet is below
	// the platform minimum or cannot cover the commission. The booking stays
	// pending and remains claimable by others.
	ErrInsufficientBalance = errors.New("wallet balance is below the required minimum")
)

// AcceptBookingResult carries the settlement outcome back to the caller.
type AcceptBookingResult struct {
	// Commission is the amount debited from the provider's wallet.
	Commission float64
	// RemainingWallet is the provider's wallet balance after the debit.
	RemainingWallet float64
}

// AcceptBookingCommandHandler settles a provider's claim on a pending booking.
// At most one provider ever wins a booking: the booking row is locked for the
// duration of the transaction, so concurrent claims queue up and every claim
// after the first finds the booking no longer pending.
//
// Within one transaction the handler locks the booking, locks the provider,
// checks the platform minimum balance, debits the commission and confirms the
// booking. Realtime notifications are published strictly after the commit;
// a failed publish is logged and never affects the committed settlement.
//
// Example:
//
//	handler := NewAcceptBookingCommandHandler(uowFactory, publisher)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrBookingAlreadyProcessed):
//	    // 409: someone else was faster
//	case errors.Is(err, ErrInsufficientBalance):
//	    // 402: provider must top up the wallet
//	case err != nil:
//	    // other failure
//	default:
//	    log.Printf("won the job, commission %.2f", result.Commission)
//	}
type AcceptBookingCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewAcceptBookingCommandHandler creates a handler for booking acceptance.
// Requires a UoWFactory for the settlement transaction and an EventPublisher
// for post-commit notifications.
func NewAcceptBookingCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) AcceptBookingCommandHandler {
	return AcceptBookingCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the acceptance command.
//
// Settlement steps, all inside one transaction:
//  1. Lock the booking row. Missing booking -> ErrBookingNotFound.
//  2. Booking must still be Pending -> ErrBookingAlreadyProcessed otherwise.
//  3. Lock the provider row. Missing provider -> ErrProviderNotFound.
//  4. Wallet below the platform minimum -> ErrInsufficientBalance, rollback,
//     the booking stays pending.
//  5. Debit commission (price x commission percent / 100), confirm booking,
//     persist both, commit.
//
// After the commit the winner receives job-accepted and everyone else
// job-taken, which removes the offer from their screens.
func (h AcceptBookingCommandHandler) Handle(
	ctx context.Context,
	command AcceptBookingCommand,
) (AcceptBookingResult, error) {
	if err := command.Validate(); err != nil {
		return AcceptBookingResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AcceptBookingResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bookingRepo := uow.BookingRepository()
	providerRepo := uow.ProviderRepository()
	settingsRepo := uow.SettingsRepository()

	claimedBooking, err := bookingRepo.GetForUpdate(ctx, command.BookingID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AcceptBookingResult{}, ErrBookingNotFound
	}
	if err != nil {
		return AcceptBookingResult{}, err
	}

	if claimedBooking.Status() != booking.Pending {
		return AcceptBookingResult{}, ErrBookingAlreadyProcessed
	}

	claimingProvider, err := providerRepo.GetForUpdate(ctx, command.ProviderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AcceptBookingResult{}, ErrProviderNotFound
	}
	if err != nil {
		return AcceptBookingResult{}, err
	}

	platformSettings, err := settingsRepo.Get(ctx)
	if err != nil {
		return AcceptBookingResult{}, err
	}

	if claimingProvider.Wallet() < platformSettings.MinimumBalance() {
		return AcceptBookingResult{}, ErrInsufficientBalance
	}

	commission := platformSettings.CommissionFor(claimedBooking.PriceAtBooking())
	if commission > 0 {
		if err = claimingProvider.DebitCommission(commission); err != nil {
			if errors.Is(err, provider.ErrInsufficientWallet) {
				return AcceptBookingResult{}, ErrInsufficientBalance
			}
			return AcceptBookingResult{}, err
		}
	}

	if err = claimedBooking.Accept(claimingProvider.ID()); err != nil {
		return AcceptBookingResult{}, err
	}

	if err = bookingRepo.Update(ctx, claimedBooking); err != nil {
		return AcceptBookingResult{}, err
	}

	if err = providerRepo.Update(ctx, claimingProvider); err != nil {
		return AcceptBookingResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AcceptBookingResult{}, err
	}

	h.publisher.PublishToProvider(claimingProvider.ID(), ports.Event{
		Name: ports.EventJobAccepted,
		Data: bookingEventPayload(claimedBooking),
	})
	h.publisher.PublishToAll(ports.Event{
		Name: ports.EventJobTaken,
		Data: map[string]any{"bookingId": claimedBooking.ID().String()},
	})

	slog.Info("booking accepted",
		"bookingId", claimedBooking.ID().String(),
		"providerId", claimingProvider.ID().String(),
		"commission", commission,
	)

	return AcceptBookingResult{
		Commission:      commission,
		RemainingWallet: claimingProvider.Wallet(),
	}, nil
}
