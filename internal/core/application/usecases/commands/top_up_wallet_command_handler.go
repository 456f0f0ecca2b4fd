package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// TopUpWalletCommandHandler credits a provider's commission wallet.
// The provider row is locked so a concurrent acceptance cannot interleave
// with the credit.
type TopUpWalletCommandHandler struct {
	uowFactory ProviderUoWFactory
}

// NewTopUpWalletCommandHandler creates a handler for wallet top-up operations.
// Requires a ProviderUoWFactory for transactional persistence.
func NewTopUpWalletCommandHandler(uowFactory ProviderUoWFactory) TopUpWalletCommandHandler {
	return TopUpWalletCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the top-up command.
// Locks the provider, credits the wallet and persists the new balance.
func (h TopUpWalletCommandHandler) Handle(ctx context.Context, command TopUpWalletCommand) error {
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

	providerRepo := uow.ProviderRepository()

	creditedProvider, err := providerRepo.GetForUpdate(ctx, command.ProviderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrProviderNotFound
	}
	if err != nil {
		return err
	}

	if err = creditedProvider.CreditWallet(command.Amount()); err != nil {
		return err
	}

	if err = providerRepo.Update(ctx, creditedProvider); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
