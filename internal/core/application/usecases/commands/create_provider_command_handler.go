package commands

import (
	"context"

	"dispatch/internal/core/domain/model/provider"
)

// CreateProviderCommandHandler handles the business logic for provider registration.
// Creates new providers with their opening wallet balance and capability set.
type CreateProviderCommandHandler struct {
	uowFactory ProviderUoWFactory
}

// NewCreateProviderCommandHandler creates a handler for provider registration.
// Requires a ProviderUoWFactory for transactional persistence.
func NewCreateProviderCommandHandler(uowFactory ProviderUoWFactory) CreateProviderCommandHandler {
	return CreateProviderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the provider registration command.
// Uses a transaction to ensure the provider is properly persisted or rolled
// back on error.
func (h CreateProviderCommandHandler) Handle(ctx context.Context, command CreateProviderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newProvider, err := provider.NewProvider(
		command.ProviderID(),
		command.Name(),
		command.Wallet(),
		command.Location(),
		command.Capabilities(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProviderRepository().Add(ctx, newProvider); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
