package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// UpdateProviderLocationCommandHandler records a provider's last known position.
// The position feeds proximity matching for job offers and the nearby pull query.
type UpdateProviderLocationCommandHandler struct {
	uowFactory ProviderUoWFactory
}

// NewUpdateProviderLocationCommandHandler creates a handler for position updates.
// Requires a ProviderUoWFactory for transactional persistence.
func NewUpdateProviderLocationCommandHandler(uowFactory ProviderUoWFactory) UpdateProviderLocationCommandHandler {
	return UpdateProviderLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the position update command.
// Locks the provider, moves it to the reported position and persists it.
// The locked read matters: persisting the aggregate writes every column, so
// an unlocked snapshot taken while an acceptance settles would write back the
// pre-debit wallet balance on commit.
func (h UpdateProviderLocationCommandHandler) Handle(
	ctx context.Context,
	command UpdateProviderLocationCommand,
) error {
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

	movedProvider, err := providerRepo.GetForUpdate(ctx, command.ProviderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrProviderNotFound
	}
	if err != nil {
		return err
	}

	if err = movedProvider.MoveTo(command.Location()); err != nil {
		return err
	}

	if err = providerRepo.Update(ctx, movedProvider); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
