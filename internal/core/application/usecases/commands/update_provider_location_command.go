package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateProviderLocationCommandIsNotConstructed = errors.New(
	"UpdateProviderLocationCommand must be created via NewUpdateProviderLocationCommand constructor",
)

// UpdateProviderLocationCommand represents a provider reporting its current
// position. Issued by the realtime provider-location event and by the HTTP
// location endpoint.
type UpdateProviderLocationCommand struct { //nolint:recvcheck //using for validation
	providerID kernel.UUID
	location   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateProviderLocationCommand creates a command to record a provider position.
// Validates that the identifier is a valid UUID and the position is well-formed.
func NewUpdateProviderLocationCommand(
	providerID kernel.UUID,
	location kernel.GeoPoint,
) (UpdateProviderLocationCommand, error) {
	locationCommand := UpdateProviderLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		locationCommand.setProviderID(providerID),
		locationCommand.setLocation(location),
	); err != nil {
		return UpdateProviderLocationCommand{}, err
	}

	return locationCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateProviderLocationCommandIsNotConstructed if validation fails.
func (c UpdateProviderLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProviderLocationCommandIsNotConstructed)
}

// ProviderID returns the identifier of the reporting provider.
func (c UpdateProviderLocationCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// Location returns the reported position.
func (c UpdateProviderLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateProviderLocationCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	c.providerID = providerID
	return nil
}

func (c *UpdateProviderLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
