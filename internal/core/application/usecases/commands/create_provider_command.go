package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateProviderCommandIsNotConstructed = errors.New(
		"CreateProviderCommand must be created via NewCreateProviderCommand constructor",
	)
	ErrNameIsRequired   = errors.New("name is required")
	ErrWalletIsNegative = errors.New("wallet must not be negative")
)

// CreateProviderCommand represents a request to register a new service provider.
// Encapsulates the provider's name, opening wallet balance, optional starting
// position and the catalog services the provider offers.
type CreateProviderCommand struct { //nolint:recvcheck //using for validation
	providerID   kernel.UUID
	name         string
	wallet       float64
	location     *kernel.GeoPoint
	capabilities []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateProviderCommand creates a command to register a new provider.
// Validates that the identifier is valid, the name is not empty, the wallet
// is non-negative and every capability identifier is a valid UUID.
func NewCreateProviderCommand(
	providerID kernel.UUID,
	name string,
	wallet float64,
	location *kernel.GeoPoint,
	capabilities []kernel.UUID,
) (CreateProviderCommand, error) {
	providerCommand := CreateProviderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		providerCommand.setProviderID(providerID),
		providerCommand.setName(name),
		providerCommand.setWallet(wallet),
		providerCommand.setLocation(location),
		providerCommand.setCapabilities(capabilities),
	); err != nil {
		return CreateProviderCommand{}, err
	}

	return providerCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateProviderCommandIsNotConstructed if validation fails.
func (c CreateProviderCommand) Validate() error {
	return c.guard.Validate(ErrCreateProviderCommandIsNotConstructed)
}

// ProviderID returns the unique identifier for the provider.
func (c CreateProviderCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// Name returns the provider's human-readable name.
func (c CreateProviderCommand) Name() string {
	return c.name
}

// Wallet returns the opening wallet balance.
func (c CreateProviderCommand) Wallet() float64 {
	return c.wallet
}

// Location returns the optional starting position.
func (c CreateProviderCommand) Location() *kernel.GeoPoint {
	return c.location
}

// Capabilities returns the catalog service identifiers the provider offers.
func (c CreateProviderCommand) Capabilities() []kernel.UUID {
	return c.capabilities
}

func (c *CreateProviderCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	c.providerID = providerID
	return nil
}

func (c *CreateProviderCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateProviderCommand) setWallet(wallet float64) error {
	if wallet < 0 {
		return ErrWalletIsNegative
	}

	c.wallet = wallet
	return nil
}

func (c *CreateProviderCommand) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *CreateProviderCommand) setCapabilities(capabilities []kernel.UUID) error {
	for _, id := range capabilities {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.capabilities = capabilities
	return nil
}
