package provider

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for provider operations.
var (
	// ErrNameIsRequired is returned when attempting to create a provider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrProviderIsNotConstructed is returned when using an improperly initialized Provider.
	ErrProviderIsNotConstructed = errors.New("Provider must be created via NewProvider or RestoreProvider constructor")
	// ErrWalletIsNegative is returned when attempting to create a provider with a negative wallet.
	ErrWalletIsNegative = errs.NewValueIsInvalidError("wallet balance")
	// ErrAmountIsInvalid is returned when a wallet operation amount is not positive.
	ErrAmountIsInvalid = errs.NewValueIsInvalidError("amount")
	// ErrInsufficientWallet is returned when a debit would push the wallet below zero.
	ErrInsufficientWallet = errors.New("wallet balance is insufficient")
)

// Provider represents a mobile service provider in the system.
// It is an aggregate root that manages provider identity, wallet balance,
// last known position and the set of catalog services the provider offers.
//
// Key responsibilities:
//   - Managing provider identity (ID, name)
//   - Holding the commission wallet with a non-negative balance invariant
//   - Tracking the last known geographic position
//   - Answering capability checks for candidate selection
//
// Business rules:
//   - Provider must have a valid UUID and non-empty name
//   - The wallet balance never goes negative; a debit that would do so fails
//     and leaves the balance unchanged
//   - The position is optional until the provider first reports a location
type Provider struct {
	// id uniquely identifies the provider
	id kernel.UUID
	// name is the human-readable name of the provider
	name string
	// wallet is the commission balance, never negative
	wallet float64
	// location is the last known position, nil until first reported
	location *kernel.GeoPoint
	// capabilities is the set of catalog service IDs this provider offers
	capabilities map[kernel.UUID]struct{}
	// guard ensures the provider was properly constructed
	guard guard.ConstructorGuard
}

// NewProvider creates a new Provider with the specified parameters.
// This is the only way, besides RestoreProvider, to create a valid instance.
//
// Parameters:
//   - id: Unique identifier for the provider (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - wallet: Initial wallet balance (must be non-negative)
//   - location: Last known position (nil if unknown)
//   - capabilities: Catalog service IDs the provider offers
//
// Returns:
//   - *Provider: A fully initialized provider
//   - error: Validation error if any parameter is invalid (aggregated errors for multiple issues)
func NewProvider(
	id kernel.UUID,
	name string,
	wallet float64,
	location *kernel.GeoPoint,
	capabilities []kernel.UUID,
) (*Provider, error) {
	provider := &Provider{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		provider.setID(id),
		provider.setName(name),
		provider.setWallet(wallet),
		provider.setLocation(location),
		provider.setCapabilities(capabilities),
	); err != nil {
		return nil, err
	}

	return provider, nil
}

// RestoreProvider reconstructs a Provider aggregate from persistent storage.
// The restored provider behaves identically to one created through normal
// domain operations. Construction rules are the same as NewProvider.
func RestoreProvider(
	id kernel.UUID,
	name string,
	wallet float64,
	location *kernel.GeoPoint,
	capabilities []kernel.UUID,
) (*Provider, error) {
	return NewProvider(id, name, wallet, location, capabilities)
}

// Validate checks if the Provider was properly constructed using a constructor.
// The zero value of Provider is invalid and will fail this validation.
func (p *Provider) Validate() error {
	if p == nil {
		return ErrProviderIsNotConstructed
	}
	return p.guard.Validate(ErrProviderIsNotConstructed)
}

// IsEqual compares two providers for equality based on their unique identifiers.
func (p *Provider) IsEqual(other *Provider) bool {
	if other == nil {
		return false
	}
	return p.id.IsEqual(other.id)
}

// ID returns the unique identifier of the provider.
func (p *Provider) ID() kernel.UUID {
	return p.id
}

// Name returns the human-readable name of the provider.
func (p *Provider) Name() string {
	return p.name
}

// Wallet returns the current wallet balance.
// The balance is guaranteed to be non-negative.
func (p *Provider) Wallet() float64 {
	return p.wallet
}

// Location returns the last known position of the provider.
// Returns nil if the provider has never reported a location.
func (p *Provider) Location() *kernel.GeoPoint {
	return p.location
}

// Capabilities returns the catalog service IDs this provider offers.
// The returned slice is a copy; mutating it does not affect the provider.
func (p *Provider) Capabilities() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(p.capabilities))
	for id := range p.capabilities {
		ids = append(ids, id)
	}
	return ids
}

// CanServe reports whether the provider offers the given catalog service.
func (p *Provider) CanServe(serviceID kernel.UUID) bool {
	_, ok := p.capabilities[serviceID]
	return ok
}

// DebitCommission removes the given amount from the wallet.
//
// Business rules:
//   - The amount must be positive
//   - The resulting balance must not be negative (ErrInsufficientWallet
//     otherwise, balance unchanged)
//
// This method only enforces the non-negative invariant; the minimum-balance
// admission check for job acceptance is an application concern driven by the
// platform settings.
func (p *Provider) DebitCommission(amount float64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}

	if p.wallet-amount < 0 {
		return ErrInsufficientWallet
	}

	p.wallet -= amount
	return nil
}

// CreditWallet adds the given amount to the wallet.
// The amount must be positive.
func (p *Provider) CreditWallet(amount float64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}

	p.wallet += amount
	return nil
}

// MoveTo updates the last known position of the provider.
func (p *Provider) MoveTo(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	p.location = &location
	return nil
}

// setID validates and sets the provider's unique identifier.
// This is a private method used only during construction.
func (p *Provider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setName validates and sets the provider's name.
// This is a private method used only during construction.
func (p *Provider) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

// setWallet validates and sets the initial wallet balance.
// This is a private method used only during construction.
func (p *Provider) setWallet(wallet float64) error {
	if wallet < 0 {
		return ErrWalletIsNegative
	}
	p.wallet = wallet
	return nil
}

// setLocation validates and sets the optional last known position.
// This is a private method used only during construction.
func (p *Provider) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	p.location = location
	return nil
}

// setCapabilities validates and sets the capability set.
// This is a private method used only during construction.
func (p *Provider) setCapabilities(capabilities []kernel.UUID) error {
	set := make(map[kernel.UUID]struct{}, len(capabilities))
	for _, id := range capabilities {
		if err := id.Validate(); err != nil {
			return err
		}
		set[id] = struct{}{}
	}
	p.capabilities = set
	return nil
}
