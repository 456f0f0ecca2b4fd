package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrTopUpWalletCommandIsNotConstructed = errors.New(
		"TopUpWalletCommand must be created via NewTopUpWalletCommand constructor",
	)
	ErrAmountIsInvalid = errors.New("amount must be greater than 0")
)

// TopUpWalletCommand represents a provider crediting their commission wallet.
// The payment itself is settled by an external gateway; this command records
// the resulting credit.
type TopUpWalletCommand struct { //nolint:recvcheck //using for validation
	providerID kernel.UUID
	amount     float64

	guard guard.ConstructorGuard
}

// NewTopUpWalletCommand creates a command to credit a provider's wallet.
// Validates that the identifier is a valid UUID and the amount is positive.
func NewTopUpWalletCommand(providerID kernel.UUID, amount float64) (TopUpWalletCommand, error) {
	topUpCommand := TopUpWalletCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		topUpCommand.setProviderID(providerID),
		topUpCommand.setAmount(amount),
	); err != nil {
		return TopUpWalletCommand{}, err
	}

	return topUpCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTopUpWalletCommandIsNotConstructed if validation fails.
func (c TopUpWalletCommand) Validate() error {
	return c.guard.Validate(ErrTopUpWalletCommandIsNotConstructed)
}

// ProviderID returns the identifier of the provider being credited.
func (c TopUpWalletCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// Amount returns the credited amount.
func (c TopUpWalletCommand) Amount() float64 {
	return c.amount
}

func (c *TopUpWalletCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	c.providerID = providerID
	return nil
}

func (c *TopUpWalletCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}
