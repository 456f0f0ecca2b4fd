package settings

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Validation boundaries for commission percent.
const (
	CommissionPercentMin = 0.0
	CommissionPercentMax = 100.0
)

// Domain errors for platform settings.
var (
	// ErrSettingsAreNotConstructed is returned when using improperly initialized PlatformSettings.
	ErrSettingsAreNotConstructed = errors.New("PlatformSettings must be created via NewPlatformSettings constructor")
	// ErrMinimumBalanceIsNegative is returned when the minimum balance threshold is negative.
	ErrMinimumBalanceIsNegative = errs.NewValueIsInvalidError("minimum balance")
)

// PlatformSettings is a value object holding the platform-wide dispatch
// parameters configured by the administrator.
//
// Business rules:
//   - The minimum balance threshold must be non-negative
//   - The commission percent must be between 0 and 100 inclusive
type PlatformSettings struct {
	// minimumBalance is the wallet balance a provider must hold to accept jobs
	minimumBalance float64
	// commissionPercent is the platform cut charged on acceptance, in percent
	commissionPercent float64
	// guard ensures the settings were properly constructed
	guard guard.ConstructorGuard
}

// NewPlatformSettings creates PlatformSettings with the specified parameters.
//
// Parameters:
//   - minimumBalance: Wallet threshold for job acceptance (must be non-negative)
//   - commissionPercent: Platform commission in percent (must be within [0, 100])
//
// Returns:
//   - *PlatformSettings: Fully initialized settings
//   - error: Validation error if any parameter is out of range
func NewPlatformSettings(minimumBalance, commissionPercent float64) (*PlatformSettings, error) {
	settings := &PlatformSettings{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		settings.setMinimumBalance(minimumBalance),
		settings.setCommissionPercent(commissionPercent),
	); err != nil {
		return nil, err
	}

	return settings, nil
}

// RestorePlatformSettings reconstructs PlatformSettings from persistent storage.
// Construction rules are the same as NewPlatformSettings.
func RestorePlatformSettings(minimumBalance, commissionPercent float64) (*PlatformSettings, error) {
	return NewPlatformSettings(minimumBalance, commissionPercent)
}

// Validate checks if the PlatformSettings were properly constructed using a constructor.
// The zero value is invalid and will fail this validation.
func (s *PlatformSettings) Validate() error {
	if s == nil {
		return ErrSettingsAreNotConstructed
	}
	return s.guard.Validate(ErrSettingsAreNotConstructed)
}

// MinimumBalance returns the wallet threshold a provider must hold to accept jobs.
func (s *PlatformSettings) MinimumBalance() float64 {
	return s.minimumBalance
}

// CommissionPercent returns the platform commission in percent.
func (s *PlatformSettings) CommissionPercent() float64 {
	return s.commissionPercent
}

// CommissionFor computes the commission charged for a booking at the given price.
func (s *PlatformSettings) CommissionFor(price float64) float64 {
	return price * s.commissionPercent / 100
}

// setMinimumBalance validates and sets the minimum balance threshold.
// This is a private method used only during construction.
func (s *PlatformSettings) setMinimumBalance(minimumBalance float64) error {
	if minimumBalance < 0 {
		return ErrMinimumBalanceIsNegative
	}
	s.minimumBalance = minimumBalance
	return nil
}

// setCommissionPercent validates and sets the commission percent.
// This is a private method used only during construction.
func (s *PlatformSettings) setCommissionPercent(commissionPercent float64) error {
	if commissionPercent < CommissionPercentMin || commissionPercent > CommissionPercentMax {
		return errs.NewValueIsOutOfRangeError(
			"commission percent", commissionPercent, CommissionPercentMin, CommissionPercentMax)
	}
	s.commissionPercent = commissionPercent
	return nil
}
