package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/provider"
)

// ProviderRepository defines the persistence contract for provider aggregates.
// Provides methods for storing, retrieving, and querying provider entities
// with their wallet balance, position and capability set.
type ProviderRepository interface {
	// Add persists a new provider aggregate to storage.
	// The provider must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *provider.Provider) error

	// Update persists changes to an existing provider aggregate.
	// The provider must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *provider.Provider) error

	// Get retrieves a provider aggregate by its unique identifier.
	// Returns the complete provider with wallet, position and capabilities.
	Get(ctx context.Context, id kernel.UUID) (*provider.Provider, error)

	// GetForUpdate retrieves a provider aggregate by its unique identifier,
	// locking the underlying row for the duration of the current transaction.
	// Serializes concurrent wallet operations on the same provider.
	//
	// Must be called inside an active unit of work transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*provider.Provider, error)

	// GetByIDs retrieves the provider aggregates for the given identifiers.
	// Unknown identifiers are silently skipped.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*provider.Provider, error)
}
