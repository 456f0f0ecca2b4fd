package ports

import (
	"context"

	"dispatch/internal/core/domain/model/settings"
)

// SettingsRepository defines the read contract for platform settings.
// The settings are maintained by the administrator outside this service,
// so only retrieval is exposed here.
type SettingsRepository interface {
	// Get retrieves the current platform settings.
	Get(ctx context.Context) (*settings.PlatformSettings, error)
}
