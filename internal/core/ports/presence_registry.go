package ports

import (
	"dispatch/internal/core/domain/model/kernel"
)

// PresenceRegistry answers which providers currently hold a live realtime
// connection. Presence is ephemeral: it reflects connection state only and
// is never persisted. A provider may appear at most once regardless of how
// many times it reconnects.
type PresenceRegistry interface {
	// IsOnline reports whether the provider currently holds a live connection.
	IsOnline(providerID kernel.UUID) bool

	// Online returns the identifiers of all currently connected providers.
	Online() []kernel.UUID
}
