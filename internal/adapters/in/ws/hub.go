// Package ws provides the realtime adapter: a websocket hub that tracks which
// providers are connected and pushes dispatch events to them. The hub
// implements both the PresenceRegistry and EventPublisher ports, since
// presence and delivery share the same connection table.
package ws

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/provider"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// Connection is the minimal surface the hub needs from a websocket connection.
// Satisfied by *websocket.Conn; tests substitute an in-memory fake.
type Connection interface {
	WriteJSON(v interface{}) error
	Close() error
}

// providerFinder loads provider aggregates for fan-out candidate selection.
// Satisfied by the provider repository.
type providerFinder interface {
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*provider.Provider, error)
}

// outboundFrame is the wire shape of every pushed event.
type outboundFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// session is one connected provider. The write mutex serializes frames on
// the shared connection; websocket connections do not support concurrent
// writes.
type session struct {
	writeMu sync.Mutex
	conn    Connection
}

func (s *session) send(frame outboundFrame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.conn == nil {
		return nil
	}
	return s.conn.WriteJSON(frame)
}

// Hub tracks connected providers and delivers realtime events to them.
// Safe for concurrent use from connection goroutines and command handlers.
type Hub struct {
	mu       sync.RWMutex
	sessions map[kernel.UUID]*session

	providers providerFinder
	matcher   services.ProximityMatcher
}

// NewHub creates a hub backed by the given provider lookup.
func NewHub(providers providerFinder) *Hub {
	return &Hub{
		sessions:  make(map[kernel.UUID]*session),
		providers: providers,
		matcher:   services.NewProximityMatcher(),
	}
}

// Attach binds a live connection to the provider and marks it online.
// A previous connection for the same provider is closed and replaced.
func (h *Hub) Attach(providerID kernel.UUID, conn Connection) {
	h.mu.Lock()
	previous := h.sessions[providerID]
	h.sessions[providerID] = &session{conn: conn}
	h.mu.Unlock()

	if previous != nil && previous.conn != nil && previous.conn != conn {
		previous.conn.Close()
	}
}

// Detach removes the provider's session if it still owns the given
// connection. A session already replaced by a reconnect is left alone.
func (h *Hub) Detach(providerID kernel.UUID, conn Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, ok := h.sessions[providerID]
	if !ok {
		return
	}
	if current.conn != nil && current.conn != conn {
		return
	}
	delete(h.sessions, providerID)
}

// IsOnline reports whether the provider currently holds a registry entry.
func (h *Hub) IsOnline(providerID kernel.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.sessions[providerID]
	return ok
}

// Online returns the identifiers of all present providers, sorted for
// deterministic fan-out order.
func (h *Hub) Online() []kernel.UUID {
	h.mu.RLock()
	ids := make([]kernel.UUID, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// PublishToAll delivers the event to every connected client.
func (h *Hub) PublishToAll(event ports.Event) {
	for _, id := range h.Online() {
		h.PublishToProvider(id, event)
	}
}

// PublishToProvider delivers the event to the given provider if connected.
// Send failures drop the dead connection; delivery is best effort.
func (h *Hub) PublishToProvider(providerID kernel.UUID, event ports.Event) {
	h.mu.RLock()
	current, ok := h.sessions[providerID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if err := current.send(outboundFrame{Event: event.Name, Data: event.Data}); err != nil {
		slog.Warn("realtime send failed, dropping connection",
			"provider_id", providerID.String(),
			"event", event.Name,
			"error", err,
		)
		h.Detach(providerID, current.conn)
		if current.conn != nil {
			current.conn.Close()
		}
	}
}

// PublishToNearbyOnline delivers the event to every connected provider
// eligible for the booking: within match radius of its last known position
// and able to serve the booked catalog service.
func (h *Hub) PublishToNearbyOnline(ctx context.Context, aggregate *booking.Booking, event ports.Event) error {
	if aggregate.Geo() == nil {
		// Nobody is "nearby" a booking without coordinates.
		return nil
	}

	online := h.Online()
	if len(online) == 0 {
		return nil
	}

	candidates, err := h.providers.GetByIDs(ctx, online)
	if err != nil {
		return err
	}

	eligible, err := h.matcher.Match(aggregate, candidates)
	if err != nil {
		return err
	}

	for _, candidate := range eligible {
		h.PublishToProvider(candidate.Provider.ID(), event)
	}
	return nil
}
