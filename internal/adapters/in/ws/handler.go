package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Inbound event names sent by connected clients.
const (
	inboundProviderOnline   = "provider-online"
	inboundAcceptJob        = "accept-job"
	inboundProviderLocation = "provider-location"
)

// inboundFrame is the wire shape of every client message.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// safeConn serializes writes on a websocket connection. The read loop and the
// hub's publish paths write concurrently, and gorilla connections allow only
// one writer at a time.
type safeConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *safeConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *safeConn) Close() error {
	return s.conn.Close()
}

// acceptBookingHandler is the acceptance surface the realtime adapter drives.
// Satisfied by commands.AcceptBookingCommandHandler.
type acceptBookingHandler interface {
	Handle(ctx context.Context, command commands.AcceptBookingCommand) (commands.AcceptBookingResult, error)
}

// providerLocationHandler persists reported positions.
// Satisfied by commands.UpdateProviderLocationCommandHandler.
type providerLocationHandler interface {
	Handle(ctx context.Context, command commands.UpdateProviderLocationCommand) error
}

// Handler upgrades HTTP requests to websocket connections and routes inbound
// events to command handlers. Acceptance over the socket goes through the
// same acceptance handler as the HTTP path, so the first-wins guarantees hold
// regardless of transport. The acting provider is always the one announced on
// the connection: accept-job and provider-location carry no provider field
// and are refused until the client has sent provider-online.
type Handler struct {
	hub            *Hub
	accept         acceptBookingHandler
	updateLocation providerLocationHandler
	upgrader       websocket.Upgrader
}

// NewHandler creates a websocket handler bound to the hub and command handlers.
func NewHandler(
	hub *Hub,
	accept acceptBookingHandler,
	updateLocation providerLocationHandler,
) *Handler {
	return &Handler{
		hub:            hub,
		accept:         accept,
		updateLocation: updateLocation,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from app origins unknown at build time.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and serves the connection until the
// client disconnects. The connection joins the presence registry when the
// client announces itself with a provider-online event.
func (h *Handler) HandleConnection(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.serve(conn)
	return nil
}

// serve runs the read loop for one connection.
func (h *Handler) serve(conn *websocket.Conn) {
	ctx := context.Background()
	writer := &safeConn{conn: conn}
	var announcedID *kernel.UUID

	defer func() {
		if announcedID != nil {
			h.hub.Detach(*announcedID, writer)
		}
		conn.Close()
	}()

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "error", err)
			}
			return
		}

		switch frame.Event {
		case inboundProviderOnline:
			if id, ok := h.handleProviderOnline(writer, frame.Data); ok {
				announcedID = &id
			}
		case inboundAcceptJob:
			if announcedID == nil {
				h.sendFrame(writer, outboundFrame{
					Event: ports.EventJobUnavailable,
					Data:  map[string]any{"error": "provider not announced"},
				})
				continue
			}
			h.handleAcceptJob(ctx, writer, *announcedID, frame.Data)
		case inboundProviderLocation:
			if announcedID == nil {
				h.sendError(writer, "provider not announced")
				continue
			}
			h.handleProviderLocation(ctx, writer, *announcedID, frame.Data)
		default:
			h.sendError(writer, "unknown event")
		}
	}
}

// handleProviderOnline joins the connection to the presence registry.
func (h *Handler) handleProviderOnline(writer *safeConn, data json.RawMessage) (kernel.UUID, bool) {
	var payload struct {
		ProviderID string `json:"providerId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(writer, "malformed provider-online payload")
		return kernel.UUID{}, false
	}

	providerID, err := kernel.UUIDFromString(payload.ProviderID)
	if err != nil {
		h.sendError(writer, "invalid provider id")
		return kernel.UUID{}, false
	}

	h.hub.Attach(providerID, writer)
	return providerID, true
}

// handleAcceptJob races the announced provider for a booking. The winner is
// notified by the command handler's own job-accepted publish; this method
// only reports failures back on the asking connection.
func (h *Handler) handleAcceptJob(ctx context.Context, writer *safeConn, providerID kernel.UUID, data json.RawMessage) {
	var payload struct {
		BookingID string `json:"bookingId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(writer, "malformed accept-job payload")
		return
	}

	bookingID, err := kernel.UUIDFromString(payload.BookingID)
	if err != nil {
		h.sendError(writer, "invalid booking id")
		return
	}

	command, err := commands.NewAcceptBookingCommand(bookingID, providerID)
	if err != nil {
		h.sendError(writer, err.Error())
		return
	}

	if _, err = h.accept.Handle(ctx, command); err != nil {
		h.sendFrame(writer, h.acceptFailureFrame(payload.BookingID, err))
	}
}

// acceptFailureFrame maps acceptance errors to the outbound vocabulary.
func (h *Handler) acceptFailureFrame(bookingID string, err error) outboundFrame {
	payload := map[string]any{"bookingId": bookingID}

	switch {
	case errors.Is(err, commands.ErrBookingAlreadyProcessed),
		errors.Is(err, commands.ErrBookingNotFound):
		return outboundFrame{Event: ports.EventJobUnavailable, Data: payload}
	case errors.Is(err, commands.ErrInsufficientBalance):
		return outboundFrame{Event: ports.EventInsufficientBalance, Data: payload}
	default:
		payload["error"] = err.Error()
		return outboundFrame{Event: ports.EventDispatchError, Data: payload}
	}
}

// handleProviderLocation persists the announced provider's reported position
// and relays it to connected clients watching the provider.
func (h *Handler) handleProviderLocation(ctx context.Context, writer *safeConn, providerID kernel.UUID, data json.RawMessage) {
	var payload struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(writer, "malformed provider-location payload")
		return
	}

	location, err := kernel.NewGeoPoint(payload.Latitude, payload.Longitude)
	if err != nil {
		h.sendError(writer, "invalid coordinates")
		return
	}

	command, err := commands.NewUpdateProviderLocationCommand(providerID, location)
	if err != nil {
		h.sendError(writer, err.Error())
		return
	}

	if err = h.updateLocation.Handle(ctx, command); err != nil {
		h.sendFrame(writer, outboundFrame{
			Event: ports.EventDispatchError,
			Data:  map[string]any{"error": err.Error()},
		})
		return
	}

	h.hub.PublishToAll(ports.Event{
		Name: ports.EventProviderLocationUpdate,
		Data: map[string]any{
			"providerId": providerID.String(),
			"latitude":   payload.Latitude,
			"longitude":  payload.Longitude,
		},
	})
}

// sendError reports a protocol-level problem on the connection.
func (h *Handler) sendError(writer *safeConn, message string) {
	h.sendFrame(writer, outboundFrame{
		Event: ports.EventDispatchError,
		Data:  map[string]any{"error": message},
	})
}

func (h *Handler) sendFrame(writer *safeConn, frame outboundFrame) {
	if err := writer.WriteJSON(frame); err != nil {
		slog.Warn("websocket write failed", "error", err)
	}
}
