// Package http provides the REST adapter for the dispatch service.
// Handlers translate JSON requests into commands and queries and map domain
// errors onto HTTP status codes. The acceptance endpoint shares its command
// handler with the realtime adapter, so both transports race through the same
// protocol.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON error body returned by every failing endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createBookingHandler   commands.CreateBookingCommandHandler
	acceptBookingHandler   commands.AcceptBookingCommandHandler
	startServiceHandler    commands.StartServiceCommandHandler
	completeServiceHandler commands.CompleteServiceCommandHandler
	cancelBookingHandler   commands.CancelBookingCommandHandler
	createProviderHandler  commands.CreateProviderCommandHandler
	topUpWalletHandler     commands.TopUpWalletCommandHandler
	updateLocationHandler  commands.UpdateProviderLocationCommandHandler

	// Query handlers
	nearbyBookingsHandler   queries.GetNearbyPendingBookingsQueryHandler
	ownerBookingsHandler    queries.GetOwnerBookingsQueryHandler
	providerBookingsHandler queries.GetProviderBookingsQueryHandler

	presence ports.PresenceRegistry
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createBookingHandler commands.CreateBookingCommandHandler,
	acceptBookingHandler commands.AcceptBookingCommandHandler,
	startServiceHandler commands.StartServiceCommandHandler,
	completeServiceHandler commands.CompleteServiceCommandHandler,
	cancelBookingHandler commands.CancelBookingCommandHandler,
	createProviderHandler commands.CreateProviderCommandHandler,
	topUpWalletHandler commands.TopUpWalletCommandHandler,
	updateLocationHandler commands.UpdateProviderLocationCommandHandler,
	nearbyBookingsHandler queries.GetNearbyPendingBookingsQueryHandler,
	ownerBookingsHandler queries.GetOwnerBookingsQueryHandler,
	providerBookingsHandler queries.GetProviderBookingsQueryHandler,
	presence ports.PresenceRegistry,
) *Server {
	return &Server{
		createBookingHandler:    createBookingHandler,
		acceptBookingHandler:    acceptBookingHandler,
		startServiceHandler:     startServiceHandler,
		completeServiceHandler:  completeServiceHandler,
		cancelBookingHandler:    cancelBookingHandler,
		createProviderHandler:   createProviderHandler,
		topUpWalletHandler:      topUpWalletHandler,
		updateLocationHandler:   updateLocationHandler,
		nearbyBookingsHandler:   nearbyBookingsHandler,
		ownerBookingsHandler:    ownerBookingsHandler,
		providerBookingsHandler: providerBookingsHandler,
		presence:                presence,
	}
}

// RegisterRoutes mounts every REST endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/bookings", s.CreateBooking)
	api.POST("/bookings/accept", s.AcceptBooking)
	api.POST("/bookings/start", s.StartService)
	api.POST("/bookings/complete", s.CompleteService)
	api.POST("/bookings/cancel", s.CancelBooking)
	api.GET("/bookings/nearby", s.GetNearbyBookings)
	api.GET("/bookings/owner/:ownerId", s.GetOwnerBookings)
	api.GET("/bookings/provider/:providerId", s.GetProviderBookings)

	api.POST("/providers", s.CreateProvider)
	api.POST("/providers/topup", s.TopUpWallet)
	api.POST("/providers/location", s.UpdateProviderLocation)
	api.GET("/providers/online", s.GetOnlineProviders)

	e.GET("/health", s.Health)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateBooking handles POST /api/v1/bookings - places a new service booking.
func (s *Server) CreateBooking(ctx echo.Context) error {
	var body struct {
		OwnerID   string   `json:"ownerId"`
		ServiceID string   `json:"serviceId"`
		Address   string   `json:"address"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Price     float64  `json:"price"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(body.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}
	serviceID, err := kernel.UUIDFromString(body.ServiceID)
	if err != nil {
		return badRequest(ctx, "Invalid service id")
	}

	var geo *kernel.GeoPoint
	if body.Latitude != nil && body.Longitude != nil {
		point, geoErr := kernel.NewGeoPoint(*body.Latitude, *body.Longitude)
		if geoErr != nil {
			return badRequest(ctx, "Invalid coordinates")
		}
		geo = &point
	}

	bookingID := kernel.NewUUID()
	cmd, err := commands.NewCreateBookingCommand(bookingID, ownerID, serviceID, body.Address, geo, body.Price)
	if err != nil {
		return badRequest(ctx, "Invalid booking data: "+err.Error())
	}

	if err = s.createBookingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to create booking")
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"bookingId": bookingID.String()})
}

// AcceptBooking handles POST /api/v1/bookings/accept - a provider claims a
// pending booking. First pending claim wins; losers get 409.
func (s *Server) AcceptBooking(ctx echo.Context) error {
	var body struct {
		BookingID  string `json:"bookingId"`
		ProviderID string `json:"providerId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	bookingID, err := kernel.UUIDFromString(body.BookingID)
	if err != nil {
		return badRequest(ctx, "Invalid booking id")
	}
	providerID, err := kernel.UUIDFromString(body.ProviderID)
	if err != nil {
		return badRequest(ctx, "Invalid provider id")
	}

	cmd, err := commands.NewAcceptBookingCommand(bookingID, providerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.acceptBookingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound), errors.Is(err, commands.ErrProviderNotFound):
			return jsonError(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, commands.ErrBookingAlreadyProcessed):
			return jsonError(ctx, http.StatusConflict, "Booking already processed")
		case errors.Is(err, commands.ErrInsufficientBalance):
			return jsonError(ctx, http.StatusPaymentRequired, "Insufficient wallet balance")
		default:
			return internalError(ctx, "Failed to accept booking")
		}
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"bookingId":       body.BookingID,
		"providerId":      body.ProviderID,
		"commission":      result.Commission,
		"remainingWallet": result.RemainingWallet,
	})
}

// StartService handles POST /api/v1/bookings/start - the assigned provider
// reports heading to the customer.
func (s *Server) StartService(ctx echo.Context) error {
	var body struct {
		BookingID  string `json:"bookingId"`
		ProviderID string `json:"providerId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	bookingID, err := kernel.UUIDFromString(body.BookingID)
	if err != nil {
		return badRequest(ctx, "Invalid booking id")
	}
	providerID, err := kernel.UUIDFromString(body.ProviderID)
	if err != nil {
		return badRequest(ctx, "Invalid provider id")
	}

	cmd, err := commands.NewStartServiceCommand(bookingID, providerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.startServiceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapBookingActionError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"bookingId": body.BookingID, "status": "on_the_way"})
}

// CompleteService handles POST /api/v1/bookings/complete - the assigned
// provider submits the customer's completion code.
func (s *Server) CompleteService(ctx echo.Context) error {
	var body struct {
		BookingID  string `json:"bookingId"`
		ProviderID string `json:"providerId"`
		Code       string `json:"code"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	bookingID, err := kernel.UUIDFromString(body.BookingID)
	if err != nil {
		return badRequest(ctx, "Invalid booking id")
	}
	providerID, err := kernel.UUIDFromString(body.ProviderID)
	if err != nil {
		return badRequest(ctx, "Invalid provider id")
	}

	cmd, err := commands.NewCompleteServiceCommand(bookingID, providerID, body.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.completeServiceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapBookingActionError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"bookingId": body.BookingID, "status": "completed"})
}

// CancelBooking handles POST /api/v1/bookings/cancel - the owner withdraws a
// still-pending booking.
func (s *Server) CancelBooking(ctx echo.Context) error {
	var body struct {
		BookingID string `json:"bookingId"`
		OwnerID   string `json:"ownerId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	bookingID, err := kernel.UUIDFromString(body.BookingID)
	if err != nil {
		return badRequest(ctx, "Invalid booking id")
	}
	ownerID, err := kernel.UUIDFromString(body.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}

	cmd, err := commands.NewCancelBookingCommand(bookingID, ownerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.cancelBookingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapBookingActionError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"bookingId": body.BookingID, "status": "cancelled"})
}

// GetNearbyBookings handles GET /api/v1/bookings/nearby?providerId= -
// claimable bookings around the provider, nearest first.
func (s *Server) GetNearbyBookings(ctx echo.Context) error {
	providerID, err := kernel.UUIDFromString(ctx.QueryParam("providerId"))
	if err != nil {
		return badRequest(ctx, "Invalid provider id")
	}

	query, err := queries.NewGetNearbyPendingBookingsQuery(providerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	bookings, err := s.nearbyBookingsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrProviderLocationUnknown):
			return badRequest(ctx, "Provider has no known location")
		case errors.Is(err, errs.ErrObjectNotFound):
			return jsonError(ctx, http.StatusNotFound, "Provider not found")
		default:
			return internalError(ctx, "Failed to retrieve nearby bookings")
		}
	}

	response := make([]map[string]any, len(bookings))
	for i, b := range bookings {
		response[i] = map[string]any{
			"bookingId":  b.BookingID.String(),
			"serviceId":  b.ServiceID.String(),
			"address":    b.Address,
			"latitude":   b.Latitude,
			"longitude":  b.Longitude,
			"price":      b.Price,
			"distanceKm": b.DistanceKm,
			"createdAt":  b.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOwnerBookings handles GET /api/v1/bookings/owner/:ownerId - the
// customer's booking history, newest first.
func (s *Server) GetOwnerBookings(ctx echo.Context) error {
	ownerID, err := kernel.UUIDFromString(ctx.Param("ownerId"))
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}

	query, err := queries.NewGetOwnerBookingsQuery(ownerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	bookings, err := s.ownerBookingsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve bookings")
	}

	response := make([]map[string]any, len(bookings))
	for i, b := range bookings {
		entry := map[string]any{
			"bookingId":      b.BookingID.String(),
			"serviceId":      b.ServiceID.String(),
			"status":         b.Status,
			"address":        b.Address,
			"price":          b.Price,
			"completionCode": b.CompletionCode,
			"createdAt":      b.CreatedAt,
		}
		if b.ProviderID != nil {
			entry["providerId"] = b.ProviderID.String()
		}
		response[i] = entry
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetProviderBookings handles GET /api/v1/bookings/provider/:providerId -
// the provider's assigned jobs, newest first. Completion codes are never
// exposed on this view.
func (s *Server) GetProviderBookings(ctx echo.Context) error {
	providerID, err := kernel.UUIDFromString(ctx.Param("providerId"))
	if err != nil {
		return badRequest(ctx, "Invalid provider id")
	}

	query, err := queries.NewGetProviderBookingsQuery(providerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	bookings, err := s.providerBookingsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve bookings")
	}

	response := make([]map[string]any, len(bookings))
	for i, b := range bookings {
		response[i] = map[string]any{
			"bookingId": b.BookingID.String(),
			"serviceId": b.ServiceID.String(),
			"ownerId":   b.OwnerID.String(),
			"status":    b.Status,
			"address":   b.Address,
			"price":     b.Price,
			"createdAt": b.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateProvider handles POST /api/v1/providers - onboards a new provider.
func (s *Server) CreateProvider(ctx echo.Context) error {
	var body struct {
		Name         string   `json:"name"`
		Wallet       float64  `json:"wallet"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
		Capabilities []string `json:"capabilities"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var location *kernel.GeoPoint
	if body.Latitude != nil && body.Longitude != nil {
		point, geoErr := kernel.NewGeoPoint(*body.Latitude, *body.Longitude)
		if geoErr != nil {
			return badRequest(ctx, "Invalid coordinates")
		}
		location = &point
	}

	capabilities := make([]kernel.UUID, 0, len(body.Capabilities))
	for _, raw := range body.Capabilities {
		serviceID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "Invalid capability id: "+raw)
		}
		capabilities = append(capabilities, serviceID)
	}

	providerID := kernel.NewUUID()
	cmd, err := commands.NewCreateProviderCommand(providerID, body.Name, body.Wallet, location, capabilities)
	if err != nil {
		return badRequest(ctx, "Invalid provider data: "+err.Error())
	}

	if err = s.createProviderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to create provider")
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"providerId": providerID.String()})
}

// TopUpWallet handles POST /api/v1/providers/topup - credits a provider wallet.
func (s *Server) TopUpWallet(ctx echo.Context) error {
	var body struct {
		ProviderID string  `json:"providerId"`
		Amount     float64 `json:"amount"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	providerID, err := kernel.UUIDFromString(body.ProviderID)
	if err != nil {
		return badRequest(ctx, "Invalid provider id")
	}

	cmd, err := commands.NewTopUpWalletCommand(providerID, body.Amount)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.topUpWalletHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, commands.ErrProviderNotFound) {
			return jsonError(ctx, http.StatusNotFound, "Provider not found")
		}
		return internalError(ctx, "Failed to top up wallet")
	}

	return ctx.NoContent(http.StatusOK)
}

// UpdateProviderLocation handles POST /api/v1/providers/location - persists
// the provider's last known position.
func (s *Server) UpdateProviderLocation(ctx echo.Context) error {
	var body struct {
		ProviderID string  `json:"providerId"`
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	providerID, err := kernel.UUIDFromString(body.ProviderID)
	if err != nil {
		return badRequest(ctx, "Invalid provider id")
	}

	location, err := kernel.NewGeoPoint(body.Latitude, body.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid coordinates")
	}

	cmd, err := commands.NewUpdateProviderLocationCommand(providerID, location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, commands.ErrProviderNotFound) {
			return jsonError(ctx, http.StatusNotFound, "Provider not found")
		}
		return internalError(ctx, "Failed to update location")
	}

	return ctx.NoContent(http.StatusOK)
}

// GetOnlineProviders handles GET /api/v1/providers/online - the identifiers
// of providers holding a live realtime connection right now.
func (s *Server) GetOnlineProviders(ctx echo.Context) error {
	online := s.presence.Online()

	ids := make([]string, len(online))
	for i, id := range online {
		ids[i] = id.String()
	}

	return ctx.JSON(http.StatusOK, map[string]any{"providerIds": ids, "count": len(ids)})
}

// mapBookingActionError maps lifecycle command failures onto status codes:
// unknown booking → 404, any guard or state violation → 400.
func mapBookingActionError(ctx echo.Context, err error) error {
	if errors.Is(err, commands.ErrBookingNotFound) {
		return jsonError(ctx, http.StatusNotFound, "Booking not found")
	}
	return badRequest(ctx, err.Error())
}

func badRequest(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusBadRequest, message)
}

func internalError(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusInternalServerError, message)
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
