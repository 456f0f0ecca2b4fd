package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateBookingCommandIsNotConstructed = errors.New(
		"CreateBookingCommand must be created via NewCreateBookingCommand constructor",
	)
	ErrAddressIsRequired = errors.New("address is required")
	ErrPriceIsInvalid    = errors.New("price must be greater than 0")
)

// CreateBookingCommand represents a customer's request for a new service booking.
// Encapsulates the booked catalog service, the service location and the price
// captured at request time.
//
// Example:
//
//	bookingID := kernel.NewUUID()
//	cmd, err := NewCreateBookingCommand(bookingID, ownerID, serviceID,
//	    "12 Ring Road, Lajpat Nagar", &geo, 250)
//	if err != nil {
//	    return fmt.Errorf("invalid booking data: %w", err)
//	}
//
//	handler := NewCreateBookingCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create booking: %w", err)
//	}
type CreateBookingCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.UUID
	ownerID   kernel.UUID
	serviceID kernel.UUID
	address   string
	geo       *kernel.GeoPoint
	price     float64

	guard guard.ConstructorGuard
}

// NewCreateBookingCommand creates a command to register a new service booking.
// Validates that all identifiers are valid, the address is not empty, the
// optional position is well-formed and the price is positive.
func NewCreateBookingCommand(
	bookingID kernel.UUID,
	ownerID kernel.UUID,
	serviceID kernel.UUID,
	address string,
	geo *kernel.GeoPoint,
	price float64,
) (CreateBookingCommand, error) {
	bookingCommand := CreateBookingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		bookingCommand.setBookingID(bookingID),
		bookingCommand.setOwnerID(ownerID),
		bookingCommand.setServiceID(serviceID),
		bookingCommand.setAddress(address),
		bookingCommand.setGeo(geo),
		bookingCommand.setPrice(price),
	); err != nil {
		return CreateBookingCommand{}, err
	}

	return bookingCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateBookingCommandIsNotConstructed if validation fails.
func (c CreateBookingCommand) Validate() error {
	return c.guard.Validate(ErrCreateBookingCommandIsNotConstructed)
}

// BookingID returns the unique identifier for the booking.
func (c CreateBookingCommand) BookingID() kernel.UUID {
	return c.bookingID
}

// OwnerID returns the identifier of the requesting customer.
func (c CreateBookingCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// ServiceID returns the identifier of the booked catalog service.
func (c CreateBookingCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

// Address returns the human-readable service location.
func (c CreateBookingCommand) Address() string {
	return c.address
}

// Geo returns the optional geographic position of the service location.
func (c CreateBookingCommand) Geo() *kernel.GeoPoint {
	return c.geo
}

// Price returns the service price captured at request time.
func (c CreateBookingCommand) Price() float64 {
	return c.price
}

func (c *CreateBookingCommand) setBookingID(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}

	c.bookingID = bookingID
	return nil
}

func (c *CreateBookingCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *CreateBookingCommand) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}

	c.serviceID = serviceID
	return nil
}

func (c *CreateBookingCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}

func (c *CreateBookingCommand) setGeo(geo *kernel.GeoPoint) error {
	if geo == nil {
		return nil
	}
	if err := geo.Validate(); err != nil {
		return err
	}

	c.geo = geo
	return nil
}

func (c *CreateBookingCommand) setPrice(price float64) error {
	if price <= 0 {
		return ErrPriceIsInvalid
	}

	c.price = price
	return nil
}
