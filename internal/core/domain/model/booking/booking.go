package booking

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// completionCodeLength is the number of digits in a completion code.
const completionCodeLength = 4

// Domain errors for booking operations.
var (
	// ErrBookingIsNotConstructed is returned when a Booking instance was not created through
	// the NewBooking or RestoreBooking constructors.
	ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking or RestoreBooking constructor")
	// ErrAddressIsRequired is returned when attempting to create a booking without an address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrPriceIsInvalid is returned when the captured price is not positive.
	ErrPriceIsInvalid = errs.NewValueIsInvalidError("price at booking")
	// ErrNotAssignedProvider is returned when a caller acts on a booking assigned to someone else.
	ErrNotAssignedProvider = errors.New("caller is not the assigned provider")
	// ErrNotBookingOwner is returned when a caller other than the owner tries to cancel.
	ErrNotBookingOwner = errors.New("caller is not the booking owner")
	// ErrInvalidCompletionCode is returned when the supplied code does not match the booking's code.
	ErrInvalidCompletionCode = errors.New("completion code does not match")
)

// Booking represents a service job in the system. It is the aggregate root that
// manages the booking lifecycle from creation through acceptance to completion.
//
// Booking follows these invariants:
//   - Must have valid owner, service and booking identifiers
//   - Must have a non-empty address; geographic coordinates are optional
//   - Price is captured at creation and never changes afterwards
//   - The completion code is set at creation and never changes afterwards
//   - A provider is assigned iff the status is Confirmed, OnTheWay or Completed
//   - Status transitions follow the state machine defined by Status
//
// Every transition method re-checks the current status before moving, which is
// what makes the aggregate safe to use under concurrent acceptance attempts:
// the losing caller observes the already-advanced status and gets an error
// instead of a second transition.
type Booking struct {
	// id is the unique identifier for the booking
	id kernel.UUID

	// ownerID identifies the user who requested the service
	ownerID kernel.UUID

	// serviceID identifies the booked catalog service
	serviceID kernel.UUID

	// providerID is the assigned provider's ID (nil until accepted)
	providerID *kernel.UUID

	// status represents the current state in the booking lifecycle
	status Status

	// address is the human-readable service location
	address string

	// geo is the optional geographic position of the service location
	geo *kernel.GeoPoint

	// priceAtBooking is the service price frozen at creation time
	priceAtBooking float64

	// completionCode is the short numeric secret required to complete the job
	completionCode string

	// createdAt is the creation timestamp
	createdAt time.Time

	// guard ensures the booking was properly constructed
	guard guard.ConstructorGuard
}

// NewBooking creates a new pending Booking with validation. This is the only
// way to create a fresh booking, ensuring all business invariants hold.
//
// Parameters:
//   - id: Unique identifier for the booking
//   - ownerID: Identifier of the requesting user
//   - serviceID: Identifier of the booked catalog service
//   - address: Human-readable service location (must be non-empty)
//   - geo: Optional geographic position (nil if unknown)
//   - priceAtBooking: Service price captured at creation (must be positive)
//   - completionCode: Numeric secret required to complete the job
//
// Returns:
//   - *Booking: The created booking in Pending status with no provider
//   - error: Validation error if any parameter is invalid
func NewBooking(
	id kernel.UUID,
	ownerID kernel.UUID,
	serviceID kernel.UUID,
	address string,
	geo *kernel.GeoPoint,
	priceAtBooking float64,
	completionCode string,
) (*Booking, error) {
	booking := &Booking{
		status:    Pending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		booking.setID(id),
		booking.setOwnerID(ownerID),
		booking.setServiceID(serviceID),
		booking.setAddress(address),
		booking.setGeo(geo),
		booking.setPriceAtBooking(priceAtBooking),
		booking.setCompletionCode(completionCode),
	); err != nil {
		return nil, err
	}

	return booking, nil
}

// RestoreBooking reconstructs a Booking aggregate from persistent storage.
// Unlike NewBooking which always produces a pending booking, this constructor
// restores a booking to its previously persisted state including status,
// provider assignment and creation time.
//
// The provider/status consistency invariant is enforced on restore: loading a
// confirmed booking without a provider (or a pending booking with one) fails.
func RestoreBooking(
	id kernel.UUID,
	ownerID kernel.UUID,
	serviceID kernel.UUID,
	address string,
	geo *kernel.GeoPoint,
	priceAtBooking float64,
	completionCode string,
	status Status,
	providerID *kernel.UUID,
	createdAt time.Time,
) (*Booking, error) {
	booking := &Booking{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		booking.setID(id),
		booking.setOwnerID(ownerID),
		booking.setServiceID(serviceID),
		booking.setAddress(address),
		booking.setGeo(geo),
		booking.setPriceAtBooking(priceAtBooking),
		booking.setCompletionCode(completionCode),
		booking.setStatus(status),
		booking.setProviderID(providerID),
	); err != nil {
		return nil, err
	}

	return booking, nil
}

// Validate ensures the Booking instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (b *Booking) Validate() error {
	if b == nil {
		return ErrBookingIsNotConstructed
	}
	return b.guard.Validate(ErrBookingIsNotConstructed)
}

// IsEqual compares two bookings by their unique identifiers.
func (b *Booking) IsEqual(other *Booking) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() kernel.UUID {
	return b.id
}

// OwnerID returns the identifier of the user who requested the service.
func (b *Booking) OwnerID() kernel.UUID {
	return b.ownerID
}

// ServiceID returns the identifier of the booked catalog service.
func (b *Booking) ServiceID() kernel.UUID {
	return b.serviceID
}

// Provider returns the assigned provider's ID.
// Returns nil if no provider is assigned.
func (b *Booking) Provider() *kernel.UUID {
	return b.providerID
}

// Status returns the current status of the booking.
func (b *Booking) Status() Status {
	return b.status
}

// Address returns the human-readable service location.
func (b *Booking) Address() string {
	return b.address
}

// Geo returns the geographic position of the service location.
// Returns nil if coordinates are unknown.
func (b *Booking) Geo() *kernel.GeoPoint {
	return b.geo
}

// PriceAtBooking returns the service price frozen at creation time.
// Later catalog price edits never change this value.
func (b *Booking) PriceAtBooking() float64 {
	return b.priceAtBooking
}

// CompletionCode returns the numeric secret required to complete the job.
// The code is immutable after creation.
func (b *Booking) CompletionCode() string {
	return b.completionCode
}

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time {
	return b.createdAt
}

// Accept assigns the booking to the given provider and transitions it to Confirmed.
//
// Business rules:
//   - The provider ID must be valid
//   - The booking must be in Pending status
//
// The status precondition makes Accept safe under concurrent attempts when
// callers hold an exclusive lock on the booking row: the first winner advances
// the status, every later attempt fails the Pending check.
func (b *Booking) Accept(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	newStatus, err := b.status.Confirm()
	if err != nil {
		return err
	}

	b.status = newStatus
	b.providerID = &providerID
	return nil
}

// Start transitions the booking to OnTheWay.
//
// Business rules:
//   - The booking must be in Confirmed status
//   - The caller must be the assigned provider (ErrNotAssignedProvider otherwise)
func (b *Booking) Start(providerID kernel.UUID) error {
	if err := b.validateAssignedProvider(providerID); err != nil {
		return err
	}

	newStatus, err := b.status.Start()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Complete transitions the booking to Completed, gated by the completion code.
//
// Business rules:
//   - The booking must be in OnTheWay status
//   - The caller must be the assigned provider (ErrNotAssignedProvider otherwise)
//   - The supplied code must exactly equal the stored completion code
//     (ErrInvalidCompletionCode otherwise, status unchanged)
func (b *Booking) Complete(providerID kernel.UUID, code string) error {
	if err := b.validateAssignedProvider(providerID); err != nil {
		return err
	}

	newStatus, err := b.status.Complete()
	if err != nil {
		return err
	}

	if code != b.completionCode {
		return ErrInvalidCompletionCode
	}

	b.status = newStatus
	return nil
}

// Cancel transitions the booking to Cancelled.
//
// Business rules:
//   - The booking must be in Pending status
//   - The caller must be the booking owner (ErrNotBookingOwner otherwise)
func (b *Booking) Cancel(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	if !b.ownerID.IsEqual(ownerID) {
		return ErrNotBookingOwner
	}

	newStatus, err := b.status.Cancel()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// validateAssignedProvider checks that the caller is the provider the booking
// is assigned to.
func (b *Booking) validateAssignedProvider(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	if b.providerID == nil || !b.providerID.IsEqual(providerID) {
		return ErrNotAssignedProvider
	}

	return nil
}

// setID validates and sets the booking's unique identifier.
// This is a private method used only during construction.
func (b *Booking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

// setOwnerID validates and sets the requesting user's identifier.
// This is a private method used only during construction.
func (b *Booking) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	b.ownerID = ownerID
	return nil
}

// setServiceID validates and sets the booked service identifier.
// This is a private method used only during construction.
func (b *Booking) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}
	b.serviceID = serviceID
	return nil
}

// setAddress validates and sets the service address.
// This is a private method used only during construction.
func (b *Booking) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	b.address = address
	return nil
}

// setGeo validates and sets the optional geographic position.
// This is a private method used only during construction.
func (b *Booking) setGeo(geo *kernel.GeoPoint) error {
	if geo == nil {
		return nil
	}
	if err := geo.Validate(); err != nil {
		return err
	}
	b.geo = geo
	return nil
}

// setPriceAtBooking validates and sets the frozen price.
// This is a private method used only during construction.
func (b *Booking) setPriceAtBooking(price float64) error {
	if price <= 0 {
		return ErrPriceIsInvalid
	}
	b.priceAtBooking = price
	return nil
}

// setCompletionCode validates and sets the completion code.
// This is a private method used only during construction.
func (b *Booking) setCompletionCode(code string) error {
	if err := ValidateCompletionCode(code); err != nil {
		return err
	}
	b.completionCode = code
	return nil
}

// setStatus validates and sets the lifecycle status.
// This is a private method used only during restoration.
func (b *Booking) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}

// setProviderID validates and sets the optional provider assignment,
// enforcing consistency with the already-set status.
// This is a private method used only during restoration.
func (b *Booking) setProviderID(providerID *kernel.UUID) error {
	if providerID != nil {
		if err := providerID.Validate(); err != nil {
			return err
		}
	}

	if err := b.status.ValidateCanHaveProvider(providerID != nil); err != nil {
		return err
	}

	b.providerID = providerID
	return nil
}

// NewCompletionCode generates a random numeric completion code.
// The code is shared with the booking owner out of band and must be presented
// by the provider to complete the job.
func NewCompletionCode() string {
	maxCode := big.NewInt(1)
	for range completionCodeLength {
		maxCode.Mul(maxCode, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, maxCode)
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		panic(fmt.Sprintf("completion code generation failed: %v", err))
	}

	return fmt.Sprintf("%0*d", completionCodeLength, n)
}

// ValidateCompletionCode checks that a completion code has the expected
// length and consists of digits only.
func ValidateCompletionCode(code string) error {
	if len(code) != completionCodeLength {
		return errs.NewValueIsInvalidErrorWithCause("completion code",
			fmt.Errorf("code must be exactly %d digits", completionCodeLength))
	}

	for _, r := range code {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("completion code",
				fmt.Errorf("code must contain digits only"))
		}
	}

	return nil
}
