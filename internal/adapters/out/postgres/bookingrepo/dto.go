// Package bookingrepo provides data transfer objects and mapping functions for booking persistence.
// This package implements the repository pattern for the booking domain aggregate, handling
// the conversion between domain entities and database representations.
package bookingrepo

import (
	"time"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BookingDTO represents the database structure for persisting booking aggregates.
// A booking without coordinates stores NULL latitude and longitude, and a booking
// that has not been accepted yet stores a NULL provider id.
type BookingDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServiceID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProviderID     *uuid.UUID `gorm:"type:uuid;index"`
	Status         int        `gorm:"type:int;not null;index"`
	Address        string     `gorm:"type:varchar(500);not null"`
	Latitude       *float64   `gorm:"type:double precision"`
	Longitude      *float64   `gorm:"type:double precision"`
	PriceAtBooking float64    `gorm:"type:double precision;not null"`
	CompletionCode string     `gorm:"type:varchar(8);not null"`
	CreatedAt      time.Time  `gorm:"not null"`
}

// TableName specifies the database table name for booking entities.
// Overrides GORM's default naming convention to use "bookings" instead of "booking_dtos".
func (BookingDTO) TableName() string {
	return "bookings"
}

// fromDomain converts a booking domain aggregate to its database representation.
func fromDomain(aggregate *booking.Booking) BookingDTO {
	var providerID *uuid.UUID
	if aggregate.Provider() != nil {
		raw := aggregate.Provider().Bytes()
		providerID = &raw
	}

	var latitude, longitude *float64
	if aggregate.Geo() != nil {
		lat := aggregate.Geo().Latitude()
		lng := aggregate.Geo().Longitude()
		latitude = &lat
		longitude = &lng
	}

	return BookingDTO{
		ID:             aggregate.ID().Bytes(),
		OwnerID:        aggregate.OwnerID().Bytes(),
		ServiceID:      aggregate.ServiceID().Bytes(),
		ProviderID:     providerID,
		Status:         int(aggregate.Status()),
		Address:        aggregate.Address(),
		Latitude:       latitude,
		Longitude:      longitude,
		PriceAtBooking: aggregate.PriceAtBooking(),
		CompletionCode: aggregate.CompletionCode(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a booking domain aggregate.
// Reconstructs the aggregate in its persisted state using RestoreBooking.
func toDomain(dto BookingDTO) (*booking.Booking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}

	var providerID *kernel.UUID
	if dto.ProviderID != nil {
		pID, providerErr := kernel.UUIDFromBytes((*dto.ProviderID)[:])
		if providerErr != nil {
			return nil, providerErr
		}
		providerID = &pID
	}

	var geo *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, geoErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if geoErr != nil {
			return nil, geoErr
		}
		geo = &point
	}

	return booking.RestoreBooking(
		id,
		ownerID,
		serviceID,
		dto.Address,
		geo,
		dto.PriceAtBooking,
		dto.CompletionCode,
		booking.Status(dto.Status),
		providerID,
		dto.CreatedAt,
	)
}
