// Package providerrepo provides data transfer objects and mapping functions for provider persistence.
// This package implements the repository pattern for the provider domain aggregate, handling
// the conversion between domain entities and database representations.
package providerrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/provider"

	"github.com/google/uuid"
)

// ProviderDTO represents the database structure for persisting provider aggregates.
// A provider that has never reported a position stores NULL latitude and longitude.
type ProviderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Wallet       float64         `gorm:"type:double precision;not null"`
	Latitude     *float64        `gorm:"type:double precision"`
	Longitude    *float64        `gorm:"type:double precision"`
	Capabilities []CapabilityDTO `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for provider entities.
// Overrides GORM's default naming convention to use "providers" instead of "provider_dtos".
func (ProviderDTO) TableName() string {
	return "providers"
}

// CapabilityDTO links a provider to a service category it can perform.
// The composite primary key makes each pairing unique.
type CapabilityDTO struct {
	ProviderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName specifies the database table name for capability entities.
// Overrides GORM's default naming convention to use "provider_capabilities".
func (CapabilityDTO) TableName() string {
	return "provider_capabilities"
}

// fromDomain converts a provider domain aggregate to its database representation.
func fromDomain(aggregate *provider.Provider) ProviderDTO {
	providerID := aggregate.ID().Bytes()

	var latitude, longitude *float64
	if aggregate.Location() != nil {
		lat := aggregate.Location().Latitude()
		lng := aggregate.Location().Longitude()
		latitude = &lat
		longitude = &lng
	}

	capabilities := make([]CapabilityDTO, 0, len(aggregate.Capabilities()))
	for _, serviceID := range aggregate.Capabilities() {
		capabilities = append(capabilities, CapabilityDTO{
			ProviderID: providerID,
			ServiceID:  serviceID.Bytes(),
		})
	}

	return ProviderDTO{
		ID:           providerID,
		Name:         aggregate.Name(),
		Wallet:       aggregate.Wallet(),
		Latitude:     latitude,
		Longitude:    longitude,
		Capabilities: capabilities,
	}
}

// toDomain converts a database DTO to a provider domain aggregate.
func toDomain(dto ProviderDTO) (*provider.Provider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, geoErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if geoErr != nil {
			return nil, geoErr
		}
		location = &point
	}

	capabilities := make([]kernel.UUID, 0, len(dto.Capabilities))
	for _, capability := range dto.Capabilities {
		serviceID, capErr := kernel.UUIDFromBytes(capability.ServiceID[:])
		if capErr != nil {
			return nil, capErr
		}
		capabilities = append(capabilities, serviceID)
	}

	return provider.RestoreProvider(id, dto.Name, dto.Wallet, location, capabilities)
}
