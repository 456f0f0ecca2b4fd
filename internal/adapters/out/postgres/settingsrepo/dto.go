// Package settingsrepo provides persistence for the platform-wide dispatch settings.
// Settings are stored as a single row that operators tune without redeploying.
package settingsrepo

import (
	"dispatch/internal/core/domain/model/settings"
)

// settingsRowID is the primary key of the only settings row.
const settingsRowID = 1

// SettingsDTO represents the database structure for the platform settings row.
type SettingsDTO struct {
	ID                int     `gorm:"primaryKey"`
	MinimumBalance    float64 `gorm:"type:double precision;not null"`
	CommissionPercent float64 `gorm:"type:double precision;not null"`
}

// TableName specifies the database table name for the settings row.
func (SettingsDTO) TableName() string {
	return "platform_settings"
}

// toDomain converts the settings row to the domain value object.
func toDomain(dto SettingsDTO) (*settings.PlatformSettings, error) {
	return settings.RestorePlatformSettings(dto.MinimumBalance, dto.CommissionPercent)
}
