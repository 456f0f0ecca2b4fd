package settingsrepo

import (
	"context"
	"errors"
	"strconv"

	"dispatch/internal/core/domain/model/settings"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get retrieves the current platform settings.
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.PlatformSettings, error) {
	var dto SettingsDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", settingsRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("platform settings", strconv.Itoa(settingsRowID))
		}
		return nil, err
	}

	return toDomain(dto)
}

// Seed inserts the settings row with the given values if it does not exist yet.
// Called once at startup so Get never runs against an empty table.
// Existing values are left untouched.
func Seed(ctx context.Context, db *gorm.DB, defaults *settings.PlatformSettings) error {
	if err := defaults.Validate(); err != nil {
		return err
	}

	dto := SettingsDTO{
		ID:                settingsRowID,
		MinimumBalance:    defaults.MinimumBalance(),
		CommissionPercent: defaults.CommissionPercent(),
	}

	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}
