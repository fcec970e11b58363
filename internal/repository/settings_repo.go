package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketpos/internal/model"
)

// SettingsRepository reads and writes the single program-settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, settings *model.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the settings row, creating the default one on first access.
func (r *settingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	err := GetDB(ctx, r.db).First(&settings, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.DefaultSettings()
		if createErr := GetDB(ctx, r.db).Create(&settings).Error; createErr != nil {
			return nil, createErr
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *model.Settings) error {
	settings.ID = 1
	return GetDB(ctx, r.db).Save(settings).Error
}
