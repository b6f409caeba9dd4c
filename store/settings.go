package store

import (
	"context"
	"fmt"

	"github.com/yourusername/invoicer/models"
	"gorm.io/gorm"
)

// GetSettings returns the settings row, or nil when none was saved yet.
func (s *Store) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	ok, err := first(s.db.WithContext(ctx), &settings, "id = ?", models.SettingsID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &settings, nil
}

// EnsureSettings returns the settings, creating the defaults on first use.
func (s *Store) EnsureSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := first(tx, &settings, "id = ?", models.SettingsID)
		if err != nil || ok {
			return err
		}
		settings = models.DefaultSettings()
		return tx.Create(&settings).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}
	return &settings, nil
}

// SaveSettings replaces the settings row.
func (s *Store) SaveSettings(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsID
	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
