package repositories

import (
	"context"
	"errors"

	"workpush/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	// FindByUserID returns (nil, nil) when the user has no settings row;
	// the evaluator treats that as fully permissive.
	FindByUserID(ctx context.Context, userID string) (*models.NotificationSettings, error)
	Upsert(ctx context.Context, settings *models.NotificationSettings) error
}

type SettingsRepositoryImpl struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &SettingsRepositoryImpl{db: db}
}

func (r *SettingsRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	err := r.db.WithContext(ctx).First(&settings, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepositoryImpl) Upsert(ctx context.Context, settings *models.NotificationSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
}
