package services

import (
	"context"

	"workpush/internal/models"
	"workpush/internal/repositories"
	"workpush/internal/services/dto"
	"workpush/pkg/apperrors"
)

type SettingsService interface {
	// GetSettings returns the stored settings, or the permissive defaults
	// when the user has never saved any.
	GetSettings(ctx context.Context, userID string) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, userID string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	userRepo     repositories.UserRepository
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, userRepo repositories.UserRepository) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
	}
}

func (s *settingsService) GetSettings(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	settings, err := s.settingsRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = defaultSettings(userID)
	}
	return buildSettingsResponse(settings), nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	settings, err := s.settingsRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = defaultSettings(userID)
	}

	if req.PushEnabled != nil {
		settings.PushEnabled = *req.PushEnabled
	}
	if req.JobPostings != nil {
		settings.JobPostings = *req.JobPostings
	}
	if req.ApplicationUpdates != nil {
		settings.ApplicationUpdates = *req.ApplicationUpdates
	}
	if req.ChatMessages != nil {
		settings.ChatMessages = *req.ChatMessages
	}
	if req.QuietHoursStart != nil {
		if *req.QuietHoursStart != "" {
			if _, ok := parseClock(*req.QuietHoursStart); !ok {
				return nil, apperrors.InvalidArgument("quiet_hours_start must be HH:MM")
			}
		}
		settings.QuietHoursStart = *req.QuietHoursStart
	}
	if req.QuietHoursEnd != nil {
		if *req.QuietHoursEnd != "" {
			if _, ok := parseClock(*req.QuietHoursEnd); !ok {
				return nil, apperrors.InvalidArgument("quiet_hours_end must be HH:MM")
			}
		}
		settings.QuietHoursEnd = *req.QuietHoursEnd
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	return buildSettingsResponse(settings), nil
}

func defaultSettings(userID string) *models.NotificationSettings {
	return &models.NotificationSettings{
		UserID:             userID,
		PushEnabled:        true,
		JobPostings:        true,
		ApplicationUpdates: true,
		ChatMessages:       true,
	}
}

func buildSettingsResponse(settings *models.NotificationSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		UserID:             settings.UserID,
		PushEnabled:        settings.PushEnabled,
		JobPostings:        settings.JobPostings,
		ApplicationUpdates: settings.ApplicationUpdates,
		ChatMessages:       settings.ChatMessages,
		QuietHoursStart:    settings.QuietHoursStart,
		QuietHoursEnd:      settings.QuietHoursEnd,
	}
}
