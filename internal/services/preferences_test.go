package services

import (
	"testing"
	"time"

	"workpush/internal/models"

	"github.com/stretchr/testify/assert"
)

func clockAt(hour, minute int) time.Time {
	return time.Date(2025, 6, 15, hour, minute, 0, 0, time.Local)
}

func permissiveSettings() *models.NotificationSettings {
	return &models.NotificationSettings{
		UserID:             "user-1",
		PushEnabled:        true,
		JobPostings:        true,
		ApplicationUpdates: true,
		ChatMessages:       true,
	}
}

func TestEvaluatePreferences_NilSettingsAllowsEverything(t *testing.T) {
	allowed, reason := evaluatePreferences(nil, models.NotificationTypeChat, clockAt(3, 0))
	assert.True(t, allowed)
	assert.Empty(t, reason)
}

func TestEvaluatePreferences_CategoryFlags(t *testing.T) {
	tests := []struct {
		name             string
		notificationType models.NotificationType
		disable          func(*models.NotificationSettings)
		wantAllowed      bool
	}{
		{
			name:             "job_posted blocked by jobPostings",
			notificationType: models.NotificationTypeJobPosted,
			disable:          func(s *models.NotificationSettings) { s.JobPostings = false },
			wantAllowed:      false,
		},
		{
			name:             "job_applied blocked by applicationUpdates",
			notificationType: models.NotificationTypeJobApplied,
			disable:          func(s *models.NotificationSettings) { s.ApplicationUpdates = false },
			wantAllowed:      false,
		},
		{
			name:             "application_status blocked by applicationUpdates",
			notificationType: models.NotificationTypeApplicationStatus,
			disable:          func(s *models.NotificationSettings) { s.ApplicationUpdates = false },
			wantAllowed:      false,
		},
		{
			name:             "chat blocked by chatMessages",
			notificationType: models.NotificationTypeChat,
			disable:          func(s *models.NotificationSettings) { s.ChatMessages = false },
			wantAllowed:      false,
		},
		{
			name:             "job_reminder has no category flag",
			notificationType: models.NotificationTypeJobReminder,
			disable: func(s *models.NotificationSettings) {
				s.JobPostings = false
				s.ApplicationUpdates = false
				s.ChatMessages = false
			},
			wantAllowed: true,
		},
		{
			name:             "unrelated flag does not block",
			notificationType: models.NotificationTypeChat,
			disable:          func(s *models.NotificationSettings) { s.JobPostings = false },
			wantAllowed:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := permissiveSettings()
			tt.disable(settings)

			allowed, reason := evaluatePreferences(settings, tt.notificationType, clockAt(12, 0))
			assert.Equal(t, tt.wantAllowed, allowed)
			if !tt.wantAllowed {
				assert.Equal(t, suppressCategoryDisabled, reason)
			}
		})
	}
}

func TestEvaluatePreferences_GlobalFlag(t *testing.T) {
	settings := permissiveSettings()
	settings.PushEnabled = false

	allowed, reason := evaluatePreferences(settings, models.NotificationTypeJobReminder, clockAt(12, 0))
	assert.False(t, allowed)
	assert.Equal(t, suppressPushDisabled, reason)
}

// The reported reason follows the check order: category, then quiet
// hours, then the global flag.
func TestEvaluatePreferences_ReasonPrecedence(t *testing.T) {
	settings := permissiveSettings()
	settings.ChatMessages = false
	settings.PushEnabled = false
	settings.QuietHoursStart = "22:00"
	settings.QuietHoursEnd = "06:00"

	allowed, reason := evaluatePreferences(settings, models.NotificationTypeChat, clockAt(23, 0))
	assert.False(t, allowed)
	assert.Equal(t, suppressCategoryDisabled, reason)

	settings.ChatMessages = true
	allowed, reason = evaluatePreferences(settings, models.NotificationTypeChat, clockAt(23, 0))
	assert.False(t, allowed)
	assert.Equal(t, suppressQuietHours, reason)

	allowed, reason = evaluatePreferences(settings, models.NotificationTypeChat, clockAt(12, 0))
	assert.False(t, allowed)
	assert.Equal(t, suppressPushDisabled, reason)
}

func TestEvaluatePreferences_QuietHours(t *testing.T) {
	settings := permissiveSettings()
	settings.QuietHoursStart = "22:00"
	settings.QuietHoursEnd = "06:00"

	allowed, reason := evaluatePreferences(settings, models.NotificationTypeChat, clockAt(23, 0))
	assert.False(t, allowed)
	assert.Equal(t, suppressQuietHours, reason)
}

func TestInQuietHours_WrappingWindow(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         bool
	}{
		{23, 0, true},  // evening side
		{5, 0, true},   // morning side
		{12, 0, false}, // daytime
		{22, 0, true},  // inclusive start
		{6, 0, false},  // exclusive end
		{5, 59, true},
	}

	for _, tt := range tests {
		got := inQuietHours("22:00", "06:00", clockAt(tt.hour, tt.minute))
		assert.Equal(t, tt.want, got, "at %02d:%02d", tt.hour, tt.minute)
	}
}

func TestInQuietHours_NonWrappingWindow(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         bool
	}{
		{12, 0, true},
		{8, 0, false},
		{18, 0, false},
		{9, 0, true},   // inclusive start
		{17, 0, false}, // exclusive end
	}

	for _, tt := range tests {
		got := inQuietHours("09:00", "17:00", clockAt(tt.hour, tt.minute))
		assert.Equal(t, tt.want, got, "at %02d:%02d", tt.hour, tt.minute)
	}
}

func TestInQuietHours_DisabledOrMalformed(t *testing.T) {
	assert.False(t, inQuietHours("", "", clockAt(3, 0)))
	assert.False(t, inQuietHours("22:00", "", clockAt(23, 0)))
	assert.False(t, inQuietHours("", "06:00", clockAt(23, 0)))
	assert.False(t, inQuietHours("25:00", "06:00", clockAt(3, 0)))
	assert.False(t, inQuietHours("22:xx", "06:00", clockAt(23, 0)))
}

func TestParseClock(t *testing.T) {
	minutes, ok := parseClock("22:30")
	assert.True(t, ok)
	assert.Equal(t, 22*60+30, minutes)

	minutes, ok = parseClock("00:00")
	assert.True(t, ok)
	assert.Equal(t, 0, minutes)

	_, ok = parseClock("24:00")
	assert.False(t, ok)
	_, ok = parseClock("12:60")
	assert.False(t, ok)
	_, ok = parseClock("noon")
	assert.False(t, ok)
}
