package services

import (
	"strconv"
	"strings"
	"time"

	"workpush/internal/models"
)

// Suppression reasons, logged by the dispatcher but never surfaced to callers.
const (
	suppressCategoryDisabled = "category disabled"
	suppressPushDisabled     = "push notifications disabled"
	suppressQuietHours       = "quiet hours"
)

// categoryFlag maps a notification type to the settings flag that gates it.
// Types without an entry are not category-blocked.
var categoryFlag = map[models.NotificationType]func(*models.NotificationSettings) bool{
	models.NotificationTypeJobPosted:         func(s *models.NotificationSettings) bool { return s.JobPostings },
	models.NotificationTypeJobApplied:        func(s *models.NotificationSettings) bool { return s.ApplicationUpdates },
	models.NotificationTypeApplicationStatus: func(s *models.NotificationSettings) bool { return s.ApplicationUpdates },
	models.NotificationTypeChat:              func(s *models.NotificationSettings) bool { return s.ChatMessages },
}

// evaluatePreferences decides whether a notification of the given type may
// be delivered under the user's settings at the given wall-clock time.
// A nil settings document is fully permissive. The check order (category,
// then quiet hours, then the global flag) determines which reason is
// reported when several would apply; the first failing check wins.
func evaluatePreferences(settings *models.NotificationSettings, notificationType models.NotificationType, now time.Time) (bool, string) {
	if settings == nil {
		return true, ""
	}

	if flag, ok := categoryFlag[notificationType]; ok && !flag(settings) {
		return false, suppressCategoryDisabled
	}

	if inQuietHours(settings.QuietHoursStart, settings.QuietHoursEnd, now) {
		return false, suppressQuietHours
	}

	if !settings.PushEnabled {
		return false, suppressPushDisabled
	}

	return true, ""
}

// inQuietHours reports whether now falls within [start, end), compared in
// minutes-of-day. A window with start > end wraps past midnight. The check
// is skipped unless both bounds are set and parse as "HH:MM".
func inQuietHours(startStr, endStr string, now time.Time) bool {
	if startStr == "" || endStr == "" {
		return false
	}

	start, ok := parseClock(startStr)
	if !ok {
		return false
	}
	end, ok := parseClock(endStr)
	if !ok {
		return false
	}

	current := now.Hour()*60 + now.Minute()

	if start < end {
		return current >= start && current < end
	}
	return current >= start || current < end
}

// parseClock converts an "HH:MM" string to minutes past midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
