package models

// NotificationSettings is the per-user opt-out document. A user without
// a row is fully permissive; flags default to enabled on creation.
type NotificationSettings struct {
	UserID string `gorm:"type:uuid;primaryKey"`

	PushEnabled bool `gorm:"default:true"`

	// Per-category flags
	JobPostings        bool `gorm:"default:true"`
	ApplicationUpdates bool `gorm:"default:true"`
	ChatMessages       bool `gorm:"default:true"`

	// Quiet hours as "HH:MM" local-clock strings. Both empty = disabled.
	// Start > end means the window wraps past midnight.
	QuietHoursStart string `gorm:"type:varchar(5)"`
	QuietHoursEnd   string `gorm:"type:varchar(5)"`
}
