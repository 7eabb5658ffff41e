package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTypeJobPosted         NotificationType = "job_posted"
	NotificationTypeJobApplied        NotificationType = "job_applied"
	NotificationTypeApplicationStatus NotificationType = "application_status"
	NotificationTypeChat              NotificationType = "chat"
	NotificationTypeJobReminder       NotificationType = "job_reminder"
	NotificationTypeOther             NotificationType = "other"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityHigh   NotificationPriority = "high"
	NotificationPriorityUrgent NotificationPriority = "urgent"
)

type Notification struct {
	BaseModel
	UserID    string               `gorm:"not null;index"`
	Type      NotificationType     `gorm:"type:varchar(30);not null"`
	Title     string               `gorm:"not null"`
	Message   string
	RelatedID string               // job, application or dialog the notification points at
	Priority  NotificationPriority `gorm:"type:varchar(10);default:'medium'"`
	Data      datatypes.JSON       `gorm:"type:jsonb"` // {"job_id": "...", "employer_id": "..."}
	IsRead    bool                 `gorm:"default:false"`
	ReadAt    *time.Time

	// Delivery receipt, written by the push pipeline after a successful send.
	FCMMessageID string
	FCMSentAt    *time.Time
}

// ValidNotificationType reports whether t is one of the known types.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTypeJobPosted, NotificationTypeJobApplied,
		NotificationTypeApplicationStatus, NotificationTypeChat,
		NotificationTypeJobReminder, NotificationTypeOther:
		return true
	}
	return false
}
