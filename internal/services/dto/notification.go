package dto

import (
	"time"

	"workpush/internal/models"
)

// ---------------- Requests ----------------

type CreateNotificationRequest struct {
	UserID    string                 `json:"user_id" validate:"required"`
	Type      string                 `json:"type" validate:"required"`
	Title     string                 `json:"title" validate:"required,max=100"`
	Message   string                 `json:"message" validate:"omitempty,max=1000"`
	RelatedID string                 `json:"related_id"`
	Priority  string                 `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Data      map[string]interface{} `json:"data"`
}

type BatchSendRequest struct {
	UserIDs   []string `json:"userIds" validate:"required,min=1"`
	Title     string   `json:"title" validate:"required,max=100"`
	Message   string   `json:"message" validate:"required,max=1000"`
	Type      string   `json:"type" validate:"required"`
	RelatedID string   `json:"relatedId"`
	Priority  string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type UpdateSettingsRequest struct {
	PushEnabled        *bool   `json:"push_enabled"`
	JobPostings        *bool   `json:"job_postings"`
	ApplicationUpdates *bool   `json:"application_updates"`
	ChatMessages       *bool   `json:"chat_messages"`
	QuietHoursStart    *string `json:"quiet_hours_start" validate:"omitempty,len=5"`
	QuietHoursEnd      *string `json:"quiet_hours_end" validate:"omitempty,len=5"`
}

type RegisterTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// ---------------- Responses ----------------

type NotificationResponse struct {
	ID           string                 `json:"id"`
	UserID       string                 `json:"user_id"`
	Type         string                 `json:"type"`
	Title        string                 `json:"title"`
	Message      string                 `json:"message"`
	RelatedID    string                 `json:"related_id,omitempty"`
	Priority     string                 `json:"priority"`
	Data         map[string]interface{} `json:"data,omitempty"`
	IsRead       bool                   `json:"is_read"`
	ReadAt       *time.Time             `json:"read_at,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	FCMMessageID string                 `json:"fcm_message_id,omitempty"`
	FCMSentAt    *time.Time             `json:"fcm_sent_at,omitempty"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int64                   `json:"total"`
	Page          int                     `json:"page"`
	PageSize      int                     `json:"page_size"`
	TotalPages    int                     `json:"total_pages"`
}

type SettingsResponse struct {
	UserID             string `json:"user_id"`
	PushEnabled        bool   `json:"push_enabled"`
	JobPostings        bool   `json:"job_postings"`
	ApplicationUpdates bool   `json:"application_updates"`
	ChatMessages       bool   `json:"chat_messages"`
	QuietHoursStart    string `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd      string `json:"quiet_hours_end,omitempty"`
}

// BatchSendError is one failed multicast send; the token is truncated
// for privacy before it ever leaves the service.
type BatchSendError struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

type BatchSendResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []BatchSendError `json:"errors"`
}

// ---------------- Criteria ----------------

type NotificationCriteria struct {
	UnreadOnly bool
	Type       models.NotificationType
	Page       int
	PageSize   int
}
