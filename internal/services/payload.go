package services

import (
	"time"

	"workpush/internal/models"
	"workpush/internal/push"
)

// typeStyle is the Android visual styling associated with a notification type.
type typeStyle struct {
	Icon  string
	Color string
}

var typeStyles = map[models.NotificationType]typeStyle{
	models.NotificationTypeJobPosted:         {Icon: "ic_work", Color: "#6750A4"},
	models.NotificationTypeJobApplied:        {Icon: "ic_person_add", Color: "#00897B"},
	models.NotificationTypeApplicationStatus: {Icon: "ic_assignment", Color: "#43A047"},
	models.NotificationTypeChat:              {Icon: "ic_chat", Color: "#1E88E5"},
	models.NotificationTypeJobReminder:       {Icon: "ic_alarm", Color: "#FB8C00"},
}

var defaultStyle = typeStyle{Icon: "ic_launcher", Color: "#6750A4"}

func styleFor(t models.NotificationType) typeStyle {
	if style, ok := typeStyles[t]; ok {
		return style
	}
	return defaultStyle
}

func isHighPriority(p models.NotificationPriority) bool {
	return p == models.NotificationPriorityUrgent || p == models.NotificationPriorityHigh
}

// buildPushMessage maps a notification record to its delivery payload.
// Pure: same record, same message. The token is filled in by the dispatcher.
func buildPushMessage(n *models.Notification) *push.Message {
	style := styleFor(n.Type)

	priority := n.Priority
	if priority == "" {
		priority = models.NotificationPriorityMedium
	}

	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	androidPriority := "normal"
	androidNotifPriority := "PRIORITY_DEFAULT"
	apnsPriority := "5"
	if isHighPriority(priority) {
		androidPriority = "high"
		androidNotifPriority = "PRIORITY_HIGH"
		apnsPriority = "10"
	}

	// New-notification pushes bump the badge by one; the read-state
	// synchronizer later replaces it with the exact unread count.
	badge := 1

	return &push.Message{
		Notification: &push.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: map[string]string{
			"notificationId": n.ID,
			"type":           string(n.Type),
			"relatedId":      n.RelatedID,
			"priority":       string(priority),
			"createdAt":      createdAt.Format(time.RFC3339),
		},
		Android: &push.AndroidConfig{
			Priority: androidPriority,
			Notification: &push.AndroidNotification{
				ChannelID:             "high_importance_channel",
				Icon:                  style.Icon,
				Color:                 style.Color,
				Tag:                   string(n.Type), // group notifications by type
				NotificationPriority:  androidNotifPriority,
				DefaultSound:          true,
				DefaultVibrateTimings: true,
			},
		},
		APNS: &push.APNSConfig{
			Headers: map[string]string{
				"apns-priority": apnsPriority,
			},
			Payload: &push.APNSPayload{
				APS: push.APS{
					Sound:          "default",
					Badge:          &badge,
					Category:       string(n.Type),
					MutableContent: 1,
				},
			},
		},
	}
}

// buildBadgeMessage builds a silent badge-only update carrying the user's
// current unread count.
func buildBadgeMessage(token string, unreadCount int) *push.Message {
	badge := unreadCount
	return &push.Message{
		Token: token,
		APNS: &push.APNSConfig{
			Payload: &push.APNSPayload{
				APS: push.APS{
					Badge: &badge,
				},
			},
		},
	}
}
