package push

// Message is an FCM HTTP v1 message. Field names follow the wire format
// described at https://firebase.google.com/docs/reference/fcm/rest.
type Message struct {
	Token        string            `json:"token,omitempty"`
	Notification *Notification     `json:"notification,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
	Android      *AndroidConfig    `json:"android,omitempty"`
	APNS         *APNSConfig       `json:"apns,omitempty"`
}

// Notification is the cross-platform visible part of a message. A message
// without it is delivered silently (data/badge only).
type Notification struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

type AndroidConfig struct {
	Priority     string               `json:"priority,omitempty"` // "normal" or "high"
	Notification *AndroidNotification `json:"notification,omitempty"`
}

type AndroidNotification struct {
	ChannelID             string `json:"channel_id,omitempty"`
	Icon                  string `json:"icon,omitempty"`
	Color                 string `json:"color,omitempty"`
	Tag                   string `json:"tag,omitempty"`
	NotificationPriority  string `json:"notification_priority,omitempty"` // PRIORITY_DEFAULT / PRIORITY_HIGH
	DefaultSound          bool   `json:"default_sound,omitempty"`
	DefaultVibrateTimings bool   `json:"default_vibrate_timings,omitempty"`
}

type APNSConfig struct {
	Headers map[string]string `json:"headers,omitempty"`
	Payload *APNSPayload      `json:"payload,omitempty"`
}

type APNSPayload struct {
	APS APS `json:"aps"`
}

type APS struct {
	Sound          string `json:"sound,omitempty"`
	Badge          *int   `json:"badge,omitempty"`
	Category       string `json:"category,omitempty"`
	MutableContent int    `json:"mutable-content,omitempty"`
}

// WithToken returns a shallow copy of the message addressed to token.
// The shared payload structs are reused across the copies.
func (m *Message) WithToken(token string) *Message {
	clone := *m
	clone.Token = token
	return &clone
}
