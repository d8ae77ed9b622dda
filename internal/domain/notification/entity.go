package notification

import (
	"time"
)

// NotificationType is the severity shown by the dashboard.
type NotificationType string

const (
	TypeInfo    NotificationType = "info"
	TypeWarning NotificationType = "warning"
	TypeSuccess NotificationType = "success"
	TypeError   NotificationType = "error"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{TypeInfo, TypeWarning, TypeSuccess, TypeError}
}

// Notification is a message addressed to one employee, usually pointing at a
// record that needs their attention.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Link        *string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
