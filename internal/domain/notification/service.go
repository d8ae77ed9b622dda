package notification

import (
	"context"
)

// Service is the notification sink used by the approval workflows. Queueing
// never blocks the caller; delivery failures are logged by the implementation.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error

	GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, recipientID string) error

	// Subscribe streams notifications created for recipientID until the returned func is called.
	Subscribe(ctx context.Context, recipientID string) (<-chan SSEEvent, func())

	Stop()
}
