package notificationRepo

import (
	"context"

	"smarthub/models"
)

// NotificationRepository defines methods for notification inbox access.
type NotificationRepository interface {
	// Create assigns an id when n.ID is zero and inserts the notification.
	Create(ctx context.Context, n *models.Notification) error
	// GetByID returns database.ErrNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	// ListByReceiver returns the receiver's notifications, newest first.
	ListByReceiver(ctx context.Context, r models.Receiver) ([]models.Notification, error)
	// MarkRead sets one notification to READ. Already read is not an error.
	MarkRead(ctx context.Context, id int64) error
	// MarkAllRead sets every unread notification of the receiver to READ and returns how many changed.
	MarkAllRead(ctx context.Context, r models.Receiver) (int64, error)
	// CountUnread counts the receiver's UNREAD notifications.
	CountUnread(ctx context.Context, r models.Receiver) (int64, error)
}
