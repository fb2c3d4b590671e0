package repositories

import (
	"time"

	"marketplace/internal/models"
)

// NotificationRepository defines the interface for notification data access.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByRecipient(recipientID string, before time.Time, beforeID string, limit int) ([]models.Notification, error)
	UnreadCount(recipientID string) (int64, error)
	// MarkRead flips the read flag on the recipient's notifications.
	// IDs belonging to other users are ignored.
	MarkRead(recipientID string, ids []string) error
}
