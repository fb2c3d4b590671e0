package repositories

import (
	"fmt"
	"time"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNotificationRepository is a GORM implementation of NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{db: db}
}

// Create inserts a notification row.
func (r *GORMNotificationRepository) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if err := r.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByRecipient returns a keyset page of a user's notifications,
// newest first.
func (r *GORMNotificationRepository) ListByRecipient(recipientID string, before time.Time, beforeID string, limit int) ([]models.Notification, error) {
	q := r.db.Where("recipient_id = ?", recipientID)
	if !before.IsZero() {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", before, before, beforeID)
	}
	var notifications []models.Notification
	if err := q.Order("created_at desc, id desc").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications for %s: %w", recipientID, err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (r *GORMNotificationRepository) UnreadCount(recipientID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for %s: %w", recipientID, err)
	}
	return count, nil
}

// MarkRead flips the read flag on the recipient's own notifications.
func (r *GORMNotificationRepository) MarkRead(recipientID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND id IN ?", recipientID, ids).
		Update("read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read for %s: %w", recipientID, err)
	}
	return nil
}
