package models

import "time"

// Notification types. Each type maps to a user preference toggle.
const (
	NotifyOrder  = "order"
	NotifyReview = "review"
	NotifyForum  = "forum"
)

// Notification represents an in-app notification for a user.
type Notification struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RecipientID string    `json:"recipient_id" gorm:"index;type:varchar(36)"`
	Type        string    `json:"type" gorm:"type:varchar(16)" validate:"required,oneof=order review forum"`
	ActorID     string    `json:"actor_id" gorm:"type:varchar(36)"`
	SubjectType string    `json:"subject_type" gorm:"type:varchar(16)"` // order, review, thread, post
	SubjectID   string    `json:"subject_id" gorm:"type:varchar(36)"`
	Message     string    `json:"message" validate:"omitempty,max=500"`
	Read        bool      `json:"read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
}
