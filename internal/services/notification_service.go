package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/pkg/rabbitmq"

	"github.com/google/uuid"
)

// NotificationService handles in-app notifications and per-type
// delivery preferences. HandleEvent is the consumer side of the
// marketplace event queue: it fans published events out into
// notification rows.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// NotificationPage is one page of a user's notifications.
type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	NextCursor    string                `json:"next_cursor,omitempty"`
	UnreadCount   int64                 `json:"unread_count"`
}

// List returns one page of the user's notifications, newest first,
// along with the unread total.
func (s *NotificationService) List(recipientID, cursor string, limit int) (*NotificationPage, error) {
	before, beforeID, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notificationRepo.ListByRecipient(recipientID, before, beforeID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.UnreadCount(recipientID)
	if err != nil {
		return nil, err
	}
	page := &NotificationPage{
		Notifications: notifications,
		UnreadCount:   unread,
	}
	if len(notifications) == limit && limit > 0 {
		last := notifications[len(notifications)-1]
		page.NextCursor = EncodeCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

// MarkRead marks the user's own notifications as read.
func (s *NotificationService) MarkRead(recipientID string, ids []string) error {
	return s.notificationRepo.MarkRead(recipientID, ids)
}

// Preferences is the per-type opt-in set. Nil fields are left unchanged.
type Preferences struct {
	Orders  *bool `json:"orders"`
	Reviews *bool `json:"reviews"`
	Forum   *bool `json:"forum"`
}

// UpdatePreferences toggles the user's notification opt-ins.
func (s *NotificationService) UpdatePreferences(userID string, prefs Preferences) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if prefs.Orders != nil {
		user.NotifyOrders = *prefs.Orders
	}
	if prefs.Reviews != nil {
		user.NotifyReviews = *prefs.Reviews
	}
	if prefs.Forum != nil {
		user.NotifyForum = *prefs.Forum
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Notify writes a notification row unless the recipient opted out of
// the type.
func (s *NotificationService) Notify(n *models.Notification) error {
	recipient, err := s.userRepo.GetByID(n.RecipientID)
	if err != nil {
		return err
	}
	switch n.Type {
	case models.NotifyOrder:
		if !recipient.NotifyOrders {
			return nil
		}
	case models.NotifyReview:
		if !recipient.NotifyReviews {
			return nil
		}
	case models.NotifyForum:
		if !recipient.NotifyForum {
			return nil
		}
	default:
		return fmt.Errorf("unknown notification type: %s", n.Type)
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return s.notificationRepo.Create(n)
}

// HandleEvent turns a queue event into notification rows. Unknown event
// types are logged and dropped rather than requeued.
func (s *NotificationService) HandleEvent(event rabbitmq.Event) error {
	switch event.Type {
	case EventOrderCreated:
		var payload OrderCreatedEvent
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
		}
		for _, sellerID := range payload.SellerIDs {
			err := s.Notify(&models.Notification{
				RecipientID: sellerID,
				Type:        models.NotifyOrder,
				ActorID:     payload.BuyerID,
				SubjectType: "order",
				SubjectID:   payload.OrderID,
				Message:     "You have a new order.",
			})
			if err != nil {
				return err
			}
		}
	case EventReviewCreated:
		var payload ReviewCreatedEvent
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
		}
		return s.Notify(&models.Notification{
			RecipientID: payload.SellerID,
			Type:        models.NotifyReview,
			ActorID:     payload.AuthorID,
			SubjectType: "review",
			SubjectID:   payload.ReviewID,
			Message:     fmt.Sprintf("One of your products received a %d-star review.", payload.Rating),
		})
	case EventPostCreated:
		var payload PostCreatedEvent
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
		}
		return s.Notify(&models.Notification{
			RecipientID: payload.ThreadAuthorID,
			Type:        models.NotifyForum,
			ActorID:     payload.AuthorID,
			SubjectType: "post",
			SubjectID:   payload.PostID,
			Message:     "Someone replied to your thread.",
		})
	default:
		log.Printf("Ignoring unknown event type %q", event.Type)
	}
	return nil
}
