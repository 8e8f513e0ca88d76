package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"makementors-be/internal/model"
	"makementors-be/internal/pkg/logger"
	"makementors-be/internal/repository"
	"makementors-be/pkg/events"
	pktNats "makementors-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	var title, message string
	switch typeCode {
	case events.TypeUserRegistered:
		title = "Welcome to MakeMentors!"
		message = "Pick a mentor from the catalog or create your own to get started."
	case events.TypeSubscriptionUpdated:
		tier, _ := payload["tier"].(string)
		if subscribed, _ := payload["subscribed"].(bool); subscribed {
			title = "Subscription active"
			message = fmt.Sprintf("Your %s plan is now active. Enjoy unlimited mentor conversations!", tier)
		} else {
			title = "Subscription ended"
			message = "Your plan has ended. You're back on the free tier."
		}
	default:
		// Titling and other internal events don't produce inbox entries.
		return nil
	}

	uidStr, ok := payload["user_id"].(string)
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("No user_id in payload for event %s", typeCode), nil)
		return nil
	}
	userID, err := uuid.Parse(uidStr)
	if err != nil {
		s.logger.Warn("NotificationService", "Invalid user_id in event payload", map[string]interface{}{"user_id": uidStr})
		return nil
	}

	metaJSON, _ := json.Marshal(payload)
	notif := model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		Metadata:  datatypes.JSON(metaJSON),
		CreatedAt: time.Now(),
		IsRead:    false,
	}

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
		return err // NATS will retry
	}

	if s.delivery != nil {
		s.delivery.Send(userID, notif)
	}
	return nil
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
