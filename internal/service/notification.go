package service

import (
	"context"
	"fmt"

	"motorent-backend/internal/domain"
	"motorent-backend/internal/logger"
	"motorent-backend/internal/push"
	"motorent-backend/internal/repository"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	pushSender       push.Sender
	emailSender      EmailSender
}

// NewNotificationService builds the fan-out service. pushSender and
// emailSender may be nil; channels without a sender are skipped.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	pushSender push.Sender,
	emailSender EmailSender,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		pushSender:       pushSender,
		emailSender:      emailSender,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID int64, title, message string, attrs map[string]string) {
	note := &domain.Notification{
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		logger.SideEffectFailure("notification_persist", err, "user_id", userID, "title", title)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.SideEffectFailure("notification_user_lookup", err, "user_id", userID)
		return
	}

	if s.pushSender != nil && user.DeviceToken != "" {
		if err := s.pushSender.Send(ctx, user.DeviceToken, title, message, attrs); err != nil {
			logger.SideEffectFailure("notification_push", err, "user_id", userID)
		}
	}

	if s.emailSender != nil && user.Email != "" {
		body := fmt.Sprintf("<p>%s</p>", message)
		if err := s.emailSender.Send(user.Email, user.Name, title, message, body); err != nil {
			logger.SideEffectFailure("notification_email", err, "user_id", userID)
		}
	}
}

func (s *notificationService) List(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.notificationRepo.List(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	return s.notificationRepo.MarkAsRead(ctx, notificationID, userID)
}
