package services

import (
	"context"
	"errors"
	"time"

	"SpeechLink/interfaces"
	"SpeechLink/models"
	"SpeechLink/repositories"
)

// NotificationService handles the in-app notification feed. Documents are
// soft-deleted only; a read or deleted notification is never removed from
// the store.
type NotificationService struct {
	NotificationRepo repositories.NotificationRepository
	Realtime         interfaces.RealtimePublisher
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, realtime interfaces.RealtimePublisher) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo, Realtime: realtime}
}

func (s *NotificationService) Create(ctx context.Context, notification models.Notification) (models.Notification, error) {
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now

	id, err := s.NotificationRepo.Create(ctx, notification)
	if err != nil {
		return models.Notification{}, err
	}
	notification.ID = id

	if s.Realtime != nil {
		s.Realtime.PublishToUser(notification.UserID, notification)
	}
	return notification, nil
}

func (s *NotificationService) List(ctx context.Context, caller models.User) ([]models.Notification, error) {
	if caller.ID == "" {
		return nil, ErrUnauthenticated
	}
	return s.NotificationRepo.FindByUser(ctx, caller.ID)
}

func (s *NotificationService) MarkRead(ctx context.Context, caller models.User, id string) error {
	if err := s.requireOwner(ctx, caller, id); err != nil {
		return err
	}
	return s.NotificationRepo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, caller models.User) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	return s.NotificationRepo.MarkAllRead(ctx, caller.ID)
}

func (s *NotificationService) Delete(ctx context.Context, caller models.User, id string) error {
	if err := s.requireOwner(ctx, caller, id); err != nil {
		return err
	}
	return s.NotificationRepo.SoftDelete(ctx, id)
}

func (s *NotificationService) requireOwner(ctx context.Context, caller models.User, id string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	notification, err := s.NotificationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return repositories.ErrNotFound
		}
		return err
	}
	if notification.UserID != caller.ID {
		return ErrUnauthorized
	}
	return nil
}
