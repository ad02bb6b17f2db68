package inmem

import (
	"context"
	"sort"
	"time"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type NotificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) repositories.NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) Create(ctx context.Context, notification models.Notification) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notification = cloneNotification(notification)
	notification.ID = newID()
	r.store.notifications[notification.ID] = notification
	return notification.ID, nil
}

func (r *NotificationRepository) FindByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var notifications []models.Notification
	for _, notification := range r.store.notifications {
		if notification.UserID == userID && !notification.Deleted {
			notifications = append(notifications, cloneNotification(notification))
		}
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (models.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notification, ok := r.store.notifications[id]
	if !ok {
		return models.Notification{}, repositories.ErrNotFound
	}
	return cloneNotification(notification), nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notification, ok := r.store.notifications[id]
	if !ok {
		return repositories.ErrNotFound
	}
	notification.Read = true
	notification.UpdatedAt = time.Now()
	r.store.notifications[id] = notification
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	for id, notification := range r.store.notifications {
		if notification.UserID == userID && !notification.Read {
			notification.Read = true
			notification.UpdatedAt = now
			r.store.notifications[id] = notification
		}
	}
	return nil
}

func (r *NotificationRepository) SoftDelete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notification, ok := r.store.notifications[id]
	if !ok {
		return repositories.ErrNotFound
	}
	notification.Deleted = true
	notification.UpdatedAt = time.Now()
	r.store.notifications[id] = notification
	return nil
}
