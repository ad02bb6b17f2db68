package repositories

import (
	"context"

	"SpeechLink/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification models.Notification) (string, error)
	// FindByUser returns non-deleted notifications for the user, newest first.
	FindByUser(ctx context.Context, userID string) ([]models.Notification, error)
	FindByID(ctx context.Context, id string) (models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	// SoftDelete flags the document; it is never physically removed.
	SoftDelete(ctx context.Context, id string) error
}
