package repositories

import (
	"context"

	"SpeechLink/models"
)

type SessionRepository interface {
	FindByID(ctx context.Context, id string) (models.Session, error)
	FindByUser(ctx context.Context, uid string) ([]models.Session, error)
	Create(ctx context.Context, session models.Session) (string, error)
	Save(ctx context.Context, session models.Session) error
	Delete(ctx context.Context, id string) error
	// AddMessage appends a message to the session's messages subcollection
	// and creates the attendee notifications in the same atomic commit.
	AddMessage(ctx context.Context, sessionID string, message models.SessionMessage, notifications []models.Notification) error
	ListMessages(ctx context.Context, sessionID string) ([]models.SessionMessage, error)
}
