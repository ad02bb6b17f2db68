package repositories

import (
	"context"

	"SpeechLink/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByEmailAndType(ctx context.Context, email, userType string) (models.User, error)
	// Save upserts the document at user.ID.
	Save(ctx context.Context, user models.User) error
	UpdateFCMToken(ctx context.Context, id, token string) error
}
