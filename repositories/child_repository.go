package repositories

import (
	"context"

	"SpeechLink/models"
)

type ChildRepository interface {
	FindByID(ctx context.Context, id string) (models.Child, error)
	// FindByUser returns every profile the user can see: primary parent,
	// co-parent or specialist.
	FindByUser(ctx context.Context, uid string) ([]models.Child, error)
	Create(ctx context.Context, child models.Child) (string, error)
	Save(ctx context.Context, child models.Child) error
	Delete(ctx context.Context, id string) error
}
