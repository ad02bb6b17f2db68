package repositories

import (
	"context"

	"SpeechLink/models"
)

type MilestoneRepository interface {
	FindByID(ctx context.Context, id string) (models.Milestone, error)
	FindByChild(ctx context.Context, childID string) ([]models.Milestone, error)
	Create(ctx context.Context, milestone models.Milestone) (string, error)
	Save(ctx context.Context, milestone models.Milestone) error
	Delete(ctx context.Context, id string) error
}
