package impl

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type MilestoneRepositoryImpl struct {
	Client *firestore.Client
}

func NewMilestoneRepository(client *firestore.Client) repositories.MilestoneRepository {
	return &MilestoneRepositoryImpl{Client: client}
}

func (r *MilestoneRepositoryImpl) FindByID(ctx context.Context, id string) (models.Milestone, error) {
	snap, err := r.Client.Collection(collectionMilestones).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.Milestone{}, repositories.ErrNotFound
		}
		return models.Milestone{}, err
	}
	var milestone models.Milestone
	if err := snap.DataTo(&milestone); err != nil {
		return models.Milestone{}, err
	}
	milestone.ID = snap.Ref.ID
	return milestone, nil
}

func (r *MilestoneRepositoryImpl) FindByChild(ctx context.Context, childID string) ([]models.Milestone, error) {
	iter := r.Client.Collection(collectionMilestones).
		Where("childId", "==", childID).
		Documents(ctx)
	defer iter.Stop()

	var milestones []models.Milestone
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var milestone models.Milestone
		if err := snap.DataTo(&milestone); err != nil {
			return nil, err
		}
		milestone.ID = snap.Ref.ID
		milestones = append(milestones, milestone)
	}

	sort.Slice(milestones, func(i, j int) bool {
		return milestones[i].TargetDate.Before(milestones[j].TargetDate)
	})
	return milestones, nil
}

func (r *MilestoneRepositoryImpl) Create(ctx context.Context, milestone models.Milestone) (string, error) {
	ref, _, err := r.Client.Collection(collectionMilestones).Add(ctx, milestone)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *MilestoneRepositoryImpl) Save(ctx context.Context, milestone models.Milestone) error {
	_, err := r.Client.Collection(collectionMilestones).Doc(milestone.ID).Set(ctx, milestone)
	return err
}

func (r *MilestoneRepositoryImpl) Delete(ctx context.Context, id string) error {
	_, err := r.Client.Collection(collectionMilestones).Doc(id).Delete(ctx)
	return err
}
