package impl

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type ChildRepositoryImpl struct {
	Client *firestore.Client
}

func NewChildRepository(client *firestore.Client) repositories.ChildRepository {
	return &ChildRepositoryImpl{Client: client}
}

func (r *ChildRepositoryImpl) FindByID(ctx context.Context, id string) (models.Child, error) {
	snap, err := r.Client.Collection(collectionChildren).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.Child{}, repositories.ErrNotFound
		}
		return models.Child{}, err
	}
	var child models.Child
	if err := snap.DataTo(&child); err != nil {
		return models.Child{}, err
	}
	child.ID = snap.Ref.ID
	return child, nil
}

func (r *ChildRepositoryImpl) FindByUser(ctx context.Context, uid string) ([]models.Child, error) {
	query := r.Client.Collection(collectionChildren).WhereEntity(firestore.OrFilter{
		Filters: []firestore.EntityFilter{
			firestore.PropertyFilter{Path: "primaryParentId", Operator: "==", Value: uid},
			firestore.PropertyFilter{Path: "parentIds", Operator: "array-contains", Value: uid},
			firestore.PropertyFilter{Path: "specialistIds", Operator: "array-contains", Value: uid},
		},
	})

	iter := query.Documents(ctx)
	defer iter.Stop()

	var children []models.Child
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var child models.Child
		if err := snap.DataTo(&child); err != nil {
			return nil, err
		}
		child.ID = snap.Ref.ID
		children = append(children, child)
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].CreatedAt.After(children[j].CreatedAt)
	})
	return children, nil
}

func (r *ChildRepositoryImpl) Create(ctx context.Context, child models.Child) (string, error) {
	ref, _, err := r.Client.Collection(collectionChildren).Add(ctx, child)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *ChildRepositoryImpl) Save(ctx context.Context, child models.Child) error {
	_, err := r.Client.Collection(collectionChildren).Doc(child.ID).Set(ctx, child)
	return err
}

func (r *ChildRepositoryImpl) Delete(ctx context.Context, id string) error {
	_, err := r.Client.Collection(collectionChildren).Doc(id).Delete(ctx)
	return err
}
