package inmem

import (
	"context"
	"sort"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type ChildRepository struct {
	store *Store
}

func NewChildRepository(store *Store) repositories.ChildRepository {
	return &ChildRepository{store: store}
}

func (r *ChildRepository) FindByID(ctx context.Context, id string) (models.Child, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	child, ok := r.store.children[id]
	if !ok {
		return models.Child{}, repositories.ErrNotFound
	}
	return cloneChild(child), nil
}

func (r *ChildRepository) FindByUser(ctx context.Context, uid string) ([]models.Child, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var children []models.Child
	for _, child := range r.store.children {
		if child.HasAccess(uid) {
			children = append(children, cloneChild(child))
		}
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].CreatedAt.After(children[j].CreatedAt)
	})
	return children, nil
}

func (r *ChildRepository) Create(ctx context.Context, child models.Child) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	child.ID = newID()
	r.store.children[child.ID] = cloneChild(child)
	return child.ID, nil
}

func (r *ChildRepository) Save(ctx context.Context, child models.Child) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.children[child.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.store.children[child.ID] = cloneChild(child)
	return nil
}

func (r *ChildRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.children, id)
	return nil
}
