package inmem

import (
	"context"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repositories.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (r *UserRepository) FindByEmailAndType(ctx context.Context, email, userType string) (models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Email == email && user.UserType == userType {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (r *UserRepository) Save(ctx context.Context, user models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.ID == "" {
		user.ID = newID()
	}
	r.store.users[user.ID] = user
	return nil
}

func (r *UserRepository) UpdateFCMToken(ctx context.Context, id, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.FCMToken = token
	r.store.users[id] = user
	return nil
}
