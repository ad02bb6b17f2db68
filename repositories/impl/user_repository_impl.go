package impl

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type UserRepositoryImpl struct {
	Client *firestore.Client
}

func NewUserRepository(client *firestore.Client) repositories.UserRepository {
	return &UserRepositoryImpl{Client: client}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (models.User, error) {
	snap, err := r.Client.Collection(collectionUsers).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.User{}, repositories.ErrNotFound
		}
		return models.User{}, err
	}
	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return models.User{}, err
	}
	user.ID = snap.Ref.ID
	return user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (models.User, error) {
	query := r.Client.Collection(collectionUsers).
		Where("email", "==", email).
		Limit(1)
	return r.firstUser(ctx, query)
}

func (r *UserRepositoryImpl) FindByEmailAndType(ctx context.Context, email, userType string) (models.User, error) {
	query := r.Client.Collection(collectionUsers).
		Where("email", "==", email).
		Where("userType", "==", userType).
		Limit(1)
	return r.firstUser(ctx, query)
}

func (r *UserRepositoryImpl) firstUser(ctx context.Context, query firestore.Query) (models.User, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return models.User{}, repositories.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return models.User{}, err
	}
	user.ID = snap.Ref.ID
	return user, nil
}

func (r *UserRepositoryImpl) Save(ctx context.Context, user models.User) error {
	_, err := r.Client.Collection(collectionUsers).Doc(user.ID).Set(ctx, user)
	return err
}

func (r *UserRepositoryImpl) UpdateFCMToken(ctx context.Context, id, token string) error {
	_, err := r.Client.Collection(collectionUsers).Doc(id).Update(ctx, []firestore.Update{
		{Path: "fcmToken", Value: token},
	})
	if err != nil && isNotFound(err) {
		return repositories.ErrNotFound
	}
	return err
}
