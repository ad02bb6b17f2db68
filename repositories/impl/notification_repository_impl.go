package impl

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type NotificationRepositoryImpl struct {
	Client *firestore.Client
}

func NewNotificationRepository(client *firestore.Client) repositories.NotificationRepository {
	return &NotificationRepositoryImpl{Client: client}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification models.Notification) (string, error) {
	ref, _, err := r.Client.Collection(collectionNotifications).Add(ctx, notification)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *NotificationRepositoryImpl) FindByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	iter := r.Client.Collection(collectionNotifications).
		Where("userId", "==", userID).
		Where("deleted", "==", false).
		Documents(ctx)
	defer iter.Stop()

	var notifications []models.Notification
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var notification models.Notification
		if err := snap.DataTo(&notification); err != nil {
			return nil, err
		}
		notification.ID = snap.Ref.ID
		notifications = append(notifications, notification)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (r *NotificationRepositoryImpl) FindByID(ctx context.Context, id string) (models.Notification, error) {
	snap, err := r.Client.Collection(collectionNotifications).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.Notification{}, repositories.ErrNotFound
		}
		return models.Notification{}, err
	}
	var notification models.Notification
	if err := snap.DataTo(&notification); err != nil {
		return models.Notification{}, err
	}
	notification.ID = snap.Ref.ID
	return notification, nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id string) error {
	_, err := r.Client.Collection(collectionNotifications).Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil && isNotFound(err) {
		return repositories.ErrNotFound
	}
	return err
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, userID string) error {
	query := r.Client.Collection(collectionNotifications).
		Where("userId", "==", userID).
		Where("read", "==", false)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		now := time.Now()
		for _, snap := range snaps {
			if err := tx.Update(snap.Ref, []firestore.Update{
				{Path: "read", Value: true},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *NotificationRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	_, err := r.Client.Collection(collectionNotifications).Doc(id).Update(ctx, []firestore.Update{
		{Path: "deleted", Value: true},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil && isNotFound(err) {
		return repositories.ErrNotFound
	}
	return err
}
