package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"SpeechLink/models"
	"SpeechLink/repositories/inmem"
	"SpeechLink/repositories/mocks"
)

func TestMarkReadRequiresOwner(t *testing.T) {
	notificationRepo := new(mocks.NotificationRepository)
	service := NewNotificationService(notificationRepo, nil)

	notification := models.Notification{ID: "notif-1", UserID: "parent-1"}
	notificationRepo.On("FindByID", mock.Anything, "notif-1").Return(notification, nil)

	other := models.User{ID: "parent-2"}
	err := service.MarkRead(context.Background(), other, "notif-1")

	assert.ErrorIs(t, err, ErrUnauthorized)
	notificationRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
}

func TestDeleteIsSoft(t *testing.T) {
	store := inmem.NewStore()
	notificationRepo := inmem.NewNotificationRepository(store)
	service := NewNotificationService(notificationRepo, nil)

	ctx := context.Background()
	owner := models.User{ID: "parent-1"}

	created, err := service.Create(ctx, models.Notification{
		UserID:  owner.ID,
		Type:    models.NotificationConnectionRequest,
		Title:   "New Connection Request",
		Message: "Aisha has invited you to connect with Timur",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, owner, created.ID))

	// Gone from the feed, still present in the store.
	feed, err := service.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, feed)

	kept, err := notificationRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, kept.Deleted)
}

func TestMarkAllReadOnlyTouchesOwnFeed(t *testing.T) {
	store := inmem.NewStore()
	notificationRepo := inmem.NewNotificationRepository(store)
	service := NewNotificationService(notificationRepo, nil)

	ctx := context.Background()
	_, err := service.Create(ctx, models.Notification{UserID: "parent-1", Title: "a"})
	require.NoError(t, err)
	_, err = service.Create(ctx, models.Notification{UserID: "parent-2", Title: "b"})
	require.NoError(t, err)

	require.NoError(t, service.MarkAllRead(ctx, models.User{ID: "parent-1"}))

	mine, err := service.List(ctx, models.User{ID: "parent-1"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Read)

	theirs, err := service.List(ctx, models.User{ID: "parent-2"})
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.False(t, theirs[0].Read)
}
