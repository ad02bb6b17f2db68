package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"SpeechLink/models"
	"SpeechLink/repositories"
	"SpeechLink/repositories/inmem"
	"SpeechLink/repositories/mocks"
)

type pushDispatcherMock struct {
	mock.Mock
}

func (m *pushDispatcherMock) SendSessionMessage(ctx context.Context, sessionID, message, senderName string, attendeeIDs []string) error {
	args := m.Called(ctx, sessionID, message, senderName, attendeeIDs)
	return args.Error(0)
}

func TestCreateSessionVanitySpecialistIsConfirmed(t *testing.T) {
	store := inmem.NewStore()
	childRepo := inmem.NewChildRepository(store)
	sessionRepo := inmem.NewSessionRepository(store)
	service := NewSessionService(sessionRepo, childRepo, nil, nil)

	ctx := context.Background()
	parent := models.User{ID: "parent-1", Name: "Aisha", UserType: models.UserTypeParent}
	childID, err := childRepo.Create(ctx, models.Child{Name: "Timur", PrimaryParentID: parent.ID, ParentIDs: []string{parent.ID}})
	require.NoError(t, err)

	session, err := service.CreateSession(ctx, parent, SessionInput{
		ChildID:        childID,
		SpecialistName: "Dr. Kim (private)",
		SpecialistType: models.SpecialistTypeVanity,
		Date:           time.Now().AddDate(0, 0, 7),
		StartTime:      "10:00",
		EndTime:        "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusConfirmed, session.Status)
	assert.Empty(t, session.SpecialistID)
}

func TestCreateSessionAccountSpecialistStartsPending(t *testing.T) {
	store := inmem.NewStore()
	childRepo := inmem.NewChildRepository(store)
	sessionRepo := inmem.NewSessionRepository(store)
	service := NewSessionService(sessionRepo, childRepo, nil, nil)

	ctx := context.Background()
	parent := models.User{ID: "parent-1", Name: "Aisha", UserType: models.UserTypeParent}
	childID, err := childRepo.Create(ctx, models.Child{
		Name:            "Timur",
		PrimaryParentID: parent.ID,
		ParentIDs:       []string{parent.ID},
		SpecialistIDs:   []string{"spec-1"},
	})
	require.NoError(t, err)

	session, err := service.CreateSession(ctx, parent, SessionInput{
		ChildID:        childID,
		SpecialistID:   "spec-1",
		SpecialistName: "Dana Speech",
		SpecialistType: models.SpecialistTypeAccount,
		Date:           time.Now().AddDate(0, 0, 7),
		StartTime:      "10:00",
		EndTime:        "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusPending, session.Status)

	// The invited specialist confirms.
	specialist := models.User{ID: "spec-1", Name: "Dana Speech", UserType: models.UserTypeSpecialist}
	confirmed, err := service.RespondToSession(ctx, specialist, session.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusConfirmed, confirmed.Status)
}

func TestListSessionsHidesPrivateNotesFromOthers(t *testing.T) {
	store := inmem.NewStore()
	childRepo := inmem.NewChildRepository(store)
	sessionRepo := inmem.NewSessionRepository(store)
	service := NewSessionService(sessionRepo, childRepo, nil, nil)

	ctx := context.Background()
	parent := models.User{ID: "parent-1", Name: "Aisha", UserType: models.UserTypeParent}
	childID, err := childRepo.Create(ctx, models.Child{
		Name:            "Timur",
		PrimaryParentID: parent.ID,
		ParentIDs:       []string{parent.ID},
		SpecialistIDs:   []string{"spec-1"},
	})
	require.NoError(t, err)

	_, err = service.CreateSession(ctx, parent, SessionInput{
		ChildID:        childID,
		SpecialistID:   "spec-1",
		SpecialistName: "Dana Speech",
		SpecialistType: models.SpecialistTypeAccount,
		Date:           time.Now().AddDate(0, 0, 7),
		StartTime:      "10:00",
		EndTime:        "11:00",
		PrivateNotes:   "prefers morning slots",
	})
	require.NoError(t, err)

	mine, err := service.ListSessions(ctx, parent)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "prefers morning slots", mine[0].PrivateNotes)

	specialist := models.User{ID: "spec-1", Name: "Dana Speech", UserType: models.UserTypeSpecialist}
	theirs, err := service.ListSessions(ctx, specialist)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Empty(t, theirs[0].PrivateNotes)
}

func TestSendMessageNotifiesOtherAttendees(t *testing.T) {
	store := inmem.NewStore()
	childRepo := inmem.NewChildRepository(store)
	sessionRepo := inmem.NewSessionRepository(store)
	notificationRepo := inmem.NewNotificationRepository(store)

	push := new(pushDispatcherMock)
	service := NewSessionService(sessionRepo, childRepo, push, nil)

	ctx := context.Background()
	parent := models.User{ID: "parent-1", Name: "Aisha", UserType: models.UserTypeParent}
	childID, err := childRepo.Create(ctx, models.Child{
		Name:            "Timur",
		PrimaryParentID: parent.ID,
		ParentIDs:       []string{parent.ID},
		SpecialistIDs:   []string{"spec-1"},
	})
	require.NoError(t, err)

	session, err := service.CreateSession(ctx, parent, SessionInput{
		ChildID:        childID,
		SpecialistID:   "spec-1",
		SpecialistName: "Dana Speech",
		SpecialistType: models.SpecialistTypeAccount,
		Date:           time.Now().AddDate(0, 0, 7),
		StartTime:      "10:00",
		EndTime:        "11:00",
	})
	require.NoError(t, err)

	push.On("SendSessionMessage", mock.Anything, session.ID, "running 10 minutes late", "Aisha", []string{"spec-1"}).Return(nil)

	require.NoError(t, service.SendMessage(ctx, parent, session.ID, "running 10 minutes late"))

	messages, err := service.ListMessages(ctx, parent, session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, parent.ID, messages[0].SenderID)

	notifications, err := notificationRepo.FindByUser(ctx, "spec-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationSessionMessage, notifications[0].Type)
	assert.Equal(t, "/specialist/dashboard/calendar", notifications[0].ActionURL)

	// The sender gets no notification for their own message.
	own, err := notificationRepo.FindByUser(ctx, parent.ID)
	require.NoError(t, err)
	assert.Empty(t, own)

	push.AssertExpectations(t)
}

func TestSendMessagePushFailureIsNotFatal(t *testing.T) {
	store := inmem.NewStore()
	childRepo := inmem.NewChildRepository(store)
	sessionRepo := inmem.NewSessionRepository(store)

	push := new(pushDispatcherMock)
	push.On("SendSessionMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("fcm unavailable"))
	service := NewSessionService(sessionRepo, childRepo, push, nil)

	ctx := context.Background()
	parent := models.User{ID: "parent-1", Name: "Aisha", UserType: models.UserTypeParent}
	childID, err := childRepo.Create(ctx, models.Child{
		Name:            "Timur",
		PrimaryParentID: parent.ID,
		ParentIDs:       []string{parent.ID},
		SpecialistIDs:   []string{"spec-1"},
	})
	require.NoError(t, err)

	session, err := service.CreateSession(ctx, parent, SessionInput{
		ChildID:        childID,
		SpecialistID:   "spec-1",
		SpecialistName: "Dana Speech",
		SpecialistType: models.SpecialistTypeAccount,
		Date:           time.Now().AddDate(0, 0, 7),
		StartTime:      "10:00",
		EndTime:        "11:00",
	})
	require.NoError(t, err)

	// The message still lands even though push delivery failed.
	require.NoError(t, service.SendMessage(ctx, parent, session.ID, "see you soon"))

	messages, err := service.ListMessages(ctx, parent, session.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestSendMessageRequiresAttendee(t *testing.T) {
	sessionRepo := new(mocks.SessionRepository)
	childRepo := new(mocks.ChildRepository)
	service := NewSessionService(sessionRepo, childRepo, nil, nil)

	session := models.Session{ID: "session-1", ParentID: "parent-1", SpecialistID: "spec-1"}
	sessionRepo.On("FindByID", mock.Anything, "session-1").Return(session, nil)

	outsider := models.User{ID: "stranger", UserType: models.UserTypeParent}
	err := service.SendMessage(context.Background(), outsider, "session-1", "hello")

	assert.ErrorIs(t, err, ErrUnauthorized)
	sessionRepo.AssertNotCalled(t, "AddMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessageMissingSession(t *testing.T) {
	sessionRepo := new(mocks.SessionRepository)
	childRepo := new(mocks.ChildRepository)
	service := NewSessionService(sessionRepo, childRepo, nil, nil)

	sessionRepo.On("FindByID", mock.Anything, "gone").Return(models.Session{}, repositories.ErrNotFound)

	caller := models.User{ID: "parent-1", UserType: models.UserTypeParent}
	err := service.SendMessage(context.Background(), caller, "gone", "hello")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}
