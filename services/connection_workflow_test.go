package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SpeechLink/models"
	"SpeechLink/repositories"
	"SpeechLink/repositories/inmem"
)

// connectionFixture wires the connection service against the in-memory
// repositories so whole workflows run against real commit semantics.
type connectionFixture struct {
	store            *inmem.Store
	service          *ConnectionService
	notificationRepo repositories.NotificationRepository
	connectionRepo   repositories.ConnectionRepository
	childRepo        repositories.ChildRepository

	parent     models.User
	specialist models.User
	childID    string
}

func newConnectionFixture(t *testing.T) *connectionFixture {
	t.Helper()
	ctx := context.Background()

	store := inmem.NewStore()
	userRepo := inmem.NewUserRepository(store)
	childRepo := inmem.NewChildRepository(store)
	connectionRepo := inmem.NewConnectionRepository(store)
	notificationRepo := inmem.NewNotificationRepository(store)

	parent := models.User{ID: "parent-1", Name: "Aisha", Email: "aisha@example.com", UserType: models.UserTypeParent}
	specialist := models.User{ID: "spec-1", Name: "Dana Speech", Email: "slp@example.com", UserType: models.UserTypeSpecialist}
	require.NoError(t, userRepo.Save(ctx, parent))
	require.NoError(t, userRepo.Save(ctx, specialist))

	childID, err := childRepo.Create(ctx, models.Child{
		Name:            "Timur",
		PrimaryParentID: parent.ID,
		ParentIDs:       []string{parent.ID},
	})
	require.NoError(t, err)

	return &connectionFixture{
		store:            store,
		service:          NewConnectionService(connectionRepo, childRepo, userRepo, nil),
		notificationRepo: notificationRepo,
		connectionRepo:   connectionRepo,
		childRepo:        childRepo,
		parent:           parent,
		specialist:       specialist,
		childID:          childID,
	}
}

func (f *connectionFixture) invite(t *testing.T) models.ConnectionRequest {
	t.Helper()
	ctx := context.Background()

	resolved, err := f.service.SendInvitation(ctx, f.parent, InvitationInput{
		ChildID:        f.childID,
		RecipientEmail: f.specialist.Email,
		RecipientName:  "Dana",
		Type:           models.ConnectionTypeSpecialist,
	})
	require.NoError(t, err)
	require.True(t, resolved)

	requests, err := f.connectionRepo.ListRequestsForChild(ctx, f.childID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	return requests[0]
}

func (f *connectionFixture) child(t *testing.T) models.Child {
	t.Helper()
	child, err := f.childRepo.FindByID(context.Background(), f.childID)
	require.NoError(t, err)
	return child
}

func TestInvitationAcceptWorkflow(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	request := f.invite(t)
	assert.Equal(t, models.StatusPending, request.Status)
	assert.Equal(t, f.specialist.ID, request.RecipientID)

	// The invitation shows up on the child and the recipient gets a
	// notification carrying the request id.
	child := f.child(t)
	require.Len(t, child.PendingSpecialists, 1)
	assert.Equal(t, models.StatusPending, child.PendingSpecialists[0].Status)
	assert.Equal(t, request.ID, child.PendingSpecialists[0].RequestID)

	notifications, err := f.notificationRepo.FindByUser(ctx, f.specialist.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationConnectionRequest, notifications[0].Type)
	assert.Equal(t, request.ID, notifications[0].Metadata["requestId"])

	// It also appears in the specialist's pending list.
	pending, err := f.service.PendingRequests(ctx, f.specialist)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// Accept.
	require.NoError(t, f.service.RespondToInvitation(ctx, f.specialist, request.ID, models.StatusAccepted))

	updated, err := f.connectionRepo.FindRequestByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)

	child = f.child(t)
	assert.True(t, child.HasSpecialist(f.specialist.ID))
	require.Len(t, child.PendingSpecialists, 1)
	assert.Equal(t, models.StatusAccepted, child.PendingSpecialists[0].Status)
	assert.Equal(t, f.specialist.ID, child.PendingSpecialists[0].UID)

	history, err := f.service.ChildHistory(ctx, f.parent, f.childID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionAccepted, history[0].Action)
	assert.Equal(t, f.specialist.ID, history[0].ConnectedUserID)

	// The sender is notified of the acceptance.
	senderNotifications, err := f.notificationRepo.FindByUser(ctx, f.parent.ID)
	require.NoError(t, err)
	require.Len(t, senderNotifications, 1)
	assert.Equal(t, models.NotificationConnectionAccepted, senderNotifications[0].Type)

	// A second response hits the terminal-status guard.
	err = f.service.RespondToInvitation(ctx, f.specialist, request.ID, models.StatusRejected)
	assert.ErrorIs(t, err, ErrRequestNotPending)
}

func TestInvitationRejectWorkflow(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	request := f.invite(t)
	require.NoError(t, f.service.RespondToInvitation(ctx, f.specialist, request.ID, models.StatusRejected))

	updated, err := f.connectionRepo.FindRequestByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)

	// No membership and no leftover pending entry.
	child := f.child(t)
	assert.False(t, child.HasSpecialist(f.specialist.ID))
	assert.Empty(t, child.PendingSpecialists)

	history, err := f.service.ChildHistory(ctx, f.parent, f.childID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionRejected, history[0].Action)
}

func TestDuplicateInvitationBlocked(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	f.invite(t)

	_, err := f.service.SendInvitation(ctx, f.parent, InvitationInput{
		ChildID:        f.childID,
		RecipientEmail: "SLP@example.com",
		RecipientName:  "Dana",
		Type:           models.ConnectionTypeSpecialist,
	})
	assert.ErrorIs(t, err, ErrDuplicateInvitation)

	// The guard also holds at commit level, past the service fast path.
	_, err = f.connectionRepo.CreateInvitation(ctx, repositories.InvitationCommit{
		Request: models.ConnectionRequest{
			Type:           models.ConnectionTypeSpecialist,
			ChildID:        f.childID,
			RecipientEmail: f.specialist.Email,
			Status:         models.StatusPending,
		},
	})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	requests, err := f.connectionRepo.ListRequestsForChild(ctx, f.childID)
	require.NoError(t, err)
	assert.Len(t, requests, 1)
}

func TestCancelInvitationWorkflow(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	request := f.invite(t)
	require.NoError(t, f.service.CancelInvitation(ctx, f.parent, request.ID))

	_, err := f.connectionRepo.FindRequestByID(ctx, request.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	child := f.child(t)
	assert.Empty(t, child.PendingSpecialists)

	history, err := f.service.ChildHistory(ctx, f.parent, f.childID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionRemoved, history[0].Action)

	// Once cancelled the invite can be sent again.
	resolved, err := f.service.SendInvitation(ctx, f.parent, InvitationInput{
		ChildID:        f.childID,
		RecipientEmail: f.specialist.Email,
		RecipientName:  "Dana",
		Type:           models.ConnectionTypeSpecialist,
	})
	assert.NoError(t, err)
	assert.True(t, resolved)
}

func TestUnlinkWorkflowIsIdempotent(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	request := f.invite(t)
	require.NoError(t, f.service.RespondToInvitation(ctx, f.specialist, request.ID, models.StatusAccepted))

	require.NoError(t, f.service.Unlink(ctx, f.parent, f.childID, f.specialist.ID, models.ConnectionTypeSpecialist))

	child := f.child(t)
	assert.False(t, child.HasSpecialist(f.specialist.ID))
	assert.Empty(t, child.PendingSpecialists)

	history, err := f.service.ChildHistory(ctx, f.parent, f.childID)
	require.NoError(t, err)
	assert.Equal(t, models.ActionUnlinked, history[0].Action)

	// Unlinking the same connection again is a no-op on membership.
	require.NoError(t, f.service.Unlink(ctx, f.parent, f.childID, f.specialist.ID, models.ConnectionTypeSpecialist))
	child = f.child(t)
	assert.False(t, child.HasSpecialist(f.specialist.ID))
	assert.Empty(t, child.PendingSpecialists)
}

func TestResendInvitationKeepsSingleRequest(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	request := f.invite(t)
	require.NoError(t, f.service.ResendInvitation(ctx, f.parent, request.ID))

	requests, err := f.connectionRepo.ListRequestsForChild(ctx, f.childID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.StatusPending, requests[0].Status)
	assert.False(t, requests[0].CreatedAt.Before(request.CreatedAt))
}

func TestResendInvitationRejectedAfterResolution(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	request := f.invite(t)
	require.NoError(t, f.service.RespondToInvitation(ctx, f.specialist, request.ID, models.StatusRejected))

	err := f.service.ResendInvitation(ctx, f.parent, request.ID)
	assert.ErrorIs(t, err, ErrRequestNotPending)

	// The resolution is final: the request keeps its status and no
	// pending-list entry reappears behind it.
	updated, err := f.connectionRepo.FindRequestByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)

	child := f.child(t)
	assert.Empty(t, child.PendingSpecialists)

	// The repository refuses the write on its own as well.
	assert.ErrorIs(t, f.connectionRepo.ResendInvitation(ctx, request.ID), repositories.ErrNotPending)
}

func TestReferenceEntryIsInert(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.AddReferenceEntry(ctx, f.parent, f.childID, models.ConnectionTypeSpecialist, "Dr. Kim (private)"))

	child := f.child(t)
	require.Len(t, child.PendingSpecialists, 1)
	entry := child.PendingSpecialists[0]
	assert.Equal(t, models.StatusAccepted, entry.Status)
	assert.Empty(t, entry.UID)
	assert.Empty(t, entry.Email)
	assert.True(t, entry.IsReference())

	// No request, history or notification backs a display-only entry.
	requests, err := f.connectionRepo.ListRequestsForChild(ctx, f.childID)
	require.NoError(t, err)
	assert.Empty(t, requests)

	history, err := f.service.ChildHistory(ctx, f.parent, f.childID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestInvitationCommitFailureLeavesNoPartialState(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	f.store.FailCommit = errors.New("transaction aborted")
	_, err := f.service.SendInvitation(ctx, f.parent, InvitationInput{
		ChildID:        f.childID,
		RecipientEmail: f.specialist.Email,
		RecipientName:  "Dana",
		Type:           models.ConnectionTypeSpecialist,
	})
	require.Error(t, err)

	requests, listErr := f.connectionRepo.ListRequestsForChild(ctx, f.childID)
	require.NoError(t, listErr)
	assert.Empty(t, requests)

	child := f.child(t)
	assert.Empty(t, child.PendingSpecialists)

	notifications, notifErr := f.notificationRepo.FindByUser(ctx, f.specialist.ID)
	require.NoError(t, notifErr)
	assert.Empty(t, notifications)
}

func TestResolutionCommitFailureLeavesNoPartialState(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	request := f.invite(t)

	f.store.FailCommit = errors.New("transaction aborted")
	err := f.service.RespondToInvitation(ctx, f.specialist, request.ID, models.StatusAccepted)
	require.Error(t, err)

	// The request is still pending and nothing about the child changed.
	unchanged, findErr := f.connectionRepo.FindRequestByID(ctx, request.ID)
	require.NoError(t, findErr)
	assert.Equal(t, models.StatusPending, unchanged.Status)

	child := f.child(t)
	assert.False(t, child.HasSpecialist(f.specialist.ID))
	require.Len(t, child.PendingSpecialists, 1)
	assert.Equal(t, models.StatusPending, child.PendingSpecialists[0].Status)

	history, histErr := f.service.ChildHistory(ctx, f.parent, f.childID)
	require.NoError(t, histErr)
	assert.Empty(t, history)
}

func TestCoParentInvitationWorkflow(t *testing.T) {
	f := newConnectionFixture(t)
	ctx := context.Background()

	coParent := models.User{ID: "parent-2", Name: "Marat", Email: "marat@example.com", UserType: models.UserTypeParent}
	require.NoError(t, inmem.NewUserRepository(f.store).Save(ctx, coParent))

	resolved, err := f.service.SendInvitation(ctx, f.parent, InvitationInput{
		ChildID:        f.childID,
		RecipientEmail: coParent.Email,
		RecipientName:  "Marat",
		Type:           models.ConnectionTypeParent,
	})
	require.NoError(t, err)
	require.True(t, resolved)

	requests, err := f.connectionRepo.ListRequestsForChild(ctx, f.childID)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	require.NoError(t, f.service.RespondToInvitation(ctx, coParent, requests[0].ID, models.StatusAccepted))

	child := f.child(t)
	assert.True(t, child.HasParent(coParent.ID))
	assert.Equal(t, f.parent.ID, child.PrimaryParentID)

	// The co-parent still cannot invite or unlink: only the primary parent
	// manages connections.
	_, err = f.service.SendInvitation(ctx, coParent, InvitationInput{
		ChildID:        f.childID,
		RecipientEmail: "someone@example.com",
		RecipientName:  "Someone",
		Type:           models.ConnectionTypeSpecialist,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
