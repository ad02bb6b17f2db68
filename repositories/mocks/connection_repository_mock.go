package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type ConnectionRepository struct {
	mock.Mock
}

func (m *ConnectionRepository) FindRequestByID(ctx context.Context, id string) (models.ConnectionRequest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ConnectionRequest), args.Error(1)
}

func (m *ConnectionRepository) HasPendingRequest(ctx context.Context, childID, recipientEmail string) (bool, error) {
	args := m.Called(ctx, childID, recipientEmail)
	return args.Bool(0), args.Error(1)
}

func (m *ConnectionRepository) ListRequestsForRecipient(ctx context.Context, email, requestType string) ([]models.ConnectionRequest, error) {
	args := m.Called(ctx, email, requestType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionRequest), args.Error(1)
}

func (m *ConnectionRepository) ListRequestsForChild(ctx context.Context, childID string) ([]models.ConnectionRequest, error) {
	args := m.Called(ctx, childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionRequest), args.Error(1)
}

func (m *ConnectionRepository) ListHistoryForChild(ctx context.Context, childID string) ([]models.ConnectionHistory, error) {
	args := m.Called(ctx, childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionHistory), args.Error(1)
}

func (m *ConnectionRepository) CreateInvitation(ctx context.Context, commit repositories.InvitationCommit) (string, error) {
	args := m.Called(ctx, commit)
	return args.String(0), args.Error(1)
}

func (m *ConnectionRepository) ResolveRequest(ctx context.Context, commit repositories.ResolutionCommit) error {
	args := m.Called(ctx, commit)
	return args.Error(0)
}

func (m *ConnectionRepository) AddReferenceEntry(ctx context.Context, childID, connectionType string, entry models.PendingConnection) error {
	args := m.Called(ctx, childID, connectionType, entry)
	return args.Error(0)
}

func (m *ConnectionRepository) Unlink(ctx context.Context, commit repositories.UnlinkCommit) error {
	args := m.Called(ctx, commit)
	return args.Error(0)
}

func (m *ConnectionRepository) CancelInvitation(ctx context.Context, commit repositories.CancelCommit) error {
	args := m.Called(ctx, commit)
	return args.Error(0)
}

func (m *ConnectionRepository) ResendInvitation(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}
