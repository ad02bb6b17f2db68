package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"SpeechLink/models"
)

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) FindByID(ctx context.Context, id string) (models.Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *SessionRepository) FindByUser(ctx context.Context, uid string) ([]models.Session, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *SessionRepository) Create(ctx context.Context, session models.Session) (string, error) {
	args := m.Called(ctx, session)
	return args.String(0), args.Error(1)
}

func (m *SessionRepository) Save(ctx context.Context, session models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionRepository) AddMessage(ctx context.Context, sessionID string, message models.SessionMessage, notifications []models.Notification) error {
	args := m.Called(ctx, sessionID, message, notifications)
	return args.Error(0)
}

func (m *SessionRepository) ListMessages(ctx context.Context, sessionID string) ([]models.SessionMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SessionMessage), args.Error(1)
}
