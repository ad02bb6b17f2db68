package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"SpeechLink/models"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepository) FindByEmailAndType(ctx context.Context, email, userType string) (models.User, error) {
	args := m.Called(ctx, email, userType)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepository) Save(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) UpdateFCMToken(ctx context.Context, id, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}
