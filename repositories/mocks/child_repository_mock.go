package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"SpeechLink/models"
)

type ChildRepository struct {
	mock.Mock
}

func (m *ChildRepository) FindByID(ctx context.Context, id string) (models.Child, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Child), args.Error(1)
}

func (m *ChildRepository) FindByUser(ctx context.Context, uid string) ([]models.Child, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Child), args.Error(1)
}

func (m *ChildRepository) Create(ctx context.Context, child models.Child) (string, error) {
	args := m.Called(ctx, child)
	return args.String(0), args.Error(1)
}

func (m *ChildRepository) Save(ctx context.Context, child models.Child) error {
	args := m.Called(ctx, child)
	return args.Error(0)
}

func (m *ChildRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
