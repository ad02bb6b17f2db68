package services

import (
	"context"
	"errors"
	"time"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type ChildService struct {
	ChildRepo repositories.ChildRepository
}

func NewChildService(childRepo repositories.ChildRepository) *ChildService {
	return &ChildService{ChildRepo: childRepo}
}

type ChildInput struct {
	Name        string
	DateOfBirth time.Time
	Gender      string
	Notes       string
}

func (s *ChildService) CreateChild(ctx context.Context, caller models.User, input ChildInput) (models.Child, error) {
	if caller.ID == "" {
		return models.Child{}, ErrUnauthenticated
	}
	if caller.UserType != models.UserTypeParent {
		return models.Child{}, ErrUnauthorized
	}

	now := time.Now()
	child := models.Child{
		Name:               input.Name,
		DateOfBirth:        input.DateOfBirth,
		Gender:             input.Gender,
		Notes:              input.Notes,
		PrimaryParentID:    caller.ID,
		ParentIDs:          []string{caller.ID},
		SpecialistIDs:      []string{},
		PendingSpecialists: []models.PendingConnection{},
		PendingParents:     []models.PendingConnection{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	id, err := s.ChildRepo.Create(ctx, child)
	if err != nil {
		return models.Child{}, err
	}
	child.ID = id
	return child, nil
}

func (s *ChildService) ReadChild(ctx context.Context, caller models.User, id string) (models.Child, error) {
	if caller.ID == "" {
		return models.Child{}, ErrUnauthenticated
	}
	child, err := s.ChildRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Child{}, ErrChildNotFound
		}
		return models.Child{}, err
	}
	if !child.HasAccess(caller.ID) {
		return models.Child{}, ErrUnauthorized
	}
	return child, nil
}

func (s *ChildService) ListChildren(ctx context.Context, caller models.User) ([]models.Child, error) {
	if caller.ID == "" {
		return nil, ErrUnauthenticated
	}
	return s.ChildRepo.FindByUser(ctx, caller.ID)
}

// UpdateChild edits the profile fields. Only the primary parent may edit;
// membership fields are out of reach here, they belong to the connection
// workflows.
func (s *ChildService) UpdateChild(ctx context.Context, caller models.User, id string, input ChildInput) (models.Child, error) {
	if caller.ID == "" {
		return models.Child{}, ErrUnauthenticated
	}
	child, err := s.ChildRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Child{}, ErrChildNotFound
		}
		return models.Child{}, err
	}
	if child.PrimaryParentID != caller.ID {
		return models.Child{}, ErrUnauthorized
	}

	child.Name = input.Name
	child.DateOfBirth = input.DateOfBirth
	child.Gender = input.Gender
	child.Notes = input.Notes
	child.UpdatedAt = time.Now()

	if err := s.ChildRepo.Save(ctx, child); err != nil {
		return models.Child{}, err
	}
	return child, nil
}

// DeleteChild removes the profile. Related requests and history records are
// left in place on purpose.
func (s *ChildService) DeleteChild(ctx context.Context, caller models.User, id string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	child, err := s.ChildRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChildNotFound
		}
		return err
	}
	if child.PrimaryParentID != caller.ID {
		return ErrUnauthorized
	}
	return s.ChildRepo.Delete(ctx, id)
}
