package services

import (
	"context"
	"errors"
	"time"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type MilestoneService struct {
	MilestoneRepo repositories.MilestoneRepository
	ChildRepo     repositories.ChildRepository
}

func NewMilestoneService(milestoneRepo repositories.MilestoneRepository, childRepo repositories.ChildRepository) *MilestoneService {
	return &MilestoneService{MilestoneRepo: milestoneRepo, ChildRepo: childRepo}
}

type MilestoneInput struct {
	ChildID     string
	Title       string
	Description string
	Category    string
	TargetDate  time.Time
	Notes       string
}

func (s *MilestoneService) CreateMilestone(ctx context.Context, caller models.User, input MilestoneInput) (models.Milestone, error) {
	if err := s.requireParent(ctx, caller, input.ChildID); err != nil {
		return models.Milestone{}, err
	}

	now := time.Now()
	milestone := models.Milestone{
		ChildID:     input.ChildID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		TargetDate:  input.TargetDate,
		Notes:       input.Notes,
		CreatedBy:   caller.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.MilestoneRepo.Create(ctx, milestone)
	if err != nil {
		return models.Milestone{}, err
	}
	milestone.ID = id
	return milestone, nil
}

func (s *MilestoneService) ListMilestones(ctx context.Context, caller models.User, childID string) ([]models.Milestone, error) {
	if caller.ID == "" {
		return nil, ErrUnauthenticated
	}
	child, err := s.ChildRepo.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	if !child.HasAccess(caller.ID) {
		return nil, ErrUnauthorized
	}
	return s.MilestoneRepo.FindByChild(ctx, childID)
}

func (s *MilestoneService) UpdateMilestone(ctx context.Context, caller models.User, id string, input MilestoneInput) (models.Milestone, error) {
	milestone, err := s.MilestoneRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Milestone{}, repositories.ErrNotFound
		}
		return models.Milestone{}, err
	}
	if err := s.requireParent(ctx, caller, milestone.ChildID); err != nil {
		return models.Milestone{}, err
	}

	milestone.Title = input.Title
	milestone.Description = input.Description
	milestone.Category = input.Category
	milestone.TargetDate = input.TargetDate
	milestone.Notes = input.Notes
	milestone.UpdatedAt = time.Now()

	if err := s.MilestoneRepo.Save(ctx, milestone); err != nil {
		return models.Milestone{}, err
	}
	return milestone, nil
}

// MarkAchieved stamps the milestone as reached.
func (s *MilestoneService) MarkAchieved(ctx context.Context, caller models.User, id string) (models.Milestone, error) {
	milestone, err := s.MilestoneRepo.FindByID(ctx, id)
	if err != nil {
		return models.Milestone{}, err
	}
	if err := s.requireParent(ctx, caller, milestone.ChildID); err != nil {
		return models.Milestone{}, err
	}

	now := time.Now()
	milestone.Achieved = true
	milestone.AchievedAt = &now
	milestone.UpdatedAt = now
	if err := s.MilestoneRepo.Save(ctx, milestone); err != nil {
		return models.Milestone{}, err
	}
	return milestone, nil
}

func (s *MilestoneService) DeleteMilestone(ctx context.Context, caller models.User, id string) error {
	milestone, err := s.MilestoneRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireParent(ctx, caller, milestone.ChildID); err != nil {
		return err
	}
	return s.MilestoneRepo.Delete(ctx, id)
}

func (s *MilestoneService) requireParent(ctx context.Context, caller models.User, childID string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	child, err := s.ChildRepo.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChildNotFound
		}
		return err
	}
	if !child.HasParent(caller.ID) && child.PrimaryParentID != caller.ID {
		return ErrUnauthorized
	}
	return nil
}
