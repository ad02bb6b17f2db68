package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"SpeechLink/interfaces"
	"SpeechLink/models"
	"SpeechLink/repositories"
)

type SessionService struct {
	SessionRepo repositories.SessionRepository
	ChildRepo   repositories.ChildRepository
	Push        PushDispatcher
	Realtime    interfaces.RealtimePublisher
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	childRepo repositories.ChildRepository,
	push PushDispatcher,
	realtime interfaces.RealtimePublisher,
) *SessionService {
	return &SessionService{SessionRepo: sessionRepo, ChildRepo: childRepo, Push: push, Realtime: realtime}
}

type SessionInput struct {
	ChildID        string
	SpecialistID   string
	SpecialistName string
	SpecialistType string
	Date           time.Time
	StartTime      string
	EndTime        string
	Notes          string
	PrivateNotes   string
}

// CreateSession schedules a session. A session with an account-linked
// specialist starts pending until the specialist confirms; a vanity
// specialist has no account to confirm with, so the session is confirmed
// immediately.
func (s *SessionService) CreateSession(ctx context.Context, caller models.User, input SessionInput) (models.Session, error) {
	if caller.ID == "" {
		return models.Session{}, ErrUnauthenticated
	}
	child, err := s.ChildRepo.FindByID(ctx, input.ChildID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Session{}, ErrChildNotFound
		}
		return models.Session{}, err
	}
	if !child.HasAccess(caller.ID) {
		return models.Session{}, ErrUnauthorized
	}

	specialistType := input.SpecialistType
	if specialistType == "" {
		specialistType = models.SpecialistTypeVanity
		if input.SpecialistID != "" {
			specialistType = models.SpecialistTypeAccount
		}
	}
	status := models.SessionStatusConfirmed
	if specialistType == models.SpecialistTypeAccount && input.SpecialistID != caller.ID {
		status = models.SessionStatusPending
	}

	now := time.Now()
	session := models.Session{
		ChildID:        child.ID,
		ChildName:      child.Name,
		ParentID:       child.PrimaryParentID,
		SpecialistID:   input.SpecialistID,
		SpecialistName: input.SpecialistName,
		SpecialistType: specialistType,
		Status:         status,
		Date:           input.Date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Notes:          input.Notes,
		PrivateNotes:   input.PrivateNotes,
		CreatedBy:      caller.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if caller.UserType == models.UserTypeParent {
		session.ParentID = caller.ID
		session.ParentName = caller.Name
	}

	id, err := s.SessionRepo.Create(ctx, session)
	if err != nil {
		return models.Session{}, err
	}
	session.ID = id

	if status == models.SessionStatusPending && s.Realtime != nil {
		s.Realtime.PublishToUser(session.SpecialistID, models.Notification{
			UserID:    session.SpecialistID,
			Type:      models.NotificationSessionInvitation,
			Title:     "New Session Request",
			Message:   fmt.Sprintf("%s requested a session for %s", caller.Name, session.ChildName),
			Metadata:  map[string]string{"sessionId": session.ID, "childId": session.ChildID},
			CreatedAt: now,
		})
	}
	return session, nil
}

func (s *SessionService) ListSessions(ctx context.Context, caller models.User) ([]models.Session, error) {
	if caller.ID == "" {
		return nil, ErrUnauthenticated
	}
	sessions, err := s.SessionRepo.FindByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].CreatedBy != caller.ID {
			sessions[i].PrivateNotes = ""
		}
	}
	return sessions, nil
}

// UpdateSession edits the schedule fields. Only the creator may edit, and
// only while the session is still upcoming.
func (s *SessionService) UpdateSession(ctx context.Context, caller models.User, sessionID string, input SessionInput) (models.Session, error) {
	session, err := s.loadForUser(ctx, caller, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	if session.CreatedBy != caller.ID {
		return models.Session{}, ErrUnauthorized
	}
	if session.Status == models.SessionStatusCancelled || session.Status == models.SessionStatusCompleted {
		return models.Session{}, fmt.Errorf("session is already %s", session.Status)
	}

	if !input.Date.IsZero() {
		session.Date = input.Date
	}
	if input.StartTime != "" {
		session.StartTime = input.StartTime
	}
	if input.EndTime != "" {
		session.EndTime = input.EndTime
	}
	session.Notes = input.Notes
	session.PrivateNotes = input.PrivateNotes
	session.UpdatedAt = time.Now()

	if err := s.SessionRepo.Save(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// RespondToSession lets the invited specialist confirm or decline a
// pending session.
func (s *SessionService) RespondToSession(ctx context.Context, caller models.User, sessionID string, accept bool) (models.Session, error) {
	session, err := s.loadForUser(ctx, caller, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	if session.SpecialistID != caller.ID {
		return models.Session{}, ErrUnauthorized
	}
	if session.Status != models.SessionStatusPending {
		return models.Session{}, fmt.Errorf("session is not pending")
	}

	session.Status = models.SessionStatusCancelled
	if accept {
		session.Status = models.SessionStatusConfirmed
	}
	session.UpdatedAt = time.Now()
	if err := s.SessionRepo.Save(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *SessionService) CancelSession(ctx context.Context, caller models.User, sessionID string) (models.Session, error) {
	return s.transition(ctx, caller, sessionID, models.SessionStatusCancelled)
}

func (s *SessionService) CompleteSession(ctx context.Context, caller models.User, sessionID string) (models.Session, error) {
	return s.transition(ctx, caller, sessionID, models.SessionStatusCompleted)
}

func (s *SessionService) DeleteSession(ctx context.Context, caller models.User, sessionID string) error {
	session, err := s.loadForUser(ctx, caller, sessionID)
	if err != nil {
		return err
	}
	if session.CreatedBy != caller.ID {
		return ErrUnauthorized
	}
	return s.SessionRepo.Delete(ctx, sessionID)
}

// SendMessage appends a message to the session and creates an in-app
// notification for every other attendee, atomically. Push delivery runs
// after the commit and never fails the operation.
func (s *SessionService) SendMessage(ctx context.Context, caller models.User, sessionID, content string) error {
	session, err := s.loadForUser(ctx, caller, sessionID)
	if err != nil {
		return err
	}
	if !isAttendee(session, caller.ID) {
		return ErrUnauthorized
	}

	now := time.Now()
	message := models.SessionMessage{
		Content:    content,
		SenderID:   caller.ID,
		SenderName: caller.Name,
		SenderType: caller.UserType,
		CreatedAt:  now,
	}

	var recipients []string
	var notifications []models.Notification
	for _, id := range session.Attendees() {
		if id == caller.ID {
			continue
		}
		recipients = append(recipients, id)
		actionURL := "/dashboard/sessions"
		if id == session.SpecialistID {
			actionURL = "/specialist/dashboard/calendar"
		}
		notifications = append(notifications, models.Notification{
			UserID:    id,
			Type:      models.NotificationSessionMessage,
			Title:     "New Session Message",
			Message:   fmt.Sprintf("%s: %s", caller.Name, content),
			ActionURL: actionURL,
			Metadata: map[string]string{
				"sessionId": sessionID,
				"senderId":  caller.ID,
				"childId":   session.ChildID,
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := s.SessionRepo.AddMessage(ctx, sessionID, message, notifications); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	if s.Realtime != nil {
		for _, notification := range notifications {
			s.Realtime.PublishToUser(notification.UserID, notification)
		}
	}
	if s.Push != nil && len(recipients) > 0 {
		if err := s.Push.SendSessionMessage(ctx, sessionID, content, caller.Name, recipients); err != nil {
			log.Printf("[FCM] push for session %s failed: %v", sessionID, err)
		}
	}
	return nil
}

func (s *SessionService) ListMessages(ctx context.Context, caller models.User, sessionID string) ([]models.SessionMessage, error) {
	session, err := s.loadForUser(ctx, caller, sessionID)
	if err != nil {
		return nil, err
	}
	if !isAttendee(session, caller.ID) {
		return nil, ErrUnauthorized
	}
	return s.SessionRepo.ListMessages(ctx, sessionID)
}

func (s *SessionService) transition(ctx context.Context, caller models.User, sessionID, status string) (models.Session, error) {
	session, err := s.loadForUser(ctx, caller, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	if !isAttendee(session, caller.ID) {
		return models.Session{}, ErrUnauthorized
	}
	if session.Status == models.SessionStatusCancelled || session.Status == models.SessionStatusCompleted {
		return models.Session{}, fmt.Errorf("session is already %s", session.Status)
	}

	session.Status = status
	session.UpdatedAt = time.Now()
	if err := s.SessionRepo.Save(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *SessionService) loadForUser(ctx context.Context, caller models.User, sessionID string) (models.Session, error) {
	if caller.ID == "" {
		return models.Session{}, ErrUnauthenticated
	}
	session, err := s.SessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

func isAttendee(session models.Session, uid string) bool {
	for _, id := range session.Attendees() {
		if id == uid {
			return true
		}
	}
	return false
}
