package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"SpeechLink/interfaces"
	"SpeechLink/models"
	"SpeechLink/repositories"
)

// ConnectionService owns the lifecycle of relationships between a child
// profile and the parents, caregivers and specialists connected to it.
// Every membership mutation goes through one of its operations; nothing
// else writes parentIds, specialistIds or the pending lists.
type ConnectionService struct {
	ConnectionRepo repositories.ConnectionRepository
	ChildRepo      repositories.ChildRepository
	UserRepo       repositories.UserRepository
	Realtime       interfaces.RealtimePublisher
}

func NewConnectionService(
	connectionRepo repositories.ConnectionRepository,
	childRepo repositories.ChildRepository,
	userRepo repositories.UserRepository,
	realtime interfaces.RealtimePublisher,
) *ConnectionService {
	return &ConnectionService{
		ConnectionRepo: connectionRepo,
		ChildRepo:      childRepo,
		UserRepo:       userRepo,
		Realtime:       realtime,
	}
}

type InvitationInput struct {
	ChildID        string
	RecipientEmail string
	RecipientName  string
	Type           string
}

// SendInvitation creates a pending connection request for a specialist or
// co-parent. The returned flag reports whether the recipient already has an
// account, so the caller can tell an in-app invite from an email one.
func (s *ConnectionService) SendInvitation(ctx context.Context, caller models.User, input InvitationInput) (bool, error) {
	if caller.ID == "" {
		return false, ErrUnauthenticated
	}
	if input.Type != models.ConnectionTypeSpecialist && input.Type != models.ConnectionTypeParent {
		return false, ErrInvalidConnectionType
	}
	email := strings.ToLower(strings.TrimSpace(input.RecipientEmail))
	if email == "" {
		return false, fmt.Errorf("recipient email is required")
	}

	child, err := s.ChildRepo.FindByID(ctx, input.ChildID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, ErrChildNotFound
		}
		return false, err
	}
	if child.PrimaryParentID != caller.ID {
		return false, ErrUnauthorized
	}

	// Fast-path duplicate check for a friendly error; the repository
	// re-checks inside the commit.
	exists, err := s.ConnectionRepo.HasPendingRequest(ctx, child.ID, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, ErrDuplicateInvitation
	}

	recipient, err := s.UserRepo.FindByEmailAndType(ctx, email, roleForType(input.Type))
	resolved := err == nil
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}

	recipientName := input.RecipientName
	if resolved {
		recipientName = recipient.Name
	}
	if recipientName == "" {
		recipientName = email
	}

	now := time.Now()
	commit := repositories.InvitationCommit{
		Request: models.ConnectionRequest{
			Type:           input.Type,
			ChildID:        child.ID,
			ChildName:      child.Name,
			SenderID:       caller.ID,
			SenderName:     caller.Name,
			RecipientEmail: email,
			RecipientName:  recipientName,
			Status:         models.StatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		Entry: models.PendingConnection{
			Email:     email,
			Name:      recipientName,
			Status:    models.StatusPending,
			InvitedAt: now,
		},
	}
	if resolved {
		commit.Request.RecipientID = recipient.ID
		commit.Notification = &models.Notification{
			UserID:  recipient.ID,
			Type:    models.NotificationConnectionRequest,
			Title:   "New Connection Request",
			Message: fmt.Sprintf("%s has invited you to connect with %s", caller.Name, child.Name),
			Metadata: map[string]string{
				"childId":  child.ID,
				"senderId": caller.ID,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	requestID, err := s.ConnectionRepo.CreateInvitation(ctx, commit)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return false, ErrDuplicateInvitation
		case errors.Is(err, repositories.ErrNotFound):
			return false, ErrChildNotFound
		}
		return false, err
	}

	if resolved && s.Realtime != nil {
		notification := *commit.Notification
		metadata := make(map[string]string, len(notification.Metadata)+1)
		for k, v := range notification.Metadata {
			metadata[k] = v
		}
		metadata["requestId"] = requestID
		notification.Metadata = metadata
		s.Realtime.PublishToUser(recipient.ID, notification)
	}
	return resolved, nil
}

// RespondToInvitation applies the recipient's accept or reject decision.
// The request status, the child's membership and pending lists, the history
// record and the sender notification all land in one atomic commit.
func (s *ConnectionService) RespondToInvitation(ctx context.Context, caller models.User, requestID, decision string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	if decision != models.StatusAccepted && decision != models.StatusRejected {
		return ErrInvalidDecision
	}

	request, err := s.ConnectionRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if !strings.EqualFold(caller.Email, request.RecipientEmail) || caller.UserType != roleForType(request.Type) {
		return ErrUnauthorized
	}
	if request.Status != models.StatusPending {
		return ErrRequestNotPending
	}

	now := time.Now()
	commit := repositories.ResolutionCommit{
		RequestID:     requestID,
		Decision:      decision,
		RecipientID:   caller.ID,
		RecipientName: caller.Name,
		Entry: models.PendingConnection{
			Email:     request.RecipientEmail,
			Name:      caller.Name,
			Status:    models.StatusAccepted,
			UID:       caller.ID,
			RequestID: requestID,
			InvitedAt: now,
		},
		History: models.ConnectionHistory{
			Type:               request.Type,
			Action:             actionForDecision(decision),
			ChildID:            request.ChildID,
			ChildName:          request.ChildName,
			ParentID:           request.SenderID,
			ParentName:         request.SenderName,
			ConnectedUserID:    caller.ID,
			ConnectedUserEmail: caller.Email,
			ConnectedUserName:  caller.Name,
			CreatedAt:          now,
		},
		Notification: senderNotification(request, caller, decision, now),
	}

	if err := s.ConnectionRepo.ResolveRequest(ctx, commit); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrRequestNotFound
		case errors.Is(err, repositories.ErrNotPending):
			return ErrRequestNotPending
		}
		return err
	}

	if s.Realtime != nil {
		s.Realtime.PublishToUser(request.SenderID, commit.Notification)
	}
	return nil
}

// AddReferenceEntry stores a display-only record with no account behind
// it. No request, notification or history record is written; the entry can
// never change status.
func (s *ConnectionService) AddReferenceEntry(ctx context.Context, caller models.User, childID, connectionType, name string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	if connectionType != models.ConnectionTypeSpecialist && connectionType != models.ConnectionTypeParent {
		return ErrInvalidConnectionType
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}

	child, err := s.ChildRepo.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChildNotFound
		}
		return err
	}
	if child.PrimaryParentID != caller.ID {
		return ErrUnauthorized
	}

	entry := models.PendingConnection{
		Name:      name,
		Status:    models.StatusAccepted,
		InvitedAt: time.Now(),
	}
	if err := s.ConnectionRepo.AddReferenceEntry(ctx, childID, connectionType, entry); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChildNotFound
		}
		return err
	}
	return nil
}

// Unlink removes an accepted connection. Removing an already-absent
// connection is a no-op on the membership lists; no notification goes to
// the removed party.
func (s *ConnectionService) Unlink(ctx context.Context, caller models.User, childID, userID, connectionType string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	if connectionType != models.ConnectionTypeSpecialist && connectionType != models.ConnectionTypeParent {
		return ErrInvalidConnectionType
	}

	child, err := s.ChildRepo.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChildNotFound
		}
		return err
	}
	if child.PrimaryParentID != caller.ID {
		return ErrUnauthorized
	}
	// The primary parent can never be unlinked from their own profile.
	if connectionType == models.ConnectionTypeParent && userID == child.PrimaryParentID {
		return ErrUnauthorized
	}

	commit := repositories.UnlinkCommit{
		ChildID: childID,
		UserID:  userID,
		Type:    connectionType,
		History: models.ConnectionHistory{
			Type:              connectionType,
			Action:            models.ActionUnlinked,
			ChildID:           childID,
			ChildName:         child.Name,
			ParentID:          caller.ID,
			ParentName:        caller.Name,
			ConnectedUserID:   userID,
			ConnectedUserName: connectionName(child, connectionType, userID),
			CreatedAt:         time.Now(),
		},
	}
	if err := s.ConnectionRepo.Unlink(ctx, commit); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChildNotFound
		}
		return err
	}
	return nil
}

// CancelInvitation withdraws a pending invite before the recipient
// responds.
func (s *ConnectionService) CancelInvitation(ctx context.Context, caller models.User, requestID string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}

	request, err := s.ConnectionRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if request.SenderID != caller.ID {
		return ErrUnauthorized
	}

	commit := repositories.CancelCommit{
		RequestID: requestID,
		History: models.ConnectionHistory{
			Type:               request.Type,
			Action:             models.ActionRemoved,
			ChildID:            request.ChildID,
			ChildName:          request.ChildName,
			ParentID:           caller.ID,
			ParentName:         caller.Name,
			ConnectedUserEmail: request.RecipientEmail,
			ConnectedUserName:  request.RecipientName,
			CreatedAt:          time.Now(),
		},
	}
	if err := s.ConnectionRepo.CancelInvitation(ctx, commit); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrRequestNotFound
		case errors.Is(err, repositories.ErrNotPending):
			return ErrRequestNotPending
		}
		return err
	}
	return nil
}

// ResendInvitation resets the timestamp on a still-pending request. It does
// not create a new request or touch the child's pending-list entry, and a
// request that has already been resolved cannot be revived.
func (s *ConnectionService) ResendInvitation(ctx context.Context, caller models.User, requestID string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}

	request, err := s.ConnectionRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if request.SenderID != caller.ID {
		return ErrUnauthorized
	}
	if request.Status != models.StatusPending {
		return ErrRequestNotPending
	}

	if err := s.ConnectionRepo.ResendInvitation(ctx, requestID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrRequestNotFound
		case errors.Is(err, repositories.ErrNotPending):
			return ErrRequestNotPending
		}
		return err
	}
	return nil
}

// PendingRequests lists the open invitations addressed to the caller.
func (s *ConnectionService) PendingRequests(ctx context.Context, caller models.User) ([]models.ConnectionRequest, error) {
	if caller.ID == "" {
		return nil, ErrUnauthenticated
	}
	return s.ConnectionRepo.ListRequestsForRecipient(ctx, strings.ToLower(caller.Email), caller.UserType)
}

// ChildRequests lists all requests ever sent for a child.
func (s *ConnectionService) ChildRequests(ctx context.Context, caller models.User, childID string) ([]models.ConnectionRequest, error) {
	if err := s.requireAccess(ctx, caller, childID); err != nil {
		return nil, err
	}
	return s.ConnectionRepo.ListRequestsForChild(ctx, childID)
}

// ChildHistory lists the audit trail for a child.
func (s *ConnectionService) ChildHistory(ctx context.Context, caller models.User, childID string) ([]models.ConnectionHistory, error) {
	if err := s.requireAccess(ctx, caller, childID); err != nil {
		return nil, err
	}
	return s.ConnectionRepo.ListHistoryForChild(ctx, childID)
}

func (s *ConnectionService) requireAccess(ctx context.Context, caller models.User, childID string) error {
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
	if !child.HasAccess(caller.ID) {
		return ErrUnauthorized
	}
	return nil
}

func roleForType(connectionType string) string {
	if connectionType == models.ConnectionTypeSpecialist {
		return models.UserTypeSpecialist
	}
	return models.UserTypeParent
}

func actionForDecision(decision string) string {
	if decision == models.StatusAccepted {
		return models.ActionAccepted
	}
	return models.ActionRejected
}

func connectionName(child models.Child, connectionType, uid string) string {
	for _, entry := range child.PendingList(connectionType) {
		if entry.UID == uid {
			return entry.Name
		}
	}
	return ""
}

func senderNotification(request models.ConnectionRequest, caller models.User, decision string, now time.Time) models.Notification {
	notificationType := models.NotificationConnectionAccepted
	title := "Invitation Accepted"
	message := fmt.Sprintf("%s accepted your invitation to connect with %s", caller.Name, request.ChildName)
	if decision == models.StatusRejected {
		notificationType = models.NotificationConnectionDeclined
		title = "Invitation Declined"
		message = fmt.Sprintf("%s declined your invitation to connect with %s", caller.Name, request.ChildName)
	}
	return models.Notification{
		UserID:  request.SenderID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Metadata: map[string]string{
			"requestId": request.ID,
			"childId":   request.ChildID,
			"senderId":  caller.ID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
