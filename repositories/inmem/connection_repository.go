package inmem

import (
	"context"
	"sort"
	"time"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

// ConnectionRepository mirrors the Firestore implementation's commit
// semantics: each workflow validates first, then applies all of its writes
// under one lock, or none when the commit is forced to fail.
type ConnectionRepository struct {
	store *Store
}

func NewConnectionRepository(store *Store) repositories.ConnectionRepository {
	return &ConnectionRepository{store: store}
}

func (r *ConnectionRepository) FindRequestByID(ctx context.Context, id string) (models.ConnectionRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	request, ok := r.store.requests[id]
	if !ok {
		return models.ConnectionRequest{}, repositories.ErrNotFound
	}
	return request, nil
}

func (r *ConnectionRepository) HasPendingRequest(ctx context.Context, childID, recipientEmail string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.hasPendingLocked(childID, recipientEmail), nil
}

func (r *ConnectionRepository) hasPendingLocked(childID, recipientEmail string) bool {
	for _, request := range r.store.requests {
		if request.ChildID == childID &&
			request.RecipientEmail == recipientEmail &&
			request.Status == models.StatusPending {
			return true
		}
	}
	return false
}

func (r *ConnectionRepository) ListRequestsForRecipient(ctx context.Context, email, requestType string) ([]models.ConnectionRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var requests []models.ConnectionRequest
	for _, request := range r.store.requests {
		if request.RecipientEmail == email &&
			request.Type == requestType &&
			request.Status == models.StatusPending {
			requests = append(requests, request)
		}
	}
	sortRequests(requests)
	return requests, nil
}

func (r *ConnectionRepository) ListRequestsForChild(ctx context.Context, childID string) ([]models.ConnectionRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var requests []models.ConnectionRequest
	for _, request := range r.store.requests {
		if request.ChildID == childID {
			requests = append(requests, request)
		}
	}
	sortRequests(requests)
	return requests, nil
}

func (r *ConnectionRepository) ListHistoryForChild(ctx context.Context, childID string) ([]models.ConnectionHistory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var records []models.ConnectionHistory
	for _, record := range r.store.history {
		if record.ChildID == childID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (r *ConnectionRepository) CreateInvitation(ctx context.Context, commit repositories.InvitationCommit) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.hasPendingLocked(commit.Request.ChildID, commit.Request.RecipientEmail) {
		return "", repositories.ErrDuplicate
	}
	child, ok := r.store.children[commit.Request.ChildID]
	if !ok {
		return "", repositories.ErrNotFound
	}
	if err := r.store.takeFailure(); err != nil {
		return "", err
	}

	request := commit.Request
	request.ID = newID()
	r.store.requests[request.ID] = request

	entry := commit.Entry
	entry.RequestID = request.ID
	child = cloneChild(child)
	if commit.Request.Type == models.ConnectionTypeSpecialist {
		child.PendingSpecialists = append(child.PendingSpecialists, entry)
	} else {
		child.PendingParents = append(child.PendingParents, entry)
	}
	child.UpdatedAt = request.CreatedAt
	r.store.children[child.ID] = child

	if commit.Notification != nil {
		notification := cloneNotification(*commit.Notification)
		if notification.Metadata == nil {
			notification.Metadata = make(map[string]string)
		}
		notification.Metadata["requestId"] = request.ID
		notification.ID = newID()
		r.store.notifications[notification.ID] = notification
	}
	return request.ID, nil
}

func (r *ConnectionRepository) ResolveRequest(ctx context.Context, commit repositories.ResolutionCommit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	request, ok := r.store.requests[commit.RequestID]
	if !ok {
		return repositories.ErrNotFound
	}
	if request.Status != models.StatusPending {
		return repositories.ErrNotPending
	}
	child, ok := r.store.children[request.ChildID]
	if !ok {
		return repositories.ErrNotFound
	}
	if err := r.store.takeFailure(); err != nil {
		return err
	}

	now := commit.History.CreatedAt
	request.Status = commit.Decision
	request.RecipientID = commit.RecipientID
	request.RecipientName = commit.RecipientName
	request.UpdatedAt = now
	r.store.requests[request.ID] = request

	child = cloneChild(child)
	entries := dropPendingEntry(pendingList(child, request.Type), request.RecipientEmail)
	if commit.Decision == models.StatusAccepted {
		entries = append(entries, commit.Entry)
	}
	setPendingList(&child, request.Type, entries)
	if commit.Decision == models.StatusAccepted {
		addMember(&child, request.Type, commit.RecipientID)
	}
	child.UpdatedAt = now
	r.store.children[child.ID] = child

	r.appendHistoryLocked(commit.History)
	notification := cloneNotification(commit.Notification)
	notification.ID = newID()
	r.store.notifications[notification.ID] = notification
	return nil
}

func (r *ConnectionRepository) AddReferenceEntry(ctx context.Context, childID, connectionType string, entry models.PendingConnection) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	child, ok := r.store.children[childID]
	if !ok {
		return repositories.ErrNotFound
	}

	child = cloneChild(child)
	setPendingList(&child, connectionType, append(pendingList(child, connectionType), entry))
	child.UpdatedAt = entry.InvitedAt
	r.store.children[child.ID] = child
	return nil
}

func (r *ConnectionRepository) Unlink(ctx context.Context, commit repositories.UnlinkCommit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	child, ok := r.store.children[commit.ChildID]
	if !ok {
		return repositories.ErrNotFound
	}
	if err := r.store.takeFailure(); err != nil {
		return err
	}

	child = cloneChild(child)
	removeMember(&child, commit.Type, commit.UserID)
	setPendingList(&child, commit.Type, dropAcceptedEntry(pendingList(child, commit.Type), commit.UserID))
	child.UpdatedAt = commit.History.CreatedAt
	r.store.children[child.ID] = child

	r.appendHistoryLocked(commit.History)
	return nil
}

func (r *ConnectionRepository) CancelInvitation(ctx context.Context, commit repositories.CancelCommit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	request, ok := r.store.requests[commit.RequestID]
	if !ok {
		return repositories.ErrNotFound
	}
	if request.Status != models.StatusPending {
		return repositories.ErrNotPending
	}
	child, ok := r.store.children[request.ChildID]
	if !ok {
		return repositories.ErrNotFound
	}
	if err := r.store.takeFailure(); err != nil {
		return err
	}

	delete(r.store.requests, request.ID)

	child = cloneChild(child)
	setPendingList(&child, request.Type, dropPendingEntry(pendingList(child, request.Type), request.RecipientEmail))
	child.UpdatedAt = commit.History.CreatedAt
	r.store.children[child.ID] = child

	r.appendHistoryLocked(commit.History)
	return nil
}

func (r *ConnectionRepository) ResendInvitation(ctx context.Context, requestID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	request, ok := r.store.requests[requestID]
	if !ok {
		return repositories.ErrNotFound
	}
	if request.Status != models.StatusPending {
		return repositories.ErrNotPending
	}
	request.CreatedAt = time.Now()
	r.store.requests[requestID] = request
	return nil
}

func (r *ConnectionRepository) appendHistoryLocked(record models.ConnectionHistory) {
	record.ID = newID()
	r.store.history = append(r.store.history, record)
}

func sortRequests(requests []models.ConnectionRequest) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}

func pendingList(child models.Child, connectionType string) []models.PendingConnection {
	if connectionType == models.ConnectionTypeSpecialist {
		return child.PendingSpecialists
	}
	return child.PendingParents
}

func setPendingList(child *models.Child, connectionType string, entries []models.PendingConnection) {
	if connectionType == models.ConnectionTypeSpecialist {
		child.PendingSpecialists = entries
	} else {
		child.PendingParents = entries
	}
}

func addMember(child *models.Child, connectionType, uid string) {
	if connectionType == models.ConnectionTypeSpecialist {
		if !child.HasSpecialist(uid) {
			child.SpecialistIDs = append(child.SpecialistIDs, uid)
		}
	} else if !child.HasParent(uid) {
		child.ParentIDs = append(child.ParentIDs, uid)
	}
}

func removeMember(child *models.Child, connectionType, uid string) {
	ids := child.SpecialistIDs
	if connectionType == models.ConnectionTypeParent {
		ids = child.ParentIDs
	}
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != uid {
			kept = append(kept, id)
		}
	}
	if connectionType == models.ConnectionTypeSpecialist {
		child.SpecialistIDs = kept
	} else {
		child.ParentIDs = kept
	}
}

func dropPendingEntry(entries []models.PendingConnection, email string) []models.PendingConnection {
	kept := make([]models.PendingConnection, 0, len(entries))
	for _, entry := range entries {
		if entry.Email == email && entry.Status == models.StatusPending {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

func dropAcceptedEntry(entries []models.PendingConnection, uid string) []models.PendingConnection {
	kept := make([]models.PendingConnection, 0, len(entries))
	for _, entry := range entries {
		if entry.UID == uid && entry.Status == models.StatusAccepted {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}
