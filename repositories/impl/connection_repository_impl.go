package impl

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

// ConnectionRepositoryImpl runs every multi-document connection workflow as
// a Firestore transaction, so a commit either lands in full or not at all.
type ConnectionRepositoryImpl struct {
	Client *firestore.Client
}

func NewConnectionRepository(client *firestore.Client) repositories.ConnectionRepository {
	return &ConnectionRepositoryImpl{Client: client}
}

func (r *ConnectionRepositoryImpl) FindRequestByID(ctx context.Context, id string) (models.ConnectionRequest, error) {
	snap, err := r.Client.Collection(collectionRequests).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.ConnectionRequest{}, repositories.ErrNotFound
		}
		return models.ConnectionRequest{}, err
	}
	var request models.ConnectionRequest
	if err := snap.DataTo(&request); err != nil {
		return models.ConnectionRequest{}, err
	}
	request.ID = snap.Ref.ID
	return request, nil
}

func (r *ConnectionRepositoryImpl) HasPendingRequest(ctx context.Context, childID, recipientEmail string) (bool, error) {
	iter := r.pendingRequestQuery(childID, recipientEmail).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ConnectionRepositoryImpl) ListRequestsForRecipient(ctx context.Context, email, requestType string) ([]models.ConnectionRequest, error) {
	query := r.Client.Collection(collectionRequests).
		Where("recipientEmail", "==", email).
		Where("type", "==", requestType).
		Where("status", "==", models.StatusPending)
	return r.collectRequests(ctx, query)
}

func (r *ConnectionRepositoryImpl) ListRequestsForChild(ctx context.Context, childID string) ([]models.ConnectionRequest, error) {
	query := r.Client.Collection(collectionRequests).Where("childId", "==", childID)
	return r.collectRequests(ctx, query)
}

func (r *ConnectionRepositoryImpl) ListHistoryForChild(ctx context.Context, childID string) ([]models.ConnectionHistory, error) {
	iter := r.Client.Collection(collectionHistory).
		Where("childId", "==", childID).
		Documents(ctx)
	defer iter.Stop()

	var records []models.ConnectionHistory
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var record models.ConnectionHistory
		if err := snap.DataTo(&record); err != nil {
			return nil, err
		}
		record.ID = snap.Ref.ID
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// CreateInvitation writes the request, the child's pending-list entry and
// the optional recipient notification in one transaction. The duplicate
// guard runs inside the transaction so two racing invitations cannot both
// commit.
func (r *ConnectionRepositoryImpl) CreateInvitation(ctx context.Context, commit repositories.InvitationCommit) (string, error) {
	requestRef := r.Client.Collection(collectionRequests).NewDoc()
	childRef := r.Client.Collection(collectionChildren).Doc(commit.Request.ChildID)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		dups, err := tx.Documents(r.pendingRequestQuery(commit.Request.ChildID, commit.Request.RecipientEmail)).GetAll()
		if err != nil {
			return err
		}
		if len(dups) > 0 {
			return repositories.ErrDuplicate
		}

		if _, err := tx.Get(childRef); err != nil {
			if isNotFound(err) {
				return repositories.ErrNotFound
			}
			return err
		}

		if err := tx.Create(requestRef, commit.Request); err != nil {
			return err
		}

		entry := commit.Entry
		entry.RequestID = requestRef.ID
		if err := tx.Update(childRef, []firestore.Update{
			{Path: pendingField(commit.Request.Type), Value: firestore.ArrayUnion(entry)},
			{Path: "updatedAt", Value: commit.Request.CreatedAt},
		}); err != nil {
			return err
		}

		if commit.Notification != nil {
			notification := *commit.Notification
			notification.Metadata = withRequestID(notification.Metadata, requestRef.ID)
			notificationRef := r.Client.Collection(collectionNotifications).NewDoc()
			if err := tx.Create(notificationRef, notification); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return requestRef.ID, nil
}

// ResolveRequest applies an accept/reject decision: request status, child
// membership, history record and sender notification all in one
// transaction. A request that already left pending aborts the whole commit.
func (r *ConnectionRepositoryImpl) ResolveRequest(ctx context.Context, commit repositories.ResolutionCommit) error {
	requestRef := r.Client.Collection(collectionRequests).Doc(commit.RequestID)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		requestSnap, err := tx.Get(requestRef)
		if err != nil {
			if isNotFound(err) {
				return repositories.ErrNotFound
			}
			return err
		}
		var request models.ConnectionRequest
		if err := requestSnap.DataTo(&request); err != nil {
			return err
		}
		if request.Status != models.StatusPending {
			return repositories.ErrNotPending
		}

		childRef := r.Client.Collection(collectionChildren).Doc(request.ChildID)
		childSnap, err := tx.Get(childRef)
		if err != nil {
			if isNotFound(err) {
				return repositories.ErrNotFound
			}
			return err
		}
		var child models.Child
		if err := childSnap.DataTo(&child); err != nil {
			return err
		}

		now := commit.History.CreatedAt
		if err := tx.Update(requestRef, []firestore.Update{
			{Path: "status", Value: commit.Decision},
			{Path: "recipientId", Value: commit.RecipientID},
			{Path: "recipientName", Value: commit.RecipientName},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		entries := dropPendingEntry(child.PendingList(request.Type), request.RecipientEmail)
		if commit.Decision == models.StatusAccepted {
			entries = append(entries, commit.Entry)
		}
		updates := []firestore.Update{
			{Path: pendingField(request.Type), Value: entries},
			{Path: "updatedAt", Value: now},
		}
		if commit.Decision == models.StatusAccepted {
			updates = append(updates, firestore.Update{
				Path:  idsField(request.Type),
				Value: firestore.ArrayUnion(commit.RecipientID),
			})
		}
		if err := tx.Update(childRef, updates); err != nil {
			return err
		}

		if err := tx.Create(r.Client.Collection(collectionHistory).NewDoc(), commit.History); err != nil {
			return err
		}
		return tx.Create(r.Client.Collection(collectionNotifications).NewDoc(), commit.Notification)
	})
}

func (r *ConnectionRepositoryImpl) AddReferenceEntry(ctx context.Context, childID, connectionType string, entry models.PendingConnection) error {
	_, err := r.Client.Collection(collectionChildren).Doc(childID).Update(ctx, []firestore.Update{
		{Path: pendingField(connectionType), Value: firestore.ArrayUnion(entry)},
		{Path: "updatedAt", Value: entry.InvitedAt},
	})
	if err != nil && isNotFound(err) {
		return repositories.ErrNotFound
	}
	return err
}

// Unlink removes the membership id and the accepted pending-list entry and
// appends the history record. Removal is matched by uid so a stale or
// already-absent entry never fails the commit.
func (r *ConnectionRepositoryImpl) Unlink(ctx context.Context, commit repositories.UnlinkCommit) error {
	childRef := r.Client.Collection(collectionChildren).Doc(commit.ChildID)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		childSnap, err := tx.Get(childRef)
		if err != nil {
			if isNotFound(err) {
				return repositories.ErrNotFound
			}
			return err
		}
		var child models.Child
		if err := childSnap.DataTo(&child); err != nil {
			return err
		}

		entries := dropAcceptedEntry(child.PendingList(commit.Type), commit.UserID)
		if err := tx.Update(childRef, []firestore.Update{
			{Path: idsField(commit.Type), Value: firestore.ArrayRemove(commit.UserID)},
			{Path: pendingField(commit.Type), Value: entries},
			{Path: "updatedAt", Value: commit.History.CreatedAt},
		}); err != nil {
			return err
		}

		return tx.Create(r.Client.Collection(collectionHistory).NewDoc(), commit.History)
	})
}

// CancelInvitation withdraws a pending invite: the request document is
// deleted, the pending-list entry removed, and a removed-action history
// record keeps the audit trail.
func (r *ConnectionRepositoryImpl) CancelInvitation(ctx context.Context, commit repositories.CancelCommit) error {
	requestRef := r.Client.Collection(collectionRequests).Doc(commit.RequestID)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		requestSnap, err := tx.Get(requestRef)
		if err != nil {
			if isNotFound(err) {
				return repositories.ErrNotFound
			}
			return err
		}
		var request models.ConnectionRequest
		if err := requestSnap.DataTo(&request); err != nil {
			return err
		}
		if request.Status != models.StatusPending {
			return repositories.ErrNotPending
		}

		childRef := r.Client.Collection(collectionChildren).Doc(request.ChildID)
		childSnap, err := tx.Get(childRef)
		if err != nil {
			if isNotFound(err) {
				return repositories.ErrNotFound
			}
			return err
		}
		var child models.Child
		if err := childSnap.DataTo(&child); err != nil {
			return err
		}

		if err := tx.Delete(requestRef); err != nil {
			return err
		}
		entries := dropPendingEntry(child.PendingList(request.Type), request.RecipientEmail)
		if err := tx.Update(childRef, []firestore.Update{
			{Path: pendingField(request.Type), Value: entries},
			{Path: "updatedAt", Value: commit.History.CreatedAt},
		}); err != nil {
			return err
		}

		return tx.Create(r.Client.Collection(collectionHistory).NewDoc(), commit.History)
	})
}

func (r *ConnectionRepositoryImpl) ResendInvitation(ctx context.Context, requestID string) error {
	requestRef := r.Client.Collection(collectionRequests).Doc(requestID)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		requestSnap, err := tx.Get(requestRef)
		if err != nil {
			if isNotFound(err) {
				return repositories.ErrNotFound
			}
			return err
		}
		var request models.ConnectionRequest
		if err := requestSnap.DataTo(&request); err != nil {
			return err
		}
		if request.Status != models.StatusPending {
			return repositories.ErrNotPending
		}
		return tx.Update(requestRef, []firestore.Update{
			{Path: "createdAt", Value: time.Now()},
		})
	})
}

func (r *ConnectionRepositoryImpl) pendingRequestQuery(childID, recipientEmail string) firestore.Query {
	return r.Client.Collection(collectionRequests).
		Where("childId", "==", childID).
		Where("recipientEmail", "==", recipientEmail).
		Where("status", "==", models.StatusPending).
		Limit(1)
}

func (r *ConnectionRepositoryImpl) collectRequests(ctx context.Context, query firestore.Query) ([]models.ConnectionRequest, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var requests []models.ConnectionRequest
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var request models.ConnectionRequest
		if err := snap.DataTo(&request); err != nil {
			return nil, err
		}
		request.ID = snap.Ref.ID
		requests = append(requests, request)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
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

func withRequestID(metadata map[string]string, requestID string) map[string]string {
	copied := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		copied[k] = v
	}
	copied["requestId"] = requestID
	return copied
}
