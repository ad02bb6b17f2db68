package impl

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type SessionRepositoryImpl struct {
	Client *firestore.Client
}

func NewSessionRepository(client *firestore.Client) repositories.SessionRepository {
	return &SessionRepositoryImpl{Client: client}
}

func (r *SessionRepositoryImpl) FindByID(ctx context.Context, id string) (models.Session, error) {
	snap, err := r.Client.Collection(collectionSessions).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.Session{}, repositories.ErrNotFound
		}
		return models.Session{}, err
	}
	var session models.Session
	if err := snap.DataTo(&session); err != nil {
		return models.Session{}, err
	}
	session.ID = snap.Ref.ID
	return session, nil
}

func (r *SessionRepositoryImpl) FindByUser(ctx context.Context, uid string) ([]models.Session, error) {
	query := r.Client.Collection(collectionSessions).WhereEntity(firestore.OrFilter{
		Filters: []firestore.EntityFilter{
			firestore.PropertyFilter{Path: "parentId", Operator: "==", Value: uid},
			firestore.PropertyFilter{Path: "specialistId", Operator: "==", Value: uid},
		},
	})

	iter := query.Documents(ctx)
	defer iter.Stop()

	var sessions []models.Session
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var session models.Session
		if err := snap.DataTo(&session); err != nil {
			return nil, err
		}
		session.ID = snap.Ref.ID
		sessions = append(sessions, session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
	return sessions, nil
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session models.Session) (string, error) {
	ref, _, err := r.Client.Collection(collectionSessions).Add(ctx, session)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *SessionRepositoryImpl) Save(ctx context.Context, session models.Session) error {
	_, err := r.Client.Collection(collectionSessions).Doc(session.ID).Set(ctx, session)
	return err
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	_, err := r.Client.Collection(collectionSessions).Doc(id).Delete(ctx)
	return err
}

// AddMessage writes the message and the attendee notifications atomically;
// in-app notifications are never lost to a partial write even when the push
// dispatch that follows fails.
func (r *SessionRepositoryImpl) AddMessage(ctx context.Context, sessionID string, message models.SessionMessage, notifications []models.Notification) error {
	sessionRef := r.Client.Collection(collectionSessions).Doc(sessionID)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(sessionRef); err != nil {
			if isNotFound(err) {
				return repositories.ErrNotFound
			}
			return err
		}

		if err := tx.Create(sessionRef.Collection(subcollectionMessages).NewDoc(), message); err != nil {
			return err
		}
		for _, notification := range notifications {
			if err := tx.Create(r.Client.Collection(collectionNotifications).NewDoc(), notification); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SessionRepositoryImpl) ListMessages(ctx context.Context, sessionID string) ([]models.SessionMessage, error) {
	iter := r.Client.Collection(collectionSessions).Doc(sessionID).
		Collection(subcollectionMessages).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var messages []models.SessionMessage
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var message models.SessionMessage
		if err := snap.DataTo(&message); err != nil {
			return nil, err
		}
		message.ID = snap.Ref.ID
		messages = append(messages, message)
	}
	return messages, nil
}
