package inmem

import (
	"context"
	"sort"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type SessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) repositories.SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (models.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session, ok := r.store.sessions[id]
	if !ok {
		return models.Session{}, repositories.ErrNotFound
	}
	return session, nil
}

func (r *SessionRepository) FindByUser(ctx context.Context, uid string) ([]models.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var sessions []models.Session
	for _, session := range r.store.sessions {
		if session.ParentID == uid || (session.SpecialistID != "" && session.SpecialistID == uid) {
			sessions = append(sessions, session)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
	return sessions, nil
}

func (r *SessionRepository) Create(ctx context.Context, session models.Session) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session.ID = newID()
	r.store.sessions[session.ID] = session
	return session.ID, nil
}

func (r *SessionRepository) Save(ctx context.Context, session models.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.sessions[session.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.store.sessions[session.ID] = session
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.sessions, id)
	delete(r.store.sessionMessages, id)
	return nil
}

func (r *SessionRepository) AddMessage(ctx context.Context, sessionID string, message models.SessionMessage, notifications []models.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.sessions[sessionID]; !ok {
		return repositories.ErrNotFound
	}
	if err := r.store.takeFailure(); err != nil {
		return err
	}

	message.ID = newID()
	r.store.sessionMessages[sessionID] = append(r.store.sessionMessages[sessionID], message)
	for _, notification := range notifications {
		notification = cloneNotification(notification)
		notification.ID = newID()
		r.store.notifications[notification.ID] = notification
	}
	return nil
}

func (r *SessionRepository) ListMessages(ctx context.Context, sessionID string) ([]models.SessionMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	messages := make([]models.SessionMessage, len(r.store.sessionMessages[sessionID]))
	copy(messages, r.store.sessionMessages[sessionID])
	return messages, nil
}
