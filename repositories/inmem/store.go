// Package inmem provides in-memory repository implementations with the
// same commit semantics as the Firestore ones: multi-document workflows
// apply entirely or not at all. Used by tests and local development.
package inmem

import (
	"sync"

	"github.com/google/uuid"

	"SpeechLink/models"
)

type Store struct {
	mu sync.Mutex

	users           map[string]models.User
	children        map[string]models.Child
	requests        map[string]models.ConnectionRequest
	history         []models.ConnectionHistory
	notifications   map[string]models.Notification
	sessions        map[string]models.Session
	sessionMessages map[string][]models.SessionMessage

	// FailCommit, when set, aborts the next multi-document commit after its
	// reads but before any write applies, then clears itself.
	FailCommit error
}

func NewStore() *Store {
	return &Store{
		users:           make(map[string]models.User),
		children:        make(map[string]models.Child),
		requests:        make(map[string]models.ConnectionRequest),
		notifications:   make(map[string]models.Notification),
		sessions:        make(map[string]models.Session),
		sessionMessages: make(map[string][]models.SessionMessage),
	}
}

func newID() string {
	return uuid.NewString()
}

func (s *Store) takeFailure() error {
	err := s.FailCommit
	s.FailCommit = nil
	return err
}

// History returns a copy of the append-only history log.
func (s *Store) History() []models.ConnectionHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]models.ConnectionHistory, len(s.history))
	copy(records, s.history)
	return records
}

func cloneChild(child models.Child) models.Child {
	cloned := child
	cloned.ParentIDs = append([]string(nil), child.ParentIDs...)
	cloned.SpecialistIDs = append([]string(nil), child.SpecialistIDs...)
	cloned.PendingSpecialists = append([]models.PendingConnection(nil), child.PendingSpecialists...)
	cloned.PendingParents = append([]models.PendingConnection(nil), child.PendingParents...)
	return cloned
}

func cloneNotification(notification models.Notification) models.Notification {
	cloned := notification
	if notification.Metadata != nil {
		cloned.Metadata = make(map[string]string, len(notification.Metadata))
		for k, v := range notification.Metadata {
			cloned.Metadata[k] = v
		}
	}
	return cloned
}
