package models

import "time"

const (
	NotificationConnectionRequest  = "connection_request"
	NotificationConnectionAccepted = "connection_accepted"
	NotificationConnectionDeclined = "connection_declined"
	NotificationSessionInvitation  = "session_invitation"
	NotificationSessionMessage     = "session_message"
)

// Notification is an in-app notification. Deleted is a soft-delete flag;
// documents are retained either way.
type Notification struct {
	ID        string            `json:"id" firestore:"-"`
	UserID    string            `json:"user_id" firestore:"userId"`
	Type      string            `json:"type" firestore:"type"`
	Title     string            `json:"title" firestore:"title"`
	Message   string            `json:"message" firestore:"message"`
	Read      bool              `json:"read" firestore:"read"`
	Deleted   bool              `json:"deleted" firestore:"deleted"`
	ActionURL string            `json:"action_url,omitempty" firestore:"actionUrl,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" firestore:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time         `json:"updated_at" firestore:"updatedAt"`
}
