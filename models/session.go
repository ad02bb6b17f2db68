package models

import "time"

const (
	SessionStatusPending   = "pending"
	SessionStatusConfirmed = "confirmed"
	SessionStatusCancelled = "cancelled"
	SessionStatusCompleted = "completed"

	SpecialistTypeAccount = "account"
	SpecialistTypeVanity  = "vanity"
)

type Session struct {
	ID             string    `json:"id" firestore:"-"`
	ChildID        string    `json:"child_id" firestore:"childId"`
	ChildName      string    `json:"child_name" firestore:"childName"`
	ParentID       string    `json:"parent_id" firestore:"parentId"`
	ParentName     string    `json:"parent_name" firestore:"parentName"`
	SpecialistID   string    `json:"specialist_id,omitempty" firestore:"specialistId,omitempty"`
	SpecialistName string    `json:"specialist_name" firestore:"specialistName"`
	SpecialistType string    `json:"specialist_type" firestore:"specialistType"`
	Status         string    `json:"status" firestore:"status"`
	Date           time.Time `json:"date" firestore:"date"`
	StartTime      string    `json:"start_time" firestore:"startTime"`
	EndTime        string    `json:"end_time" firestore:"endTime"`
	Notes          string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	// PrivateNotes are only returned to the user who created the session.
	PrivateNotes string    `json:"private_notes,omitempty" firestore:"privateNotes,omitempty"`
	CreatedBy    string    `json:"created_by" firestore:"createdBy"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Attendees returns the user ids taking part in the session. Vanity
// specialists have no account and are skipped.
func (s Session) Attendees() []string {
	ids := []string{s.ParentID}
	if s.SpecialistID != "" {
		ids = append(ids, s.SpecialistID)
	}
	return ids
}

// SessionMessage lives in the messages subcollection of its session.
type SessionMessage struct {
	ID         string    `json:"id" firestore:"-"`
	Content    string    `json:"content" firestore:"content"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	SenderName string    `json:"sender_name" firestore:"senderName"`
	SenderType string    `json:"sender_type" firestore:"senderType"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
