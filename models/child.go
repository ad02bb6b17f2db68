package models

import "time"

// PendingConnection is one entry of a child's pendingSpecialists or
// pendingParents list. An entry with an email goes through the invitation
// lifecycle; an entry without one is a reference-only label and never
// changes status.
type PendingConnection struct {
	Email     string    `json:"email,omitempty" firestore:"email,omitempty"`
	Name      string    `json:"name" firestore:"name"`
	Status    string    `json:"status" firestore:"status"`
	UID       string    `json:"uid,omitempty" firestore:"uid,omitempty"`
	RequestID string    `json:"request_id,omitempty" firestore:"requestId,omitempty"`
	InvitedAt time.Time `json:"invited_at" firestore:"invitedAt"`
}

func (p PendingConnection) IsReference() bool {
	return p.Email == "" && p.Status == StatusAccepted
}

type Child struct {
	ID                 string              `json:"id" firestore:"-"`
	Name               string              `json:"name" firestore:"name"`
	DateOfBirth        time.Time           `json:"date_of_birth" firestore:"dateOfBirth"`
	Gender             string              `json:"gender,omitempty" firestore:"gender,omitempty"`
	Notes              string              `json:"notes,omitempty" firestore:"notes,omitempty"`
	PrimaryParentID    string              `json:"primary_parent_id" firestore:"primaryParentId"`
	ParentIDs          []string            `json:"parent_ids" firestore:"parentIds"`
	SpecialistIDs      []string            `json:"specialist_ids" firestore:"specialistIds"`
	PendingSpecialists []PendingConnection `json:"pending_specialists" firestore:"pendingSpecialists"`
	PendingParents     []PendingConnection `json:"pending_parents" firestore:"pendingParents"`
	CreatedAt          time.Time           `json:"created_at" firestore:"createdAt"`
	UpdatedAt          time.Time           `json:"updated_at" firestore:"updatedAt"`
}

func (c Child) HasParent(uid string) bool {
	for _, id := range c.ParentIDs {
		if id == uid {
			return true
		}
	}
	return false
}

func (c Child) HasSpecialist(uid string) bool {
	for _, id := range c.SpecialistIDs {
		if id == uid {
			return true
		}
	}
	return false
}

// HasAccess reports whether uid may view this profile.
func (c Child) HasAccess(uid string) bool {
	return c.PrimaryParentID == uid || c.HasParent(uid) || c.HasSpecialist(uid)
}

// PendingList returns the list matching a connection type.
func (c Child) PendingList(connectionType string) []PendingConnection {
	if connectionType == ConnectionTypeSpecialist {
		return c.PendingSpecialists
	}
	return c.PendingParents
}
