package models

import "time"

const (
	ConnectionTypeSpecialist = "specialist"
	ConnectionTypeParent     = "parent"

	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"

	ActionInvited  = "invited"
	ActionAccepted = "accepted"
	ActionRejected = "rejected"
	ActionRemoved  = "removed"
	ActionUnlinked = "unlinked"
)

// ConnectionRequest is an invitation linking a specialist or co-parent to a
// child profile. childName and senderName are point-in-time snapshots for
// display and are never updated afterwards.
type ConnectionRequest struct {
	ID             string    `json:"id" firestore:"-"`
	Type           string    `json:"type" firestore:"type"`
	ChildID        string    `json:"child_id" firestore:"childId"`
	ChildName      string    `json:"child_name" firestore:"childName"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	SenderName     string    `json:"sender_name" firestore:"senderName"`
	RecipientEmail string    `json:"recipient_email" firestore:"recipientEmail"`
	RecipientName  string    `json:"recipient_name" firestore:"recipientName"`
	RecipientID    string    `json:"recipient_id,omitempty" firestore:"recipientId,omitempty"`
	Status         string    `json:"status" firestore:"status"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ConnectionHistory records are append-only; nothing ever mutates or
// deletes them.
type ConnectionHistory struct {
	ID                 string    `json:"id" firestore:"-"`
	Type               string    `json:"type" firestore:"type"`
	Action             string    `json:"action" firestore:"action"`
	ChildID            string    `json:"child_id" firestore:"childId"`
	ChildName          string    `json:"child_name" firestore:"childName"`
	ParentID           string    `json:"parent_id" firestore:"parentId"`
	ParentName         string    `json:"parent_name" firestore:"parentName"`
	ConnectedUserID    string    `json:"connected_user_id,omitempty" firestore:"connectedUserId,omitempty"`
	ConnectedUserEmail string    `json:"connected_user_email,omitempty" firestore:"connectedUserEmail,omitempty"`
	ConnectedUserName  string    `json:"connected_user_name" firestore:"connectedUserName"`
	CreatedAt          time.Time `json:"created_at" firestore:"createdAt"`
}
