package repositories

import (
	"context"

	"SpeechLink/models"
)

// InvitationCommit is the document set written when an invitation is sent:
// the request, the child's pending-list entry, and a notification when the
// recipient already has an account. The three writes land atomically.
type InvitationCommit struct {
	Request      models.ConnectionRequest
	Entry        models.PendingConnection
	Notification *models.Notification
}

// ResolutionCommit is the document set written when a recipient accepts or
// rejects an invitation. Entry is the accepted replacement for the pending
// entry and is only used when Decision is accepted.
type ResolutionCommit struct {
	RequestID     string
	Decision      string
	RecipientID   string
	RecipientName string
	Entry         models.PendingConnection
	History       models.ConnectionHistory
	Notification  models.Notification
}

type UnlinkCommit struct {
	ChildID string
	UserID  string
	Type    string
	History models.ConnectionHistory
}

type CancelCommit struct {
	RequestID string
	History   models.ConnectionHistory
}

// ConnectionRepository owns every write that touches child membership
// state. No other code path mutates parentIds, specialistIds or the
// pending lists.
type ConnectionRepository interface {
	FindRequestByID(ctx context.Context, id string) (models.ConnectionRequest, error)
	HasPendingRequest(ctx context.Context, childID, recipientEmail string) (bool, error)
	ListRequestsForRecipient(ctx context.Context, email, requestType string) ([]models.ConnectionRequest, error)
	ListRequestsForChild(ctx context.Context, childID string) ([]models.ConnectionRequest, error)
	ListHistoryForChild(ctx context.Context, childID string) ([]models.ConnectionHistory, error)

	// CreateInvitation re-checks the duplicate guard inside the commit and
	// fails with ErrDuplicate; all writes apply together or not at all.
	CreateInvitation(ctx context.Context, commit InvitationCommit) (string, error)
	// ResolveRequest fails with ErrNotPending once the request has left the
	// pending state, and with ErrNotFound when the request or child
	// document is missing; nothing is written in either case.
	ResolveRequest(ctx context.Context, commit ResolutionCommit) error
	AddReferenceEntry(ctx context.Context, childID, connectionType string, entry models.PendingConnection) error
	// Unlink tolerates an already-absent connection; removal is a no-op then.
	Unlink(ctx context.Context, commit UnlinkCommit) error
	CancelInvitation(ctx context.Context, commit CancelCommit) error
	// ResendInvitation refreshes a pending request's timestamp; it fails
	// with ErrNotPending once the request has been resolved.
	ResendInvitation(ctx context.Context, requestID string) error
}
