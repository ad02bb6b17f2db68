package impl

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"SpeechLink/models"
)

// Firestore collection names, matching the web client's schema.
const (
	collectionUsers         = "users"
	collectionChildren      = "children"
	collectionRequests      = "connectionRequests"
	collectionHistory       = "connectionHistory"
	collectionNotifications = "notifications"
	collectionSessions      = "sessions"
	collectionMilestones    = "milestones"
	collectionForumPosts    = "forumPosts"
	collectionForumComments = "forumComments"

	subcollectionMessages = "messages"
)

func pendingField(connectionType string) string {
	if connectionType == models.ConnectionTypeSpecialist {
		return "pendingSpecialists"
	}
	return "pendingParents"
}

func idsField(connectionType string) string {
	if connectionType == models.ConnectionTypeSpecialist {
		return "specialistIds"
	}
	return "parentIds"
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
