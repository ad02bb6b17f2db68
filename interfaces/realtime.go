package interfaces

// RealtimePublisher pushes an event to every open connection of a user.
// Delivery is best-effort; the in-app notification document is the source
// of truth either way.
type RealtimePublisher interface {
	PublishToUser(userID string, payload interface{})
}
