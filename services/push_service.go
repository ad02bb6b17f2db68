package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"

	"SpeechLink/repositories"
)

// PushDispatcher delivers push notifications to session attendees.
// Delivery is best-effort: the in-app notification records are written
// first and independently.
type PushDispatcher interface {
	SendSessionMessage(ctx context.Context, sessionID, message, senderName string, attendeeIDs []string) error
}

// PushService sends FCM push notifications, resolving each attendee id to
// a device token through the user directory.
type PushService struct {
	FCMClient *messaging.Client
	UserRepo  repositories.UserRepository
}

func NewPushService(app *firebase.App, userRepo repositories.UserRepository) (*PushService, error) {
	client, err := app.Messaging(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error initializing FCM client: %w", err)
	}
	return &PushService{FCMClient: client, UserRepo: userRepo}, nil
}

var ErrNoDeviceTokens = errors.New("no device tokens found")

func (s *PushService) SendSessionMessage(ctx context.Context, sessionID, message, senderName string, attendeeIDs []string) error {
	var tokens []string
	for _, id := range attendeeIDs {
		user, err := s.UserRepo.FindByID(ctx, id)
		if err != nil {
			log.Printf("[FCM] skipping attendee %s: %v", id, err)
			continue
		}
		if user.FCMToken != "" {
			tokens = append(tokens, user.FCMToken)
		}
	}
	if len(tokens) == 0 {
		return ErrNoDeviceTokens
	}

	multicast := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: "New Session Message",
			Body:  fmt.Sprintf("%s: %s", senderName, message),
		},
		Data: map[string]string{
			"sessionId":    sessionID,
			"type":         "session_message",
			"click_action": "OPEN_SESSION",
		},
		Webpush: &messaging.WebpushConfig{
			FCMOptions: &messaging.WebpushFCMOptions{
				Link: "/dashboard/sessions?session=" + sessionID,
			},
		},
	}

	resp, err := s.FCMClient.SendEachForMulticast(ctx, multicast)
	if err != nil {
		log.Printf("[FCM] error sending session message: %v", err)
		return err
	}
	log.Printf("[FCM] session message sent: %d ok, %d failed", resp.SuccessCount, resp.FailureCount)
	return nil
}
