package models

import "time"

const (
	UserTypeParent     = "parent"
	UserTypeSpecialist = "specialist"
)

type User struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Password  string    `json:"-" firestore:"password"`
	UserType  string    `json:"user_type" firestore:"userType"`
	FCMToken  string    `json:"fcm_token,omitempty" firestore:"fcmToken,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
