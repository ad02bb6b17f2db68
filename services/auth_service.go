package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type Claims struct {
	Email    string `json:"email"`
	UID      string `json:"uid"`
	Name     string `json:"name"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

type AuthService struct {
	UserRepo     repositories.UserRepository
	FirebaseAuth *auth.Client
	JWTSecret    []byte
}

func NewAuthService(userRepo repositories.UserRepository, firebaseAuth *auth.Client, jwtSecret []byte) *AuthService {
	return &AuthService{UserRepo: userRepo, FirebaseAuth: firebaseAuth, JWTSecret: jwtSecret}
}

// Register creates the Firebase Auth user and the user directory document
// under the same uid, then issues a token.
func (s *AuthService) Register(ctx context.Context, name, email, password, userType string) (models.User, string, error) {
	if userType != models.UserTypeParent && userType != models.UserTypeSpecialist {
		return models.User{}, "", errors.New("user type must be parent or specialist")
	}
	if password == "" {
		return models.User{}, "", errors.New("password cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.UserRepo.FindByEmail(ctx, email); err == nil {
		return models.User{}, "", errors.New("an account with this email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, "", err
	}

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name)
	created, err := s.FirebaseAuth.CreateUser(ctx, params)
	if err != nil {
		return models.User{}, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		ID:        created.UID,
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		UserType:  userType,
		CreatedAt: time.Now(),
	}
	if err := s.UserRepo.Save(ctx, user); err != nil {
		return models.User{}, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, "", errors.New("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, "", errors.New("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// RegisterDeviceToken stores the FCM token used for push delivery.
func (s *AuthService) RegisterDeviceToken(ctx context.Context, caller models.User, token string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	return s.UserRepo.UpdateFCMToken(ctx, caller.ID, token)
}

func (s *AuthService) issueToken(user models.User) (string, error) {
	claims := &Claims{
		Email:    user.Email,
		UID:      user.ID,
		Name:     user.Name,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}
