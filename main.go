package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"SpeechLink/config"
	"SpeechLink/controllers"
	"SpeechLink/repositories/impl"
	"SpeechLink/routes"
	"SpeechLink/services"
	"SpeechLink/websocket"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	config.InitFirebase()

	// Initialize repositories
	userRepo := impl.NewUserRepository(config.Firestore)
	childRepo := impl.NewChildRepository(config.Firestore)
	connectionRepo := impl.NewConnectionRepository(config.Firestore)
	notificationRepo := impl.NewNotificationRepository(config.Firestore)
	sessionRepo := impl.NewSessionRepository(config.Firestore)
	milestoneRepo := impl.NewMilestoneRepository(config.Firestore)
	forumRepo := impl.NewForumRepository(config.Firestore)

	// Realtime hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	authService := services.NewAuthService(userRepo, config.FirebaseAuth, config.JWTSecret())
	childService := services.NewChildService(childRepo)
	connectionService := services.NewConnectionService(connectionRepo, childRepo, userRepo, hub)
	notificationService := services.NewNotificationService(notificationRepo, hub)
	pushService, err := services.NewPushService(config.FirebaseApp, userRepo)
	if err != nil {
		log.Fatalf("error initializing push service: %v", err)
	}
	sessionService := services.NewSessionService(sessionRepo, childRepo, pushService, hub)
	milestoneService := services.NewMilestoneService(milestoneRepo, childRepo)
	forumService := services.NewForumService(forumRepo)

	// Set services in controllers
	controllers.SetAuthService(authService)
	controllers.SetChildService(childService)
	controllers.SetConnectionService(connectionService)
	controllers.SetNotificationService(notificationService)
	controllers.SetPushDispatcher(pushService)
	controllers.SetSessionService(sessionService)
	controllers.SetMilestoneService(milestoneService)
	controllers.SetForumService(forumService)
	controllers.SetHub(hub)

	// Initialize Gin router
	r := gin.Default()

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	r.Run(":" + port)
}
