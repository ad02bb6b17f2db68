package routes

import (
	"github.com/gin-gonic/gin"

	"SpeechLink/controllers"
	"SpeechLink/middlewares"
)

func RegisterRoutes(r *gin.Engine) {
	// Public routes
	r.POST("/auth/register", controllers.Register)
	r.POST("/auth/login", controllers.Login)

	r.GET("/ws", middlewares.AuthMiddleware(), controllers.ServeWs)

	auth := r.Group("/auth")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/device-token", controllers.RegisterDeviceToken)
	}

	children := r.Group("/children")
	children.Use(middlewares.AuthMiddleware())
	{
		children.POST("", controllers.CreateChild)
		children.GET("", controllers.ListChildren)
		children.GET("/:child_id", controllers.ReadChild)
		children.PUT("/:child_id", controllers.UpdateChild)
		children.DELETE("/:child_id", controllers.DeleteChild)

		children.GET("/:child_id/requests", controllers.ChildRequests)
		children.GET("/:child_id/history", controllers.ChildHistory)
		children.GET("/:child_id/milestones", controllers.ListMilestones)
	}

	connections := r.Group("/connections")
	connections.Use(middlewares.AuthMiddleware())
	{
		connections.POST("/invitations", controllers.SendInvitation)
		connections.GET("/requests", controllers.PendingRequests)
		connections.PUT("/requests/:request_id/respond", controllers.RespondToInvitation)
		connections.DELETE("/requests/:request_id", controllers.CancelInvitation)
		connections.POST("/requests/:request_id/resend", controllers.ResendInvitation)
		connections.POST("/vanity", controllers.AddReferenceEntry)
		connections.DELETE("", controllers.Unlink)
	}

	notifications := r.Group("/notifications")
	notifications.Use(middlewares.AuthMiddleware())
	{
		notifications.GET("", controllers.ListNotifications)
		notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
		notifications.PUT("/:notification_id/read", controllers.MarkNotificationRead)
		notifications.DELETE("/:notification_id", controllers.DeleteNotification)
		notifications.POST("/send", controllers.SendSessionPush)
	}

	sessions := r.Group("/sessions")
	sessions.Use(middlewares.AuthMiddleware())
	{
		sessions.POST("", controllers.CreateSession)
		sessions.GET("", controllers.ListSessions)
		sessions.PUT("/:session_id", controllers.UpdateSession)
		sessions.PUT("/:session_id/respond", controllers.RespondToSession)
		sessions.PUT("/:session_id/cancel", controllers.CancelSession)
		sessions.PUT("/:session_id/complete", controllers.CompleteSession)
		sessions.DELETE("/:session_id", controllers.DeleteSession)
		sessions.POST("/:session_id/messages", controllers.SendSessionMessage)
		sessions.GET("/:session_id/messages", controllers.ListSessionMessages)
	}

	milestones := r.Group("/milestones")
	milestones.Use(middlewares.AuthMiddleware())
	{
		milestones.POST("", controllers.CreateMilestone)
		milestones.PUT("/:milestone_id", controllers.UpdateMilestone)
		milestones.PUT("/:milestone_id/achieve", controllers.MarkMilestoneAchieved)
		milestones.DELETE("/:milestone_id", controllers.DeleteMilestone)
	}

	forum := r.Group("/forum")
	forum.Use(middlewares.AuthMiddleware())
	{
		forum.POST("/posts", controllers.CreateForumPost)
		forum.GET("/posts", controllers.ListForumPosts)
		forum.GET("/posts/:post_id", controllers.GetForumPost)
		forum.DELETE("/posts/:post_id", controllers.DeleteForumPost)
		forum.PUT("/posts/:post_id/like", controllers.LikeForumPost)
		forum.POST("/posts/:post_id/comments", controllers.AddForumComment)
		forum.GET("/posts/:post_id/comments", controllers.ListForumComments)
		forum.PUT("/comments/:comment_id/like", controllers.LikeForumComment)
	}
}
