package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"SpeechLink/services"
)

var notificationService *services.NotificationService

func SetNotificationService(service *services.NotificationService) {
	notificationService = service
}

func ListNotifications(c *gin.Context) {
	notifications, err := notificationService.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

func MarkNotificationRead(c *gin.Context) {
	if err := notificationService.MarkRead(c.Request.Context(), currentUser(c), c.Param("notification_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func MarkAllNotificationsRead(c *gin.Context) {
	if err := notificationService.MarkAllRead(c.Request.Context(), currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func DeleteNotification(c *gin.Context) {
	if err := notificationService.Delete(c.Request.Context(), currentUser(c), c.Param("notification_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
