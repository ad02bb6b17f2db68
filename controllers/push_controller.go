package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"SpeechLink/services"
)

var pushDispatcher services.PushDispatcher

func SetPushDispatcher(dispatcher services.PushDispatcher) {
	pushDispatcher = dispatcher
}

// SendSessionPush delivers a push notification about a session message to
// the given attendees. Recipients without a registered device token are
// skipped; the call succeeds when at least one token was reachable.
func SendSessionPush(c *gin.Context) {
	var input struct {
		SessionID   string   `json:"sessionId" binding:"required"`
		Message     string   `json:"message" binding:"required"`
		SenderName  string   `json:"senderName" binding:"required"`
		AttendeeIDs []string `json:"attendeeIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err := pushDispatcher.SendSessionMessage(c.Request.Context(), input.SessionID, input.Message, input.SenderName, input.AttendeeIDs)
	if err != nil {
		if errors.Is(err, services.ErrNoDeviceTokens) {
			c.JSON(http.StatusOK, gin.H{"message": "No device tokens registered for attendees"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push notification sent"})
}
