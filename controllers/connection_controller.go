package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"SpeechLink/services"
)

var connectionService *services.ConnectionService

func SetConnectionService(service *services.ConnectionService) {
	connectionService = service
}

func SendInvitation(c *gin.Context) {
	var input struct {
		ChildID        string `json:"child_id" binding:"required"`
		RecipientEmail string `json:"recipient_email" binding:"required,email"`
		RecipientName  string `json:"recipient_name" binding:"required"`
		Type           string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resolved, err := connectionService.SendInvitation(c.Request.Context(), currentUser(c), services.InvitationInput{
		ChildID:        input.ChildID,
		RecipientEmail: input.RecipientEmail,
		RecipientName:  input.RecipientName,
		Type:           input.Type,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Invitation sent", "recipient_has_account": resolved})
}

func RespondToInvitation(c *gin.Context) {
	var input struct {
		Decision string `json:"decision" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := connectionService.RespondToInvitation(c.Request.Context(), currentUser(c), c.Param("request_id"), input.Decision); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation " + input.Decision})
}

func AddReferenceEntry(c *gin.Context) {
	var input struct {
		ChildID string `json:"child_id" binding:"required"`
		Type    string `json:"type" binding:"required"`
		Name    string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := connectionService.AddReferenceEntry(c.Request.Context(), currentUser(c), input.ChildID, input.Type, input.Name); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Reference entry added"})
}

func Unlink(c *gin.Context) {
	var input struct {
		ChildID string `json:"child_id" binding:"required"`
		UserID  string `json:"user_id" binding:"required"`
		Type    string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := connectionService.Unlink(c.Request.Context(), currentUser(c), input.ChildID, input.UserID, input.Type); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection removed"})
}

func CancelInvitation(c *gin.Context) {
	if err := connectionService.CancelInvitation(c.Request.Context(), currentUser(c), c.Param("request_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation cancelled"})
}

func ResendInvitation(c *gin.Context) {
	if err := connectionService.ResendInvitation(c.Request.Context(), currentUser(c), c.Param("request_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation resent"})
}

func PendingRequests(c *gin.Context) {
	requests, err := connectionService.PendingRequests(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}

func ChildRequests(c *gin.Context) {
	requests, err := connectionService.ChildRequests(c.Request.Context(), currentUser(c), c.Param("child_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}

func ChildHistory(c *gin.Context) {
	history, err := connectionService.ChildHistory(c.Request.Context(), currentUser(c), c.Param("child_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": history})
}
