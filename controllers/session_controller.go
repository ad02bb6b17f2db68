package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"SpeechLink/services"
)

var sessionService *services.SessionService

func SetSessionService(service *services.SessionService) {
	sessionService = service
}

func CreateSession(c *gin.Context) {
	var input struct {
		ChildID        string `json:"child_id" binding:"required"`
		SpecialistID   string `json:"specialist_id"`
		SpecialistName string `json:"specialist_name" binding:"required"`
		SpecialistType string `json:"specialist_type" binding:"required"`
		Date           string `json:"date" binding:"required"`
		StartTime      string `json:"start_time" binding:"required"`
		EndTime        string `json:"end_time" binding:"required"`
		Notes          string `json:"notes"`
		PrivateNotes   string `json:"private_notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	session, err := sessionService.CreateSession(c.Request.Context(), currentUser(c), services.SessionInput{
		ChildID:        input.ChildID,
		SpecialistID:   input.SpecialistID,
		SpecialistName: input.SpecialistName,
		SpecialistType: input.SpecialistType,
		Date:           date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Notes:          input.Notes,
		PrivateNotes:   input.PrivateNotes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Session scheduled", "data": session})
}

func ListSessions(c *gin.Context) {
	sessions, err := sessionService.ListSessions(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessions})
}

func UpdateSession(c *gin.Context) {
	var input struct {
		Date         string `json:"date"`
		StartTime    string `json:"start_time"`
		EndTime      string `json:"end_time"`
		Notes        string `json:"notes"`
		PrivateNotes string `json:"private_notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	var date time.Time
	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	session, err := sessionService.UpdateSession(c.Request.Context(), currentUser(c), c.Param("session_id"), services.SessionInput{
		Date:         date,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Notes:        input.Notes,
		PrivateNotes: input.PrivateNotes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session updated", "data": session})
}

func RespondToSession(c *gin.Context) {
	var input struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	session, err := sessionService.RespondToSession(c.Request.Context(), currentUser(c), c.Param("session_id"), *input.Accept)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session updated", "data": session})
}

func CancelSession(c *gin.Context) {
	session, err := sessionService.CancelSession(c.Request.Context(), currentUser(c), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled", "data": session})
}

func CompleteSession(c *gin.Context) {
	session, err := sessionService.CompleteSession(c.Request.Context(), currentUser(c), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session completed", "data": session})
}

func DeleteSession(c *gin.Context) {
	if err := sessionService.DeleteSession(c.Request.Context(), currentUser(c), c.Param("session_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}

func SendSessionMessage(c *gin.Context) {
	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := sessionService.SendMessage(c.Request.Context(), currentUser(c), c.Param("session_id"), input.Content); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent"})
}

func ListSessionMessages(c *gin.Context) {
	messages, err := sessionService.ListMessages(c.Request.Context(), currentUser(c), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": messages})
}
