package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"SpeechLink/models"
	"SpeechLink/repositories"
	"SpeechLink/services"
)

// currentUser rebuilds the caller from the claims the auth middleware put
// into the context.
func currentUser(c *gin.Context) models.User {
	return models.User{
		ID:       c.GetString("uid"),
		Email:    c.GetString("email"),
		Name:     c.GetString("name"),
		UserType: c.GetString("user_type"),
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateInvitation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRequestNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidConnectionType), errors.Is(err, services.ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrChildNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
