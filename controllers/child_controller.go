package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"SpeechLink/services"
)

var childService *services.ChildService

func SetChildService(service *services.ChildService) {
	childService = service
}

type childPayload struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Notes       string `json:"notes"`
}

func (p childPayload) toInput() (services.ChildInput, error) {
	input := services.ChildInput{
		Name:   p.Name,
		Gender: p.Gender,
		Notes:  p.Notes,
	}
	if p.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", p.DateOfBirth)
		if err != nil {
			return services.ChildInput{}, err
		}
		input.DateOfBirth = dob
	}
	return input, nil
}

func CreateChild(c *gin.Context) {
	var payload childPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	input, err := payload.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_of_birth must be YYYY-MM-DD"})
		return
	}

	child, err := childService.CreateChild(c.Request.Context(), currentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Child profile created", "data": child})
}

func ListChildren(c *gin.Context) {
	children, err := childService.ListChildren(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": children})
}

func ReadChild(c *gin.Context) {
	child, err := childService.ReadChild(c.Request.Context(), currentUser(c), c.Param("child_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": child})
}

func UpdateChild(c *gin.Context) {
	var payload childPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	input, err := payload.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_of_birth must be YYYY-MM-DD"})
		return
	}

	child, err := childService.UpdateChild(c.Request.Context(), currentUser(c), c.Param("child_id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Child profile updated", "data": child})
}

func DeleteChild(c *gin.Context) {
	if err := childService.DeleteChild(c.Request.Context(), currentUser(c), c.Param("child_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Child profile deleted"})
}
