package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"SpeechLink/services"
)

var milestoneService *services.MilestoneService

func SetMilestoneService(service *services.MilestoneService) {
	milestoneService = service
}

type milestonePayload struct {
	ChildID     string `json:"child_id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	TargetDate  string `json:"target_date"`
	Notes       string `json:"notes"`
}

func (p milestonePayload) toInput() (services.MilestoneInput, error) {
	input := services.MilestoneInput{
		ChildID:     p.ChildID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Notes:       p.Notes,
	}
	if p.TargetDate != "" {
		target, err := time.Parse("2006-01-02", p.TargetDate)
		if err != nil {
			return services.MilestoneInput{}, err
		}
		input.TargetDate = target
	}
	return input, nil
}

func CreateMilestone(c *gin.Context) {
	var payload milestonePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	input, err := payload.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_date must be YYYY-MM-DD"})
		return
	}

	milestone, err := milestoneService.CreateMilestone(c.Request.Context(), currentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Milestone created", "data": milestone})
}

func ListMilestones(c *gin.Context) {
	milestones, err := milestoneService.ListMilestones(c.Request.Context(), currentUser(c), c.Param("child_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": milestones})
}

func UpdateMilestone(c *gin.Context) {
	var payload milestonePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	input, err := payload.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_date must be YYYY-MM-DD"})
		return
	}

	milestone, err := milestoneService.UpdateMilestone(c.Request.Context(), currentUser(c), c.Param("milestone_id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Milestone updated", "data": milestone})
}

func MarkMilestoneAchieved(c *gin.Context) {
	milestone, err := milestoneService.MarkAchieved(c.Request.Context(), currentUser(c), c.Param("milestone_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Milestone marked as achieved", "data": milestone})
}

func DeleteMilestone(c *gin.Context) {
	if err := milestoneService.DeleteMilestone(c.Request.Context(), currentUser(c), c.Param("milestone_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted"})
}
