package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"SpeechLink/services"
)

var forumService *services.ForumService

func SetForumService(service *services.ForumService) {
	forumService = service
}

func CreateForumPost(c *gin.Context) {
	var input struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content" binding:"required"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	post, err := forumService.CreatePost(c.Request.Context(), currentUser(c), input.Title, input.Content, input.Category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post created", "data": post})
}

func ListForumPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	posts, err := forumService.ListPosts(c.Request.Context(), c.Query("category"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func GetForumPost(c *gin.Context) {
	post, err := forumService.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func DeleteForumPost(c *gin.Context) {
	if err := forumService.DeletePost(c.Request.Context(), currentUser(c), c.Param("post_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func LikeForumPost(c *gin.Context) {
	var input struct {
		Like *bool `json:"like" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := forumService.LikePost(c.Request.Context(), currentUser(c), c.Param("post_id"), *input.Like); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post like updated"})
}

func AddForumComment(c *gin.Context) {
	var input struct {
		Content         string `json:"content" binding:"required"`
		ParentCommentID string `json:"parent_comment_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	comment, err := forumService.AddComment(c.Request.Context(), currentUser(c), c.Param("post_id"), input.Content, input.ParentCommentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "data": comment})
}

func ListForumComments(c *gin.Context) {
	comments, err := forumService.ListComments(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": comments})
}

func LikeForumComment(c *gin.Context) {
	var input struct {
		Like *bool `json:"like" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := forumService.LikeComment(c.Request.Context(), currentUser(c), c.Param("comment_id"), *input.Like); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment like updated"})
}
