package repositories

import (
	"context"

	"SpeechLink/models"
)

type ForumRepository interface {
	FindPostByID(ctx context.Context, id string) (models.ForumPost, error)
	// ListPosts returns posts newest first. category filters when non-empty;
	// offset/limit page through the result.
	ListPosts(ctx context.Context, category string, offset, limit int) ([]models.ForumPost, error)
	CreatePost(ctx context.Context, post models.ForumPost) (string, error)
	SavePost(ctx context.Context, post models.ForumPost) error
	DeletePost(ctx context.Context, id string) error
	LikePost(ctx context.Context, postID, userID string) error
	UnlikePost(ctx context.Context, postID, userID string) error

	ListComments(ctx context.Context, postID string) ([]models.ForumComment, error)
	// CreateComment writes the comment and increments the post's comment
	// counter in one atomic commit.
	CreateComment(ctx context.Context, comment models.ForumComment) (string, error)
	LikeComment(ctx context.Context, commentID, userID string) error
	UnlikeComment(ctx context.Context, commentID, userID string) error
}
