package services

import (
	"context"
	"time"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

const postsPerPage = 10

type ForumService struct {
	ForumRepo repositories.ForumRepository
}

func NewForumService(forumRepo repositories.ForumRepository) *ForumService {
	return &ForumService{ForumRepo: forumRepo}
}

func (s *ForumService) CreatePost(ctx context.Context, caller models.User, title, content, category string) (models.ForumPost, error) {
	if caller.ID == "" {
		return models.ForumPost{}, ErrUnauthenticated
	}

	now := time.Now()
	post := models.ForumPost{
		Title:      title,
		Content:    content,
		Category:   category,
		AuthorID:   caller.ID,
		AuthorName: caller.Name,
		AuthorType: caller.UserType,
		Likes:      []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := s.ForumRepo.CreatePost(ctx, post)
	if err != nil {
		return models.ForumPost{}, err
	}
	post.ID = id
	return post, nil
}

func (s *ForumService) ListPosts(ctx context.Context, category string, page int) ([]models.ForumPost, error) {
	if page < 1 {
		page = 1
	}
	return s.ForumRepo.ListPosts(ctx, category, (page-1)*postsPerPage, postsPerPage)
}

func (s *ForumService) GetPost(ctx context.Context, id string) (models.ForumPost, error) {
	post, err := s.ForumRepo.FindPostByID(ctx, id)
	if err != nil {
		return models.ForumPost{}, err
	}
	return post, nil
}

func (s *ForumService) DeletePost(ctx context.Context, caller models.User, id string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	post, err := s.ForumRepo.FindPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != caller.ID {
		return ErrUnauthorized
	}
	return s.ForumRepo.DeletePost(ctx, id)
}

func (s *ForumService) LikePost(ctx context.Context, caller models.User, id string, like bool) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	if like {
		return s.ForumRepo.LikePost(ctx, id, caller.ID)
	}
	return s.ForumRepo.UnlikePost(ctx, id, caller.ID)
}

func (s *ForumService) AddComment(ctx context.Context, caller models.User, postID, content, parentCommentID string) (models.ForumComment, error) {
	if caller.ID == "" {
		return models.ForumComment{}, ErrUnauthenticated
	}

	now := time.Now()
	comment := models.ForumComment{
		PostID:          postID,
		Content:         content,
		AuthorID:        caller.ID,
		AuthorName:      caller.Name,
		AuthorType:      caller.UserType,
		ParentCommentID: parentCommentID,
		Likes:           []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	id, err := s.ForumRepo.CreateComment(ctx, comment)
	if err != nil {
		return models.ForumComment{}, err
	}
	comment.ID = id
	return comment, nil
}

func (s *ForumService) ListComments(ctx context.Context, postID string) ([]models.ForumComment, error) {
	return s.ForumRepo.ListComments(ctx, postID)
}

func (s *ForumService) LikeComment(ctx context.Context, caller models.User, id string, like bool) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	if like {
		return s.ForumRepo.LikeComment(ctx, id, caller.ID)
	}
	return s.ForumRepo.UnlikeComment(ctx, id, caller.ID)
}
