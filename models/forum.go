package models

import "time"

type ForumPost struct {
	ID           string    `json:"id" firestore:"-"`
	Title        string    `json:"title" firestore:"title"`
	Content      string    `json:"content" firestore:"content"`
	Category     string    `json:"category,omitempty" firestore:"category,omitempty"`
	AuthorID     string    `json:"author_id" firestore:"authorId"`
	AuthorName   string    `json:"author_name" firestore:"authorName"`
	AuthorType   string    `json:"author_type" firestore:"authorType"`
	Likes        []string  `json:"likes" firestore:"likes"`
	CommentCount int       `json:"comment_count" firestore:"commentCount"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

type ForumComment struct {
	ID              string    `json:"id" firestore:"-"`
	PostID          string    `json:"post_id" firestore:"postId"`
	Content         string    `json:"content" firestore:"content"`
	AuthorID        string    `json:"author_id" firestore:"authorId"`
	AuthorName      string    `json:"author_name" firestore:"authorName"`
	AuthorType      string    `json:"author_type" firestore:"authorType"`
	ParentCommentID string    `json:"parent_comment_id,omitempty" firestore:"parentCommentId,omitempty"`
	Likes           []string  `json:"likes" firestore:"likes"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updatedAt"`
}
