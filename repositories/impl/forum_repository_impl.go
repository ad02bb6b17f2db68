package impl

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"SpeechLink/models"
	"SpeechLink/repositories"
)

type ForumRepositoryImpl struct {
	Client *firestore.Client
}

func NewForumRepository(client *firestore.Client) repositories.ForumRepository {
	return &ForumRepositoryImpl{Client: client}
}

func (r *ForumRepositoryImpl) FindPostByID(ctx context.Context, id string) (models.ForumPost, error) {
	snap, err := r.Client.Collection(collectionForumPosts).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.ForumPost{}, repositories.ErrNotFound
		}
		return models.ForumPost{}, err
	}
	var post models.ForumPost
	if err := snap.DataTo(&post); err != nil {
		return models.ForumPost{}, err
	}
	post.ID = snap.Ref.ID
	return post, nil
}

func (r *ForumRepositoryImpl) ListPosts(ctx context.Context, category string, offset, limit int) ([]models.ForumPost, error) {
	query := r.Client.Collection(collectionForumPosts).
		OrderBy("createdAt", firestore.Desc)
	if category != "" {
		query = r.Client.Collection(collectionForumPosts).
			Where("category", "==", category).
			OrderBy("createdAt", firestore.Desc)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var posts []models.ForumPost
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var post models.ForumPost
		if err := snap.DataTo(&post); err != nil {
			return nil, err
		}
		post.ID = snap.Ref.ID
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *ForumRepositoryImpl) CreatePost(ctx context.Context, post models.ForumPost) (string, error) {
	ref, _, err := r.Client.Collection(collectionForumPosts).Add(ctx, post)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *ForumRepositoryImpl) SavePost(ctx context.Context, post models.ForumPost) error {
	_, err := r.Client.Collection(collectionForumPosts).Doc(post.ID).Set(ctx, post)
	return err
}

func (r *ForumRepositoryImpl) DeletePost(ctx context.Context, id string) error {
	_, err := r.Client.Collection(collectionForumPosts).Doc(id).Delete(ctx)
	return err
}

func (r *ForumRepositoryImpl) LikePost(ctx context.Context, postID, userID string) error {
	return r.updateLikes(ctx, r.Client.Collection(collectionForumPosts).Doc(postID), firestore.ArrayUnion(userID))
}

func (r *ForumRepositoryImpl) UnlikePost(ctx context.Context, postID, userID string) error {
	return r.updateLikes(ctx, r.Client.Collection(collectionForumPosts).Doc(postID), firestore.ArrayRemove(userID))
}

func (r *ForumRepositoryImpl) ListComments(ctx context.Context, postID string) ([]models.ForumComment, error) {
	iter := r.Client.Collection(collectionForumComments).
		Where("postId", "==", postID).
		Documents(ctx)
	defer iter.Stop()

	var comments []models.ForumComment
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var comment models.ForumComment
		if err := snap.DataTo(&comment); err != nil {
			return nil, err
		}
		comment.ID = snap.Ref.ID
		comments = append(comments, comment)
	}

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

// CreateComment writes the comment and bumps the post's comment counter in
// one transaction.
func (r *ForumRepositoryImpl) CreateComment(ctx context.Context, comment models.ForumComment) (string, error) {
	commentRef := r.Client.Collection(collectionForumComments).NewDoc()
	postRef := r.Client.Collection(collectionForumPosts).Doc(comment.PostID)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(postRef); err != nil {
			if isNotFound(err) {
				return repositories.ErrNotFound
			}
			return err
		}
		if err := tx.Create(commentRef, comment); err != nil {
			return err
		}
		return tx.Update(postRef, []firestore.Update{
			{Path: "commentCount", Value: firestore.Increment(1)},
			{Path: "updatedAt", Value: comment.CreatedAt},
		})
	})
	if err != nil {
		return "", err
	}
	return commentRef.ID, nil
}

func (r *ForumRepositoryImpl) LikeComment(ctx context.Context, commentID, userID string) error {
	return r.updateLikes(ctx, r.Client.Collection(collectionForumComments).Doc(commentID), firestore.ArrayUnion(userID))
}

func (r *ForumRepositoryImpl) UnlikeComment(ctx context.Context, commentID, userID string) error {
	return r.updateLikes(ctx, r.Client.Collection(collectionForumComments).Doc(commentID), firestore.ArrayRemove(userID))
}

func (r *ForumRepositoryImpl) updateLikes(ctx context.Context, ref *firestore.DocumentRef, value interface{}) error {
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "likes", Value: value},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil && isNotFound(err) {
		return repositories.ErrNotFound
	}
	return err
}
