package services

import (
	"blogicum/internal/db"
	"blogicum/internal/models"
	"blogicum/internal/query"
	"context"
	"fmt"
	"time"
)

type CommentService struct {
	repo db.Repository
	now  func() time.Time
}

func NewCommentService(repo db.Repository) *CommentService {
	return &CommentService{repo: repo, now: time.Now}
}

// AddComment attaches a comment to a post the author is allowed to see.
func (s *CommentService) AddComment(ctx context.Context, author *models.User, postID uint, text string) (*models.Comment, error) {
	var created *models.Comment
	err := s.repo.Transaction(ctx, func(tx db.Repository) error {
		post, err := tx.FindPost(ctx, query.Posts().WithID(postID).WithRelated())
		if err != nil {
			return err
		}
		if !query.CanView(post, viewerID(author), s.now()) {
			return ErrNotFound
		}
		comment := &models.Comment{Text: text, PostID: post.ID, AuthorID: author.ID}
		if err := tx.CreateComment(ctx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		created = comment
		return nil
	})
	return created, err
}

// CommentForEdit returns the comment when it belongs to the post and the viewer wrote it.
func (s *CommentService) CommentForEdit(ctx context.Context, viewer *models.User, postID, commentID uint) (*models.Comment, error) {
	var found *models.Comment
	err := s.repo.Transaction(ctx, func(tx db.Repository) error {
		comment, err := tx.LockComment(ctx, postID, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != viewerID(viewer) {
			return ErrForbidden
		}
		found = comment
		return nil
	})
	return found, err
}

func (s *CommentService) UpdateComment(ctx context.Context, viewer *models.User, postID, commentID uint, text string) (*models.Comment, error) {
	var updated *models.Comment
	err := s.repo.Transaction(ctx, func(tx db.Repository) error {
		comment, err := tx.LockComment(ctx, postID, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != viewerID(viewer) {
			return ErrForbidden
		}
		comment.Text = text
		if err := tx.SaveComment(ctx, comment); err != nil {
			return fmt.Errorf("save comment: %w", err)
		}
		updated = comment
		return nil
	})
	return updated, err
}

func (s *CommentService) DeleteComment(ctx context.Context, viewer *models.User, postID, commentID uint) error {
	return s.repo.Transaction(ctx, func(tx db.Repository) error {
		comment, err := tx.LockComment(ctx, postID, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != viewerID(viewer) {
			return ErrForbidden
		}
		return tx.DeleteComment(ctx, comment.ID)
	})
}
