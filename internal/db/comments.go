package db

import (
	"blogicum/internal/models"
	"context"

	"gorm.io/gorm/clause"
)

// CommentsForPost returns the post's comments oldest first, with authors.
func (s *Store) CommentsForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.conn(ctx).Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, translate(err)
}

// LockComment reads a comment of the given post for update.
func (s *Store) LockComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(comment).Error)
}

func (s *Store) SaveComment(ctx context.Context, comment *models.Comment) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(comment).Error)
}

func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
