package db

import (
	"blogicum/internal/models"
	"context"

	"gorm.io/gorm"
)

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UsernameTaken reports whether another user (not exceptID) already uses username.
func (s *Store) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.User{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.conn(ctx).Create(user).Error)
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	return translate(s.conn(ctx).Save(user).Error)
}

// DeleteUser removes the user together with their posts and comments,
// including other users' comments on those posts.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.inTx(ctx, func(tx *gorm.DB) error {
		authored := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("author_id = ? OR post_id IN (?)", id, authored).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
