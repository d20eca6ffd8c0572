package db

import (
	"blogicum/internal/models"
	"context"

	"gorm.io/gorm"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.conn(ctx).Order("title ASC, id ASC").Find(&categories).Error
	return categories, translate(err)
}

func (s *Store) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := s.conn(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *Store) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.conn(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate(s.conn(ctx).Create(category).Error)
}

func (s *Store) SaveCategory(ctx context.Context, category *models.Category) error {
	return translate(s.conn(ctx).Save(category).Error)
}

// DeleteCategory removes the category; its posts stay, uncategorised.
func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	return s.inTx(ctx, func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{}).Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Store) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := s.conn(ctx).Order("name ASC, id ASC").Find(&locations).Error
	return locations, translate(err)
}

func (s *Store) LocationByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := s.conn(ctx).First(&location, id).Error; err != nil {
		return nil, translate(err)
	}
	return &location, nil
}

func (s *Store) CreateLocation(ctx context.Context, location *models.Location) error {
	return translate(s.conn(ctx).Create(location).Error)
}

// DeleteLocation removes the location; its posts stay, without a location.
func (s *Store) DeleteLocation(ctx context.Context, id uint) error {
	return s.inTx(ctx, func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{}).Where("location_id = ?", id).
			Update("location_id", nil).Error
		if err != nil {
			return err
		}
		res := tx.Delete(&models.Location{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
