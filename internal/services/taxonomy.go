package services

import (
	"blogicum/internal/db"
	"blogicum/internal/models"
	"blogicum/internal/query"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ErrInvalidSlug is returned for slugs outside latin letters, digits, hyphen and underscore.
var ErrInvalidSlug = errors.New("slug may contain only latin letters, digits, hyphens and underscores")

type CategoryInput struct {
	Title       string
	Description string
	// Slug is derived from Title when empty.
	Slug   string
	Hidden bool
}

// TaxonomyService manages categories and locations and moderates posts.
// It backs the administration CLI.
type TaxonomyService struct {
	repo db.Repository
}

func NewTaxonomyService(repo db.Repository) *TaxonomyService {
	return &TaxonomyService{repo: repo}
}

func (s *TaxonomyService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *TaxonomyService) AddCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("category title is required")
	}
	key := in.Slug
	if key == "" {
		key = slug.Make(title)
	}
	if len(key) > 64 || !slugPattern.MatchString(key) {
		return nil, ErrInvalidSlug
	}

	category := &models.Category{
		Title:       title,
		Description: in.Description,
		Slug:        key,
		IsPublished: !in.Hidden,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// SetCategoryPublished publishes or hides a category. Hiding it hides its posts too.
func (s *TaxonomyService) SetCategoryPublished(ctx context.Context, categorySlug string, published bool) (*models.Category, error) {
	var updated *models.Category
	err := s.repo.Transaction(ctx, func(tx db.Repository) error {
		category, err := tx.CategoryBySlug(ctx, categorySlug)
		if err != nil {
			return err
		}
		category.IsPublished = published
		if err := tx.SaveCategory(ctx, category); err != nil {
			return fmt.Errorf("save category: %w", err)
		}
		updated = category
		return nil
	})
	return updated, err
}

// DeleteCategory removes the category; its posts become uncategorised.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, categorySlug string) error {
	category, err := s.repo.CategoryBySlug(ctx, categorySlug)
	if err != nil {
		return err
	}
	return s.repo.DeleteCategory(ctx, category.ID)
}

func (s *TaxonomyService) Locations(ctx context.Context) ([]models.Location, error) {
	return s.repo.ListLocations(ctx)
}

func (s *TaxonomyService) AddLocation(ctx context.Context, name string, hidden bool) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("location name is required")
	}
	location := &models.Location{Name: name, IsPublished: !hidden}
	if err := s.repo.CreateLocation(ctx, location); err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return location, nil
}

func (s *TaxonomyService) DeleteLocation(ctx context.Context, id uint) error {
	return s.repo.DeleteLocation(ctx, id)
}

// Posts lists every post, drafts included, optionally filtered by a search term.
func (s *TaxonomyService) Posts(ctx context.Context, search string) ([]models.Post, error) {
	spec := query.Posts().WithRelated().WithCommentCount()
	if search != "" {
		spec = spec.Matching(search)
	}
	return s.repo.FindPosts(ctx, spec, 0, 0)
}

// SetPostPublished toggles a post's own publication flag.
func (s *TaxonomyService) SetPostPublished(ctx context.Context, postID uint, published bool) (*models.Post, error) {
	var updated *models.Post
	err := s.repo.Transaction(ctx, func(tx db.Repository) error {
		post, err := tx.LockPost(ctx, postID)
		if err != nil {
			return err
		}
		post.IsPublished = published
		if err := tx.SavePost(ctx, post); err != nil {
			return fmt.Errorf("save post: %w", err)
		}
		updated = post
		return nil
	})
	return updated, err
}
