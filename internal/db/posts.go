package db

import (
	"blogicum/internal/models"
	"blogicum/internal/query"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var orderColumns = map[query.Field]string{
	query.FieldPubDate:   "posts.pub_date",
	query.FieldCreatedAt: "posts.created_at",
	query.FieldTitle:     "posts.title",
	query.FieldID:        "posts.id",
}

// likeEscaper makes the search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterPosts translates the PostSpec predicates into WHERE clauses.
func filterPosts(spec query.PostSpec) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if spec.PostID != 0 {
			tx = tx.Where("posts.id = ?", spec.PostID)
		}
		if spec.AuthorID != 0 {
			tx = tx.Where("posts.author_id = ?", spec.AuthorID)
		}
		if spec.CategoryID != 0 {
			tx = tx.Where("posts.category_id = ?", spec.CategoryID)
		}
		if spec.Search != "" {
			pattern := "%" + likeEscaper.Replace(strings.ToLower(spec.Search)) + "%"
			tx = tx.Where(`(LOWER(posts.title) LIKE ? ESCAPE '\' OR LOWER(posts.text) LIKE ? ESCAPE '\')`, pattern, pattern)
		}
		if spec.PublicAt != nil {
			tx = tx.Where("posts.is_published = ? AND posts.pub_date <= ?", true, spec.PublicAt.UTC()).
				Where("(posts.category_id IS NULL OR EXISTS (SELECT 1 FROM categories WHERE categories.id = posts.category_id AND categories.is_published = ?))", true)
		}
		return tx
	}
}

func orderPosts(spec query.PostSpec) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		for _, o := range spec.Order {
			col, ok := orderColumns[o.Field]
			if !ok {
				continue
			}
			tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: col, Raw: true}, Desc: o.Desc})
		}
		return tx
	}
}

func preloadPosts(spec query.PostSpec) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if !spec.Related {
			return tx
		}
		return tx.Preload("Author").Preload("Category").Preload("Location")
	}
}

func (s *Store) CountPosts(ctx context.Context, spec query.PostSpec) (int64, error) {
	var total int64
	err := s.conn(ctx).Model(&models.Post{}).Scopes(filterPosts(spec)).Count(&total).Error
	return total, translate(err)
}

func (s *Store) FindPosts(ctx context.Context, spec query.PostSpec, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	tx := s.conn(ctx).Model(&models.Post{}).
		Scopes(filterPosts(spec), preloadPosts(spec), orderPosts(spec))
	if limit > 0 {
		tx = tx.Limit(limit).Offset(offset)
	}
	if err := tx.Find(&posts).Error; err != nil {
		return nil, translate(err)
	}
	if spec.CommentCount {
		if err := s.fillCommentCounts(ctx, posts); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (s *Store) FindPost(ctx context.Context, spec query.PostSpec) (*models.Post, error) {
	var post models.Post
	err := s.conn(ctx).Model(&models.Post{}).
		Scopes(filterPosts(spec), preloadPosts(spec), orderPosts(spec)).
		First(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	if spec.CommentCount {
		posts := []models.Post{post}
		if err := s.fillCommentCounts(ctx, posts); err != nil {
			return nil, err
		}
		post.CommentCount = posts[0].CommentCount
	}
	return &post, nil
}

func (s *Store) LockPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	post.PubDate = post.PubDate.UTC()
	return translate(s.conn(ctx).Omit(clause.Associations).Create(post).Error)
}

// SavePost writes every column, including cleared category/location/image.
func (s *Store) SavePost(ctx context.Context, post *models.Post) error {
	post.PubDate = post.PubDate.UTC()
	return translate(s.conn(ctx).Omit(clause.Associations).Save(post).Error)
}

// DeletePost removes the post and its comments.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	return s.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// fillCommentCounts annotates posts with their comment totals in one grouped query.
func (s *Store) fillCommentCounts(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	err := s.conn(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}
