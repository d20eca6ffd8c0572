package db

import (
	"blogicum/internal/models"
	"blogicum/internal/query"
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Repository is the storage surface the services depend on.
type Repository interface {
	// Transaction runs fn against a repository bound to one transaction.
	// Returning an error from fn rolls the transaction back.
	Transaction(ctx context.Context, fn func(Repository) error) error

	CountPosts(ctx context.Context, spec query.PostSpec) (int64, error)
	FindPosts(ctx context.Context, spec query.PostSpec, limit, offset int) ([]models.Post, error)
	FindPost(ctx context.Context, spec query.PostSpec) (*models.Post, error)
	// LockPost reads a post for update inside a transaction.
	LockPost(ctx context.Context, id uint) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	SavePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error

	CommentsForPost(ctx context.Context, postID uint) ([]models.Comment, error)
	LockComment(ctx context.Context, postID, commentID uint) (*models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	SaveComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CategoryByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	SaveCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error

	ListLocations(ctx context.Context) ([]models.Location, error)
	LocationByID(ctx context.Context, id uint) (*models.Location, error)
	CreateLocation(ctx context.Context, location *models.Location) error
	DeleteLocation(ctx context.Context, id uint) error

	UserByID(ctx context.Context, id uint) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
}
