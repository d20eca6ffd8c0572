package services

import (
	"blogicum/internal/config"
	"blogicum/internal/db"
	"blogicum/internal/models"
	"blogicum/internal/pagination"
	"blogicum/internal/query"
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"
)

// PostPage is one page of a post listing.
type PostPage = pagination.Page[models.Post]

// PostInput is a validated post form submission.
type PostInput struct {
	Title      string
	Text       string
	PubDate    time.Time
	CategoryID *uint
	LocationID *uint
	// Image replaces the current image when set.
	Image *multipart.FileHeader
	// ClearImage drops the current image when no replacement is uploaded.
	ClearImage bool
}

// PostService composes the visibility-filtered listings and applies
// author-only mutations.
type PostService struct {
	repo      db.Repository
	media     MediaStore
	paginator pagination.Paginator
	now       func() time.Time
}

func NewPostService(repo db.Repository, media MediaStore, cfg *config.Config) *PostService {
	return &PostService{
		repo:      repo,
		media:     media,
		paginator: pagination.New(cfg.PostsPerPage),
		now:       time.Now,
	}
}

// listing is the base for every post listing.
func listing() query.PostSpec {
	return query.Posts().WithRelated().WithCommentCount()
}

func (s *PostService) paginate(ctx context.Context, spec query.PostSpec, rawPage string) (PostPage, error) {
	total, err := s.repo.CountPosts(ctx, spec)
	if err != nil {
		return PostPage{}, fmt.Errorf("count posts: %w", err)
	}
	window := s.paginator.Window(rawPage, total)
	posts, err := s.repo.FindPosts(ctx, spec, window.Limit(), window.Offset())
	if err != nil {
		return PostPage{}, fmt.Errorf("find posts: %w", err)
	}
	return pagination.NewPage(window, posts), nil
}

// ListPublished returns the publicly visible posts.
func (s *PostService) ListPublished(ctx context.Context, rawPage string) (PostPage, error) {
	return s.paginate(ctx, listing().Published(s.now()), rawPage)
}

// ListByCategory returns the publicly visible posts of a published category.
func (s *PostService) ListByCategory(ctx context.Context, slug, rawPage string) (*models.Category, PostPage, error) {
	category, err := s.repo.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, PostPage{}, err
	}
	if !category.IsPublished {
		return nil, PostPage{}, ErrNotFound
	}
	page, err := s.paginate(ctx, listing().Published(s.now()).InCategory(category.ID), rawPage)
	return category, page, err
}

// ListByAuthor returns every post of the user when the viewer is that user,
// otherwise only the publicly visible ones. viewer may be nil.
func (s *PostService) ListByAuthor(ctx context.Context, username string, viewer *models.User, rawPage string) (*models.User, PostPage, error) {
	author, err := s.repo.UserByUsername(ctx, username)
	if err != nil {
		return nil, PostPage{}, err
	}
	spec := listing().AuthoredBy(author.ID)
	if viewerID(viewer) != author.ID {
		spec = spec.Published(s.now())
	}
	page, err := s.paginate(ctx, spec, rawPage)
	return author, page, err
}

// GetDetail returns a post the viewer may see, with its comments oldest first.
func (s *PostService) GetDetail(ctx context.Context, postID uint, viewer *models.User) (*models.Post, []models.Comment, error) {
	post, err := s.repo.FindPost(ctx, listing().WithID(postID))
	if err != nil {
		return nil, nil, err
	}
	if !query.CanView(post, viewerID(viewer), s.now()) {
		return nil, nil, ErrNotFound
	}
	comments, err := s.repo.CommentsForPost(ctx, post.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load comments: %w", err)
	}
	return post, comments, nil
}

// Search returns publicly visible posts whose title or text contains q.
func (s *PostService) Search(ctx context.Context, q, rawPage string) (PostPage, error) {
	return s.paginate(ctx, listing().Published(s.now()).Matching(q), rawPage)
}

// Categories and Locations list every row, for form choices.
func (s *PostService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *PostService) Locations(ctx context.Context) ([]models.Location, error) {
	return s.repo.ListLocations(ctx)
}

// PostForEdit returns the post when the viewer is its author.
func (s *PostService) PostForEdit(ctx context.Context, viewer *models.User, postID uint) (*models.Post, error) {
	post, err := s.repo.FindPost(ctx, query.Posts().WithID(postID).WithRelated())
	if err != nil {
		return nil, err
	}
	if post.AuthorID != viewerID(viewer) {
		return nil, ErrForbidden
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, author *models.User, in PostInput) (*models.Post, error) {
	post := &models.Post{
		AuthorID:    author.ID,
		IsPublished: true,
	}
	in.apply(post)

	if in.Image != nil {
		name, err := s.media.Save(ctx, in.Image)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		post.Image = name
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		s.discard(ctx, post.Image)
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdatePost checks ownership and writes the changes in one transaction.
func (s *PostService) UpdatePost(ctx context.Context, viewer *models.User, postID uint, in PostInput) (*models.Post, error) {
	var (
		updated  *models.Post
		newImage string
		oldImage string
	)
	err := s.repo.Transaction(ctx, func(tx db.Repository) error {
		post, err := tx.LockPost(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != viewerID(viewer) {
			return ErrForbidden
		}
		in.apply(post)

		switch {
		case in.Image != nil:
			name, err := s.media.Save(ctx, in.Image)
			if err != nil {
				return fmt.Errorf("save image: %w", err)
			}
			newImage, oldImage = name, post.Image
			post.Image = name
		case in.ClearImage:
			oldImage = post.Image
			post.Image = ""
		}

		if err := tx.SavePost(ctx, post); err != nil {
			return fmt.Errorf("save post: %w", err)
		}
		updated = post
		return nil
	})
	if err != nil {
		s.discard(ctx, newImage)
		return nil, err
	}
	s.discard(ctx, oldImage)
	return updated, nil
}

// DeletePost removes the viewer's post and its comments.
func (s *PostService) DeletePost(ctx context.Context, viewer *models.User, postID uint) error {
	var image string
	err := s.repo.Transaction(ctx, func(tx db.Repository) error {
		post, err := tx.LockPost(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != viewerID(viewer) {
			return ErrForbidden
		}
		image = post.Image
		return tx.DeletePost(ctx, post.ID)
	})
	if err != nil {
		return err
	}
	s.discard(ctx, image)
	return nil
}

// discard removes a stored image; failures only leave an orphaned file.
func (s *PostService) discard(ctx context.Context, name string) {
	if name == "" || s.media == nil {
		return
	}
	if err := s.media.Delete(ctx, name); err != nil && !errors.Is(err, ErrNotFound) {
		log.Printf("Failed to remove image %s: %v", name, err)
	}
}

func (in PostInput) apply(p *models.Post) {
	p.Title = in.Title
	p.Text = in.Text
	p.PubDate = in.PubDate
	p.CategoryID = in.CategoryID
	p.LocationID = in.LocationID
}

func viewerID(u *models.User) uint {
	if u == nil {
		return 0
	}
	return u.ID
}
