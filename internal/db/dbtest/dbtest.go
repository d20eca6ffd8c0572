// Package dbtest provides in-memory stores and fixtures for tests.
package dbtest

import (
	"blogicum/internal/config"
	"blogicum/internal/db"
	"blogicum/internal/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// NewStore opens a fresh in-memory SQLite database with the schema migrated.
func NewStore(t testing.TB) *db.Store {
	t.Helper()
	gdb, err := db.Open(&config.Config{
		DBDriver:    config.DriverSQLite,
		DatabaseURL: "file::memory:?_foreign_keys=on",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db.NewStore(gdb)
}

// Password is the plain-text password of every fixture user.
const Password = "s3cret-pass"

var passwordHash string

func hashedPassword(t testing.TB) string {
	if passwordHash == "" {
		h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
		require.NoError(t, err)
		passwordHash = string(h)
	}
	return passwordHash
}

func User(t testing.TB, s *db.Store, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: hashedPassword(t)}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func Category(t testing.TB, s *db.Store, slug string, published bool) *models.Category {
	t.Helper()
	c := &models.Category{Title: slug, Description: slug + " posts", Slug: slug, IsPublished: published}
	require.NoError(t, s.CreateCategory(context.Background(), c))
	return c
}

func Location(t testing.TB, s *db.Store, name string) *models.Location {
	t.Helper()
	l := &models.Location{Name: name, IsPublished: true}
	require.NoError(t, s.CreateLocation(context.Background(), l))
	return l
}

// PostOption adjusts a fixture post before it is saved.
type PostOption func(*models.Post)

func InCategory(c *models.Category) PostOption {
	return func(p *models.Post) { p.CategoryID = &c.ID }
}

func AtLocation(l *models.Location) PostOption {
	return func(p *models.Post) { p.LocationID = &l.ID }
}

func PublishedAt(t time.Time) PostOption {
	return func(p *models.Post) { p.PubDate = t }
}

func Unpublished() PostOption {
	return func(p *models.Post) { p.IsPublished = false }
}

// Post creates a published post dated an hour ago unless options say otherwise.
func Post(t testing.TB, s *db.Store, author *models.User, title string, opts ...PostOption) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:       title,
		Text:        title + " text",
		AuthorID:    author.ID,
		PubDate:     time.Now().Add(-time.Hour),
		IsPublished: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, s.CreatePost(context.Background(), p))
	return p
}

func Comment(t testing.TB, s *db.Store, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	c := &models.Comment{Text: text, AuthorID: author.ID, PostID: post.ID}
	require.NoError(t, s.CreateComment(context.Background(), c))
	return c
}
