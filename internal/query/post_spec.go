// Package query describes post listings independently of the storage backend.
//
// A PostSpec is a value: every builder method returns a modified copy, so a base
// spec can be shared between call sites and narrowed per request.
package query

import (
	"blogicum/internal/models"
	"strings"
	"time"
)

// Field is a column a listing can be ordered by.
type Field string

const (
	FieldPubDate   Field = "pub_date"
	FieldCreatedAt Field = "created_at"
	FieldTitle     Field = "title"
	FieldID        Field = "id"
)

// Order is one ordering term.
type Order struct {
	Field Field
	Desc  bool
}

// DefaultOrder is newest publication first, ties broken by newest creation.
var DefaultOrder = []Order{
	{Field: FieldPubDate, Desc: true},
	{Field: FieldCreatedAt, Desc: true},
}

// PostSpec is a composable description of a post query: filter predicates,
// join hints and ordering.
type PostSpec struct {
	// PublicAt restricts the result to posts publicly visible at that instant.
	PublicAt *time.Time
	AuthorID uint
	// CategoryID zero means any category, including none.
	CategoryID uint
	PostID     uint
	Search     string

	Related      bool // attach author, category and location
	CommentCount bool

	Order []Order
}

// Posts returns the base spec: every post, default ordering.
func Posts() PostSpec {
	return PostSpec{Order: DefaultOrder}
}

// Published keeps only posts satisfying the visibility invariant at now.
func (s PostSpec) Published(now time.Time) PostSpec {
	t := now
	s.PublicAt = &t
	return s
}

// AuthoredBy keeps only the given user's posts.
func (s PostSpec) AuthoredBy(userID uint) PostSpec {
	s.AuthorID = userID
	return s
}

// InCategory keeps only posts in the given category.
func (s PostSpec) InCategory(categoryID uint) PostSpec {
	s.CategoryID = categoryID
	return s
}

// WithID narrows the spec to a single post.
func (s PostSpec) WithID(postID uint) PostSpec {
	s.PostID = postID
	return s
}

// Matching keeps posts whose title or text contains q.
func (s PostSpec) Matching(q string) PostSpec {
	s.Search = q
	return s
}

// WithRelated asks the repository to load author, category and location.
func (s PostSpec) WithRelated() PostSpec {
	s.Related = true
	return s
}

// WithCommentCount asks the repository to fill Post.CommentCount.
func (s PostSpec) WithCommentCount() PostSpec {
	s.CommentCount = true
	return s
}

// OrderedBy replaces the ordering.
func (s PostSpec) OrderedBy(order ...Order) PostSpec {
	s.Order = append([]Order(nil), order...)
	return s
}

// Matches evaluates the spec's filters against a post in memory. The post's
// Category must be loaded when CategoryID is set.
func (s PostSpec) Matches(p *models.Post) bool {
	if s.PostID != 0 && p.ID != s.PostID {
		return false
	}
	if s.AuthorID != 0 && p.AuthorID != s.AuthorID {
		return false
	}
	if s.CategoryID != 0 && (p.CategoryID == nil || *p.CategoryID != s.CategoryID) {
		return false
	}
	if s.Search != "" && !containsFold(p.Title, s.Search) && !containsFold(p.Text, s.Search) {
		return false
	}
	if s.PublicAt != nil && !Visible(p, *s.PublicAt) {
		return false
	}
	return true
}

// Visible reports whether a post may be shown to someone other than its author.
func Visible(p *models.Post, now time.Time) bool {
	if !p.IsPublished {
		return false
	}
	if p.CategoryID != nil && (p.Category == nil || !p.Category.IsPublished) {
		return false
	}
	return !p.PubDate.After(now)
}

// CanView reports whether viewerID may open the post. A zero viewerID is an
// anonymous visitor.
func CanView(p *models.Post, viewerID uint, now time.Time) bool {
	if viewerID != 0 && viewerID == p.AuthorID {
		return true
	}
	return Visible(p, now)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
