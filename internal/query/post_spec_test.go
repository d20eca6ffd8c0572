package query

import (
	"blogicum/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestVisible(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	published := &models.Category{ID: 1, IsPublished: true}
	hidden := &models.Category{ID: 2, IsPublished: false}

	cases := []struct {
		name string
		post models.Post
		want bool
	}{
		{"published without category", models.Post{IsPublished: true, PubDate: now.Add(-time.Hour)}, true},
		{"published in published category", models.Post{IsPublished: true, PubDate: now, CategoryID: uintPtr(1), Category: published}, true},
		{"unpublished", models.Post{IsPublished: false, PubDate: now.Add(-time.Hour)}, false},
		{"hidden category", models.Post{IsPublished: true, PubDate: now.Add(-time.Hour), CategoryID: uintPtr(2), Category: hidden}, false},
		{"category not loaded", models.Post{IsPublished: true, PubDate: now.Add(-time.Hour), CategoryID: uintPtr(1)}, false},
		{"future pub date", models.Post{IsPublished: true, PubDate: now.Add(time.Second)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Visible(&tc.post, now))
		})
	}
}

func TestCanView(t *testing.T) {
	now := time.Now()
	draft := &models.Post{AuthorID: 7, IsPublished: false, PubDate: now.Add(time.Hour)}

	assert.True(t, CanView(draft, 7, now), "author sees own draft")
	assert.False(t, CanView(draft, 8, now))
	assert.False(t, CanView(draft, 0, now), "anonymous viewer")

	public := &models.Post{AuthorID: 7, IsPublished: true, PubDate: now.Add(-time.Hour)}
	assert.True(t, CanView(public, 0, now))
}

func TestSpecBuildersDoNotShareState(t *testing.T) {
	base := Posts().WithRelated()
	byAuthor := base.AuthoredBy(3)
	published := base.Published(time.Now())

	assert.Zero(t, base.AuthorID)
	assert.Nil(t, base.PublicAt)
	assert.Equal(t, uint(3), byAuthor.AuthorID)
	assert.Nil(t, byAuthor.PublicAt)
	assert.NotNil(t, published.PublicAt)
	assert.True(t, published.Related)

	reordered := base.OrderedBy(Order{Field: FieldTitle})
	assert.Equal(t, DefaultOrder, base.Order)
	assert.Equal(t, []Order{{Field: FieldTitle}}, reordered.Order)
}

func TestMatches(t *testing.T) {
	now := time.Now()
	cat := &models.Category{ID: 4, IsPublished: true}
	p := &models.Post{
		ID: 10, AuthorID: 2, Title: "Hello World", Text: "body",
		IsPublished: true, PubDate: now.Add(-time.Minute),
		CategoryID: uintPtr(4), Category: cat,
	}

	assert.True(t, Posts().Matches(p))
	assert.True(t, Posts().Published(now).InCategory(4).AuthoredBy(2).Matches(p))
	assert.False(t, Posts().InCategory(5).Matches(p))
	assert.False(t, Posts().AuthoredBy(3).Matches(p))
	assert.False(t, Posts().WithID(11).Matches(p))
	assert.True(t, Posts().Matching("world").Matches(p))
	assert.False(t, Posts().Matching("nothing").Matches(p))
	assert.False(t, Posts().Published(now.Add(-time.Hour)).Matches(p))

	uncategorised := &models.Post{IsPublished: true, PubDate: now}
	assert.False(t, Posts().InCategory(4).Matches(uncategorised))
}
