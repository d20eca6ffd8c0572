package services

import (
	"blogicum/internal/config"
	"blogicum/internal/db"
	"blogicum/internal/db/dbtest"
	"blogicum/internal/models"
	"blogicum/internal/query"
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockMedia struct {
	mock.Mock
}

func (m *mockMedia) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *mockMedia) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func newPostService(t *testing.T, perPage int) (*db.Store, *PostService, *mockMedia) {
	t.Helper()
	store := dbtest.NewStore(t)
	media := &mockMedia{}
	t.Cleanup(func() { media.AssertExpectations(t) })
	return store, NewPostService(store, media, &config.Config{PostsPerPage: perPage}), media
}

// uploadHeader builds a real multipart file header with the given content.
func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func postTitles(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

func TestListPublishedHidesUnpublishedCategory(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newPostService(t, 10)
	alice := dbtest.User(t, store, "alice")
	news := dbtest.Category(t, store, "news", true)
	p := dbtest.Post(t, store, alice, "hello", dbtest.InCategory(news))

	page, err := svc.ListPublished(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, postTitles(page.Items))

	_, err = NewTaxonomyService(store).SetCategoryPublished(ctx, "news", false)
	require.NoError(t, err)

	page, err = svc.ListPublished(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.NumPages)

	_, _, err = svc.ListByCategory(ctx, "news", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, byAlice, err := svc.ListByAuthor(ctx, "alice", alice, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, postTitles(byAlice.Items))

	_, byAnon, err := svc.ListByAuthor(ctx, "alice", nil, "")
	require.NoError(t, err)
	assert.Empty(t, byAnon.Items)

	got, _, err := svc.GetDetail(ctx, p.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	_, _, err = svc.GetDetail(ctx, p.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFuturePostVisibleOnlyToAuthor(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newPostService(t, 10)
	alice := dbtest.User(t, store, "alice")
	bob := dbtest.User(t, store, "bob")
	p := dbtest.Post(t, store, alice, "tomorrow", dbtest.PublishedAt(time.Now().Add(24*time.Hour)))

	page, err := svc.ListPublished(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, _, err = svc.GetDetail(ctx, p.ID, bob)
	assert.ErrorIs(t, err, ErrNotFound)

	_, own, err := svc.ListByAuthor(ctx, "alice", alice, "")
	require.NoError(t, err)
	assert.Len(t, own.Items, 1)

	_, err = NewCommentService(store).AddComment(ctx, bob, p.ID, "early")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByCategoryMissing(t *testing.T) {
	_, svc, _ := newPostService(t, 10)
	_, _, err := svc.ListByCategory(context.Background(), "nope", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByAuthorMissing(t *testing.T) {
	_, svc, _ := newPostService(t, 10)
	_, _, err := svc.ListByAuthor(context.Background(), "ghost", nil, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaginationClamps(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newPostService(t, 10)
	alice := dbtest.User(t, store, "alice")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		dbtest.Post(t, store, alice, "post", dbtest.PublishedAt(base.Add(-time.Duration(i)*time.Minute)))
	}

	tests := []struct {
		raw    string
		number int
		items  int
	}{
		{"", 1, 10},
		{"2", 2, 10},
		{"3", 3, 5},
		{"99", 3, 5},
		{"0", 1, 10},
		{"-4", 1, 10},
		{"abc", 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			page, err := svc.ListPublished(ctx, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.number, page.Number)
			assert.Equal(t, 3, page.NumPages)
			assert.Len(t, page.Items, tt.items)
		})
	}
}

func TestCreatePostWithImage(t *testing.T) {
	ctx := context.Background()
	store, svc, media := newPostService(t, 10)
	alice := dbtest.User(t, store, "alice")
	header := uploadHeader(t, "cat.png", []byte("png"))
	media.On("Save", ctx, header).Return("posts/abc.png", nil).Once()

	post, err := svc.CreatePost(ctx, alice, PostInput{
		Title:   "with image",
		Text:    "body",
		PubDate: time.Now().Add(-time.Minute),
		Image:   header,
	})
	require.NoError(t, err)
	assert.True(t, post.IsPublished)

	got, err := store.FindPost(ctx, query.Posts().WithID(post.ID))
	require.NoError(t, err)
	assert.Equal(t, "posts/abc.png", got.Image)
}

func TestUpdatePostByNonOwnerIsForbidden(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newPostService(t, 10)
	alice := dbtest.User(t, store, "alice")
	bob := dbtest.User(t, store, "bob")
	p := dbtest.Post(t, store, alice, "original")

	_, err := svc.PostForEdit(ctx, bob, p.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdatePost(ctx, bob, p.ID, PostInput{Title: "hijacked", Text: "x", PubDate: time.Now()})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, svc.DeletePost(ctx, bob, p.ID), ErrForbidden)

	got, err := store.FindPost(ctx, query.Posts().WithID(p.ID))
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)
}

func TestUpdatePostReplacesAndClearsImage(t *testing.T) {
	ctx := context.Background()
	store, svc, media := newPostService(t, 10)
	alice := dbtest.User(t, store, "alice")
	p := dbtest.Post(t, store, alice, "pic")
	p.Image = "posts/old.png"
	require.NoError(t, store.SavePost(ctx, p))

	header := uploadHeader(t, "new.jpg", []byte("jpg"))
	media.On("Save", ctx, header).Return("posts/new.jpg", nil).Once()
	media.On("Delete", ctx, "posts/old.png").Return(nil).Once()

	updated, err := svc.UpdatePost(ctx, alice, p.ID, PostInput{Title: "pic", Text: "t", PubDate: p.PubDate, Image: header})
	require.NoError(t, err)
	assert.Equal(t, "posts/new.jpg", updated.Image)

	media.On("Delete", ctx, "posts/new.jpg").Return(nil).Once()
	cleared, err := svc.UpdatePost(ctx, alice, p.ID, PostInput{Title: "pic", Text: "t", PubDate: p.PubDate, ClearImage: true})
	require.NoError(t, err)
	assert.Empty(t, cleared.Image)
}

func TestDeletePostRemovesComments(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newPostService(t, 10)
	alice := dbtest.User(t, store, "alice")
	p := dbtest.Post(t, store, alice, "bye")
	dbtest.Comment(t, store, alice, p, "one")

	require.NoError(t, svc.DeletePost(ctx, alice, p.ID))

	_, _, err := svc.GetDetail(ctx, p.ID, alice)
	assert.ErrorIs(t, err, ErrNotFound)
	comments, err := store.CommentsForPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	svc := NewCommentService(store)
	alice := dbtest.User(t, store, "alice")
	bob := dbtest.User(t, store, "bob")
	p := dbtest.Post(t, store, alice, "hello")
	other := dbtest.Post(t, store, alice, "other")

	c, err := svc.AddComment(ctx, bob, p.ID, "nice")
	require.NoError(t, err)

	_, err = svc.UpdateComment(ctx, alice, p.ID, c.ID, "edited by alice")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.DeleteComment(ctx, alice, p.ID, c.ID), ErrForbidden)

	_, err = svc.CommentForEdit(ctx, bob, other.ID, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdateComment(ctx, bob, p.ID, c.ID, "nicer")
	require.NoError(t, err)
	assert.Equal(t, "nicer", updated.Text)

	comments, err := store.CommentsForPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nicer", comments[0].Text)

	require.NoError(t, svc.DeleteComment(ctx, bob, p.ID, c.ID))
	comments, err = store.CommentsForPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentCountOnListing(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newPostService(t, 10)
	alice := dbtest.User(t, store, "alice")
	p := dbtest.Post(t, store, alice, "hello")
	comments := NewCommentService(store)
	for _, text := range []string{"a", "b", "c"} {
		_, err := comments.AddComment(ctx, alice, p.ID, text)
		require.NoError(t, err)
	}

	page, err := svc.ListPublished(ctx, "1")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Items[0].CommentCount)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	svc := NewUserService(store)
	svc.cost = bcrypt.MinCost

	u, err := svc.Register(ctx, RegistrationInput{Username: "carol", Email: "carol@example.com", Password: "pa55word!"})
	require.NoError(t, err)
	assert.NotEqual(t, "pa55word!", u.Password)

	_, err = svc.Register(ctx, RegistrationInput{Username: "carol", Password: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := svc.Authenticate(ctx, "carol", "pa55word!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody", "pa55word!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	store := dbtest.NewStore(t)
	svc := NewUserService(store)
	svc.cost = bcrypt.MinCost

	_, err := svc.Register(context.Background(), RegistrationInput{Username: "dave", Password: strings.Repeat("x", 73)})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	_, err = store.UserByUsername(context.Background(), "dave")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	svc := NewUserService(store)
	alice := dbtest.User(t, store, "alice")
	dbtest.User(t, store, "bob")

	_, err := svc.UpdateProfile(ctx, alice.ID, ProfileInput{Username: "bob"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	u, err := svc.UpdateProfile(ctx, alice.ID, ProfileInput{FirstName: "Alice", LastName: "Liddell", Username: "alice2", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice2", u.Username)
	assert.Equal(t, "Alice Liddell", u.DisplayName())
}

func TestTaxonomy(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	svc := NewTaxonomyService(store)

	c, err := svc.AddCategory(ctx, CategoryInput{Title: "Travel Notes", Description: "trips"})
	require.NoError(t, err)
	assert.Equal(t, "travel-notes", c.Slug)
	assert.True(t, c.IsPublished)

	hidden, err := svc.AddCategory(ctx, CategoryInput{Title: "Drafts", Slug: "drafts", Hidden: true})
	require.NoError(t, err)
	assert.False(t, hidden.IsPublished)
	reloaded, err := store.CategoryBySlug(ctx, "drafts")
	require.NoError(t, err)
	assert.False(t, reloaded.IsPublished)

	_, err = svc.AddCategory(ctx, CategoryInput{Title: "Travel notes"})
	assert.ErrorIs(t, err, ErrSlugTaken)
	_, err = svc.AddCategory(ctx, CategoryInput{Title: "Bad", Slug: "no spaces"})
	assert.ErrorIs(t, err, ErrInvalidSlug)

	loc, err := svc.AddLocation(ctx, "Kazan", false)
	require.NoError(t, err)
	locations, err := svc.Locations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, loc.ID, locations[0].ID)

	require.NoError(t, svc.DeleteCategory(ctx, "drafts"))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, "drafts"), ErrNotFound)
}

func TestSetPostPublished(t *testing.T) {
	ctx := context.Background()
	store := dbtest.NewStore(t)
	svc := NewTaxonomyService(store)
	alice := dbtest.User(t, store, "alice")
	p := dbtest.Post(t, store, alice, "moderated")

	_, err := svc.SetPostPublished(ctx, p.ID, false)
	require.NoError(t, err)

	posts, err := svc.Posts(ctx, "moder")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.False(t, posts[0].IsPublished)
}

func TestLocalMedia(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	m := NewLocalMedia(root)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	name, err := m.Save(ctx, uploadHeader(t, "holiday", png))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "posts/"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	stored, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)
	assert.Equal(t, png, stored)

	require.NoError(t, m.Delete(ctx, name))
	assert.ErrorIs(t, m.Delete(ctx, name), ErrNotFound)

	// names cannot climb out of the root
	assert.Equal(t, filepath.Join(root, "etc", "passwd"), m.path("../../etc/passwd"))
}
