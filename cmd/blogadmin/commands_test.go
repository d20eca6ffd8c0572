package main

import (
	"blogicum/internal/db"
	"blogicum/internal/db/dbtest"
	"blogicum/internal/query"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, store *db.Store, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(func() (db.Repository, error) { return store, nil })
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCategoryCommands(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	out, err := run(t, store, "category", "add", "--title", "Travel Notes", "--description", "Trips")
	require.NoError(t, err)
	assert.Contains(t, out, "travel-notes")

	_, err = run(t, store, "category", "add", "--title", "Again", "--slug", "travel-notes")
	assert.Error(t, err)

	_, err = run(t, store, "category", "add", "--title", "Bad", "--slug", "no spaces")
	assert.Error(t, err)

	out, err = run(t, store, "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Travel Notes")
	assert.Contains(t, out, "yes")

	_, err = run(t, store, "category", "hide", "travel-notes")
	require.NoError(t, err)
	c, err := store.CategoryBySlug(ctx, "travel-notes")
	require.NoError(t, err)
	assert.False(t, c.IsPublished)

	_, err = run(t, store, "category", "publish", "travel-notes")
	require.NoError(t, err)
	c, err = store.CategoryBySlug(ctx, "travel-notes")
	require.NoError(t, err)
	assert.True(t, c.IsPublished)

	_, err = run(t, store, "category", "delete", "travel-notes")
	require.NoError(t, err)
	_, err = store.CategoryBySlug(ctx, "travel-notes")
	assert.ErrorIs(t, err, db.ErrNotFound)

	_, err = run(t, store, "category", "delete", "missing")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestLocationCommands(t *testing.T) {
	store := dbtest.NewStore(t)

	_, err := run(t, store, "location", "add", "--name", "Kazan", "--hidden")
	require.NoError(t, err)

	locations, err := store.ListLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.False(t, locations[0].IsPublished)

	out, err := run(t, store, "location", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Kazan")

	_, err = run(t, store, "location", "delete", "abc")
	assert.Error(t, err)

	_, err = run(t, store, "location", "delete", fmt.Sprint(locations[0].ID))
	require.NoError(t, err)
	locations, err = store.ListLocations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestPostModeration(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()
	alice := dbtest.User(t, store, "alice")
	p := dbtest.Post(t, store, alice, "Questionable")
	dbtest.Post(t, store, alice, "Harmless")
	dbtest.Comment(t, store, alice, p, "hm")

	out, err := run(t, store, "post", "list", "--search", "question")
	require.NoError(t, err)
	assert.Contains(t, out, "Questionable")
	assert.NotContains(t, out, "Harmless")

	_, err = run(t, store, "post", "hide", fmt.Sprint(p.ID))
	require.NoError(t, err)
	got, err := store.FindPost(ctx, query.Posts().WithID(p.ID))
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	_, err = run(t, store, "post", "publish", "999")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestUserCommands(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	_, err := run(t, store, "user", "add", "--username", "editor", "--password", "long-password")
	require.NoError(t, err)
	u, err := store.UserByUsername(ctx, "editor")
	require.NoError(t, err)
	dbtest.Post(t, store, u, "Editorial")

	_, err = run(t, store, "user", "add", "--username", "editor", "--password", "other-password")
	assert.Error(t, err)

	_, err = run(t, store, "user", "delete", "editor")
	require.NoError(t, err)
	_, err = store.UserByUsername(ctx, "editor")
	assert.ErrorIs(t, err, db.ErrNotFound)
	total, err := store.CountPosts(ctx, query.Posts())
	require.NoError(t, err)
	assert.Zero(t, total)
}
