// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/updateshub/db"
	"github.com/danielhkuo/updateshub/models"
)

func newFrozenStore(t *testing.T, at time.Time) *Store {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.CreateSchema(ctx, conn))

	st := New(conn)
	st.now = func() time.Time { return at }
	return st
}

func TestUniqueSlugSameMillisecond(t *testing.T) {
	ctx := context.Background()
	at := time.UnixMilli(1700000000000).UTC()
	st := newFrozenStore(t, at)

	t.Run("posts", func(t *testing.T) {
		want := []string{"dup", "dup-1700000000000", "dup-1700000000000-1", "dup-1700000000000-2"}
		for i, expected := range want {
			post, err := st.CreatePost(ctx, NewPost{CreatePostRequest: models.CreatePostRequest{
				Title:   "Dup",
				Content: "same title, same instant",
			}})
			require.NoError(t, err, "post %d", i)
			assert.Equal(t, expected, post.Slug)
		}
	})

	t.Run("retitled post", func(t *testing.T) {
		other, err := st.CreatePost(ctx, NewPost{CreatePostRequest: models.CreatePostRequest{
			Title:   "Other",
			Content: "renamed later",
		}})
		require.NoError(t, err)

		updated, err := st.UpdatePost(ctx, other.ID, PostUpdate{Title: "Dup"})
		require.NoError(t, err)
		assert.Equal(t, "dup-1700000000000-3", updated.Slug)
	})

	t.Run("categories", func(t *testing.T) {
		want := []string{"tech", "tech-1700000000000", "tech-1700000000000-1"}
		for i, name := range []string{"Tech", "Tech!", "tech"} {
			category, err := st.CreateCategory(ctx, name)
			require.NoError(t, err, "category %q", name)
			assert.Equal(t, want[i], category.Slug)
		}
	})

	t.Run("attempts exhausted", func(t *testing.T) {
		for i := 0; i < maxSlugAttempts; i++ {
			_, err := st.CreateCategory(ctx, "Crowded")
			require.NoError(t, err)
		}
		_, err := st.CreateCategory(ctx, "Crowded")
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}
