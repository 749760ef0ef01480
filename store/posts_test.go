// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/store"
	"github.com/danielhkuo/updateshub/testutil"
)

func TestListPublishedPosts(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	author := testutil.CreateTestUser(t, st, "Admin", "admin@example.com", models.RoleAdmin)
	tech := testutil.CreateTestCategory(t, st, "Technology")
	travel := testutil.CreateTestCategory(t, st, "Travel")

	testutil.CreateTestPost(t, st, author.ID, tech.ID, "Go Concurrency", models.PostStatusPublished)
	testutil.CreateTestPost(t, st, author.ID, travel.ID, "Lisbon Trip", models.PostStatusPublished)
	testutil.CreateTestPost(t, st, author.ID, tech.ID, "Unfinished Draft", models.PostStatusDraft)
	newest := testutil.CreateTestPost(t, st, author.ID, "", "Uncategorised Notes", models.PostStatusPublished)

	t.Run("published only, newest first", func(t *testing.T) {
		page, err := st.ListPublishedPosts(ctx, store.ListParams{Page: 1, Limit: 10})
		require.NoError(t, err)

		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.Pages)
		require.Len(t, page.Posts, 3)
		assert.Equal(t, newest.ID, page.Posts[0].ID)
		for _, p := range page.Posts {
			assert.Equal(t, models.PostStatusPublished, p.Status)
		}
	})

	t.Run("joins names", func(t *testing.T) {
		page, err := st.ListPublishedPosts(ctx, store.ListParams{Search: "lisbon"})
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		require.NotNil(t, page.Posts[0].CategoryName)
		assert.Equal(t, "Travel", *page.Posts[0].CategoryName)
		require.NotNil(t, page.Posts[0].AuthorName)
		assert.Equal(t, "Admin", *page.Posts[0].AuthorName)
	})

	t.Run("uncategorised post has null category", func(t *testing.T) {
		page, err := st.ListPublishedPosts(ctx, store.ListParams{Search: "notes"})
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		assert.Nil(t, page.Posts[0].CategoryName)
	})

	tests := []struct {
		name      string
		params    store.ListParams
		wantTotal int
		wantPosts int
		wantPages int
		wantPage  int
	}{
		{"search is case insensitive", store.ListParams{Search: "GO CONC"}, 1, 1, 1, 1},
		{"search matches content", store.ListParams{Search: "content of lisbon"}, 1, 1, 1, 1},
		{"search matches category name", store.ListParams{Search: "techno"}, 1, 1, 1, 1},
		{"search does not reveal drafts", store.ListParams{Search: "unfinished"}, 0, 0, 0, 1},
		{"category filter", store.ListParams{CategoryID: tech.ID}, 1, 1, 1, 1},
		{"category and search", store.ListParams{CategoryID: travel.ID, Search: "go"}, 0, 0, 0, 1},
		{"paging", store.ListParams{Page: 2, Limit: 2}, 3, 1, 2, 2},
		{"page past the end", store.ListParams{Page: 5, Limit: 2}, 3, 0, 2, 5},
		{"page below one is clamped", store.ListParams{Page: -3, Limit: 2}, 3, 2, 2, 1},
		{"limit is capped", store.ListParams{Limit: 500}, 3, 3, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := st.ListPublishedPosts(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Len(t, page.Posts, tt.wantPosts)
			assert.Equal(t, tt.wantPages, page.Pages)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.NotNil(t, page.Posts)
		})
	}
}

func TestListAdminPosts(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	draft := testutil.CreateTestPost(t, st, "", "", "Draft", models.PostStatusDraft)
	published := testutil.CreateTestPost(t, st, "", "", "Published", models.PostStatusPublished)

	_, err := st.RatePost(ctx, published.ID, store.Rater{GuestIP: "a"}, 5)
	require.NoError(t, err)
	_, err = st.RatePost(ctx, published.ID, store.Rater{GuestIP: "b"}, 4)
	require.NoError(t, err)
	_, err = st.RatePost(ctx, published.ID, store.Rater{GuestIP: "c"}, 4)
	require.NoError(t, err)

	page, err := st.ListAdminPosts(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Posts, 2)

	byID := map[string]models.AdminPost{}
	for _, p := range page.Posts {
		byID[p.ID] = p
	}
	assert.Equal(t, 0.0, byID[draft.ID].AvgRating)
	assert.Equal(t, 0, byID[draft.ID].RatingCount)
	assert.Equal(t, 4.3, byID[published.ID].AvgRating)
	assert.Equal(t, 3, byID[published.ID].RatingCount)
}

func TestGetPostDetail(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	author := testutil.CreateTestUser(t, st, "Writer", "writer@example.com", models.RoleAdmin)
	reader := testutil.CreateTestUser(t, st, "Reader", "reader@example.com", models.RoleUser)
	category := testutil.CreateTestCategory(t, st, "Food")

	post, err := st.CreatePost(ctx, store.NewPost{
		CreatePostRequest: models.CreatePostRequest{
			Title:            "Crème Brûlée",
			Content:          "Burnt cream.",
			CategoryID:       category.ID,
			Status:           models.PostStatusPublished,
			AdditionalImages: []string{"http://img/1.png", "http://img/2.png"},
		},
		AuthorID: author.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "creme-brulee", post.Slug)

	testutil.CreateTestComment(t, st, post.ID, reader.ID, "ignored", "Looks great")
	guest := testutil.CreateTestComment(t, st, post.ID, "", "", "Tried it")
	hidden := testutil.CreateTestComment(t, st, post.ID, "", "Spammer", "Buy now")
	require.NoError(t, st.UpdateCommentStatus(ctx, hidden.ID, models.CommentStatusRejected))

	_, err = st.RatePost(ctx, post.ID, store.Rater{UserID: reader.ID}, 4)
	require.NoError(t, err)
	_, err = st.RatePost(ctx, post.ID, store.Rater{GuestIP: "guest-hash"}, 5)
	require.NoError(t, err)

	detail, err := st.GetPostDetail(ctx, "creme-brulee")
	require.NoError(t, err)

	assert.Equal(t, post.ID, detail.ID)
	assert.Equal(t, 1, detail.ViewCount)
	assert.Equal(t, 4.5, detail.AverageRating)
	assert.Equal(t, 2, detail.TotalRatings)
	require.NotNil(t, detail.CategoryName)
	assert.Equal(t, "Food", *detail.CategoryName)
	require.NotNil(t, detail.AuthorName)
	assert.Equal(t, "Writer", *detail.AuthorName)
	assert.Equal(t, []string{"http://img/1.png", "http://img/2.png"}, detail.AdditionalImages)

	require.Len(t, detail.Comments, 2)
	assert.Equal(t, guest.ID, detail.Comments[0].ID, "newest comment first")
	assert.Equal(t, "Anonymous", detail.Comments[0].UserName)
	assert.Equal(t, "Reader", detail.Comments[1].UserName)

	again, err := st.GetPostDetail(ctx, "creme-brulee")
	require.NoError(t, err)
	assert.Equal(t, 2, again.ViewCount)

	_, err = st.GetPostDetail(ctx, "no-such-post")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetPostDetailDraftBySlug(t *testing.T) {
	st := testutil.SetupTestStore(t)
	draft := testutil.CreateTestPost(t, st, "", "", "Secret Plans", models.PostStatusDraft)

	detail, err := st.GetPostDetail(context.Background(), draft.Slug)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusDraft, detail.Status)
	assert.Empty(t, detail.AdditionalImages)
	assert.NotNil(t, detail.AdditionalImages)
}

func TestGetPostByID(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)
	post := testutil.CreateTestPost(t, st, "", "", "Admin View", models.PostStatusDraft)

	detail, err := st.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, detail.Title)
	assert.Equal(t, 0, detail.ViewCount, "admin view does not count")
	assert.Nil(t, detail.Comments)

	_, err = st.GetPostByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	t.Run("defaults to draft", func(t *testing.T) {
		post, err := st.CreatePost(ctx, store.NewPost{
			CreatePostRequest: models.CreatePostRequest{Title: "Defaults", Content: "x"},
		})
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, post.Status)
		assert.Equal(t, "defaults", post.Slug)
		assert.Nil(t, post.CategoryID)
		assert.Nil(t, post.FeaturedImage)
	})

	t.Run("slug collision gets a suffix", func(t *testing.T) {
		first := testutil.CreateTestPost(t, st, "", "", "Same Title", models.PostStatusPublished)
		second := testutil.CreateTestPost(t, st, "", "", "Same Title", models.PostStatusPublished)

		assert.Equal(t, "same-title", first.Slug)
		assert.NotEqual(t, first.Slug, second.Slug)
		assert.True(t, strings.HasPrefix(second.Slug, "same-title-"))
	})

	t.Run("title without letters falls back", func(t *testing.T) {
		post := testutil.CreateTestPost(t, st, "", "", "!!!", models.PostStatusDraft)
		assert.Equal(t, "post", post.Slug)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := st.CreatePost(ctx, store.NewPost{
			CreatePostRequest: models.CreatePostRequest{Title: "Orphan", Content: "x", CategoryID: "nope"},
		})
		assert.ErrorIs(t, err, store.ErrUnknownCategory)

		exists, err := st.SlugExists(ctx, "orphan", "")
		require.NoError(t, err)
		assert.False(t, exists, "failed create must not leave a row behind")
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	post, err := st.CreatePost(ctx, store.NewPost{
		CreatePostRequest: models.CreatePostRequest{
			Title:            "Original Title",
			Content:          "Original content",
			MetaTitle:        "Meta",
			AdditionalImages: []string{"http://img/a.png"},
		},
	})
	require.NoError(t, err)
	other := testutil.CreateTestPost(t, st, "", "", "Taken Title", models.PostStatusDraft)

	t.Run("empty fields keep values", func(t *testing.T) {
		updated, err := st.UpdatePost(ctx, post.ID, store.PostUpdate{Status: models.PostStatusPublished})
		require.NoError(t, err)
		assert.Equal(t, "Original Title", updated.Title)
		assert.Equal(t, "original-title", updated.Slug)
		assert.Equal(t, "Original content", updated.Content)
		require.NotNil(t, updated.MetaTitle)
		assert.Equal(t, "Meta", *updated.MetaTitle)
		assert.Equal(t, models.PostStatusPublished, updated.Status)
		assert.True(t, updated.UpdatedAt.After(post.UpdatedAt))

		detail, err := st.GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"http://img/a.png"}, detail.AdditionalImages, "nil images leave images alone")
	})

	t.Run("same title keeps slug", func(t *testing.T) {
		updated, err := st.UpdatePost(ctx, post.ID, store.PostUpdate{Title: "Original Title"})
		require.NoError(t, err)
		assert.Equal(t, "original-title", updated.Slug)
	})

	t.Run("new title regenerates slug", func(t *testing.T) {
		updated, err := st.UpdatePost(ctx, post.ID, store.PostUpdate{Title: "Fresh Title"})
		require.NoError(t, err)
		assert.Equal(t, "fresh-title", updated.Slug)
	})

	t.Run("colliding title gets a suffix", func(t *testing.T) {
		updated, err := st.UpdatePost(ctx, post.ID, store.PostUpdate{Title: other.Title})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(updated.Slug, "taken-title-"))
	})

	t.Run("images replaced", func(t *testing.T) {
		_, err := st.UpdatePost(ctx, post.ID, store.PostUpdate{AdditionalImages: []string{"http://img/b.png", "http://img/c.png"}})
		require.NoError(t, err)
		detail, err := st.GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"http://img/b.png", "http://img/c.png"}, detail.AdditionalImages)

		_, err = st.UpdatePost(ctx, post.ID, store.PostUpdate{AdditionalImages: []string{}})
		require.NoError(t, err)
		detail, err = st.GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.AdditionalImages)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := st.UpdatePost(ctx, "missing", store.PostUpdate{Title: "x"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)
	post := testutil.CreateTestPost(t, st, "", "", "Doomed", models.PostStatusPublished)
	testutil.CreateTestComment(t, st, post.ID, "", "Guest", "bye")

	require.NoError(t, st.DeletePost(ctx, post.ID))

	all, err := st.ListAllComments(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "comments cascade with the post")

	assert.ErrorIs(t, st.DeletePost(ctx, post.ID), store.ErrNotFound)
}

func TestListSitemapEntries(t *testing.T) {
	st := testutil.SetupTestStore(t)
	testutil.CreateTestPost(t, st, "", "", "Public One", models.PostStatusPublished)
	testutil.CreateTestPost(t, st, "", "", "Hidden", models.PostStatusDraft)

	entries, err := st.ListSitemapEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "public-one", entries[0].Slug)
}
