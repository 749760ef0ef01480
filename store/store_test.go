// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/store"
	"github.com/danielhkuo/updateshub/testutil"
)

func TestCategories(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	travel := testutil.CreateTestCategory(t, st, "Travel")
	testutil.CreateTestCategory(t, st, "Art & Design")
	assert.Equal(t, "travel", travel.Slug)

	list, err := st.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Art & Design", list[0].Name, "sorted by name")
	assert.Equal(t, "art-and-design", list[0].Slug)

	again, err := st.CreateCategory(ctx, "TRAVEL")
	require.NoError(t, err, "a taken slug is suffixed, not rejected")
	assert.Regexp(t, `^travel-\d+$`, again.Slug)

	post := testutil.CreateTestPost(t, st, "", travel.ID, "Trip", models.PostStatusPublished)
	require.NoError(t, st.DeleteCategory(ctx, travel.ID))
	assert.ErrorIs(t, st.DeleteCategory(ctx, travel.ID), store.ErrNotFound)

	detail, err := st.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.CategoryID, "posts survive category deletion")
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	user := testutil.CreateTestUser(t, st, "Member", "member@example.com", models.RoleUser)
	post := testutil.CreateTestPost(t, st, "", "", "Discussed", models.PostStatusPublished)

	t.Run("user comment ignores guest name", func(t *testing.T) {
		c := testutil.CreateTestComment(t, st, post.ID, user.ID, "Pretender", "Hello")
		assert.Equal(t, "Member", c.UserName)
		assert.Nil(t, c.GuestName)
		assert.Equal(t, models.CommentStatusApproved, c.Status)
	})

	t.Run("guest name defaults to Anonymous", func(t *testing.T) {
		c := testutil.CreateTestComment(t, st, post.ID, "", "   ", "Hi")
		require.NotNil(t, c.GuestName)
		assert.Equal(t, store.AnonymousName, *c.GuestName)
		assert.Equal(t, store.AnonymousName, c.UserName)
	})

	t.Run("named guest", func(t *testing.T) {
		c := testutil.CreateTestComment(t, st, post.ID, "", "Alice", "Hey")
		assert.Equal(t, "Alice", c.UserName)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := st.CreateComment(ctx, store.NewComment{PostID: "missing", Comment: "x"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("moderation", func(t *testing.T) {
		c := testutil.CreateTestComment(t, st, post.ID, "", "Spam", "spam")
		require.NoError(t, st.UpdateCommentStatus(ctx, c.ID, models.CommentStatusRejected))

		approved, err := st.ListApprovedComments(ctx, post.ID)
		require.NoError(t, err)
		for _, a := range approved {
			assert.NotEqual(t, c.ID, a.ID)
		}

		all, err := st.ListAllComments(ctx)
		require.NoError(t, err)
		assert.Len(t, all, len(approved)+1)
		require.NotNil(t, all[0].PostTitle)
		assert.Equal(t, "Discussed", *all[0].PostTitle)

		assert.ErrorIs(t, st.UpdateCommentStatus(ctx, "missing", models.CommentStatusApproved), store.ErrNotFound)

		require.NoError(t, st.DeleteComment(ctx, c.ID))
		assert.ErrorIs(t, st.DeleteComment(ctx, c.ID), store.ErrNotFound)
	})
}

func TestRatePost(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	user := testutil.CreateTestUser(t, st, "Rater", "rater@example.com", models.RoleUser)
	post := testutil.CreateTestPost(t, st, "", "", "Rated", models.PostStatusPublished)

	summary, err := st.RatePost(ctx, post.ID, store.Rater{UserID: user.ID}, 2)
	require.NoError(t, err)
	assert.Equal(t, store.RatingSummary{AverageRating: 2, TotalRatings: 1}, summary)

	// Re-rating replaces the previous score
	summary, err = st.RatePost(ctx, post.ID, store.Rater{UserID: user.ID}, 5)
	require.NoError(t, err)
	assert.Equal(t, store.RatingSummary{AverageRating: 5, TotalRatings: 1}, summary)

	summary, err = st.RatePost(ctx, post.ID, store.Rater{GuestIP: "hash-1"}, 4)
	require.NoError(t, err)
	assert.Equal(t, store.RatingSummary{AverageRating: 4.5, TotalRatings: 2}, summary)

	summary, err = st.RatePost(ctx, post.ID, store.Rater{GuestIP: "hash-1"}, 1)
	require.NoError(t, err)
	assert.Equal(t, store.RatingSummary{AverageRating: 3, TotalRatings: 2}, summary)

	_, err = st.RatePost(ctx, "missing", store.Rater{GuestIP: "hash-1"}, 3)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.RatePost(ctx, post.ID, store.Rater{}, 3)
	assert.Error(t, err)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	n, err := st.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	created, err := st.CreateUser(ctx, "Dana", " Dana@Example.com ", "hash", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", created.Email)

	_, err = st.CreateUser(ctx, "Other", "DANA@example.com", "hash", models.RoleUser)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	byEmail, err := st.GetUserByEmail(ctx, "DANA@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.Password)

	byID, err := st.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, byID.IsAdmin())

	_, err = st.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	n, err = st.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestContactMessages(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	first, err := st.CreateMessage(ctx, "Ann", "ann@example.com", "first")
	require.NoError(t, err)
	second, err := st.CreateMessage(ctx, "Bob", "bob@example.com", "second")
	require.NoError(t, err)

	messages, err := st.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, second.ID, messages[0].ID)
	assert.Equal(t, first.ID, messages[1].ID)
}

func TestAdminStats(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	empty, err := st.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AdminStats{}, empty)

	post := testutil.CreateTestPost(t, st, "", "", "Popular", models.PostStatusPublished)
	testutil.CreateTestPost(t, st, "", "", "Quiet", models.PostStatusDraft)
	testutil.CreateTestComment(t, st, post.ID, "", "", "nice")

	for range 3 {
		_, err := st.GetPostDetail(ctx, post.Slug)
		require.NoError(t, err)
	}
	_, err = st.RatePost(ctx, post.ID, store.Rater{GuestIP: "x"}, 3)
	require.NoError(t, err)
	_, err = st.RatePost(ctx, post.ID, store.Rater{GuestIP: "y"}, 4)
	require.NoError(t, err)

	require.NoError(t, st.RecordVisit(ctx, "visitor-a"))
	require.NoError(t, st.RecordVisit(ctx, "visitor-a"))
	require.NoError(t, st.RecordVisit(ctx, "visitor-b"))

	stats, err := st.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AdminStats{
		TotalPosts:      2,
		TotalBlogViews:  3,
		TotalComments:   1,
		TotalSiteVisits: 3,
		UniqueVisitors:  2,
		RepeatViews:     1,
		AverageRating:   3.5,
		TotalRatings:    2,
	}, stats)
}
