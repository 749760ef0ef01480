// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the data access layer for posts, categories, comments,
ratings, contact messages, users and site statistics.

# Usage

	st := store.New(conn)
	page, err := st.ListPublishedPosts(ctx, store.ListParams{Page: 1, Limit: 10})

Every method takes a context and works unchanged on PostgreSQL and SQLite:
queries are written with ? placeholders and rebound by sqlx, and dynamic
filters are built with squirrel.

# Errors

  - ErrNotFound: the addressed row does not exist
  - ErrDuplicate: a unique column (email, slug) is already taken
  - ErrUnknownCategory: a post references a missing category

Other errors are wrapped driver errors.

# Concurrency

ListPublishedPosts and ListAdminPosts fetch the page and the total count
in parallel. GetPostDetail loads the post, then fetches its images and
approved comments and bumps its view counter in parallel. AdminStats runs
each counter as its own query. All of them use errgroup and fail as a
whole when any part fails.

# Slugs

Post slugs come from the title (see package slug). When a slug is taken
the current unix milliseconds are appended. Editing a post only changes
its slug when the title changes.
*/
package store
