// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open selects the driver from the configured database type:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

"postgres" uses lib/pq. "sqlite" (the default) uses modernc.org/sqlite
with foreign keys enabled and a single open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is shared by both drivers.

# Tables

  - users: accounts with bcrypt password and role (admin, user)
  - categories: name and unique slug
  - posts: body, metadata, status (draft, published), view counter
  - post_images: additional images per post, ordered by position
  - comments: user or guest comments with moderation status
  - ratings: 1-5 stars, one per user or guest IP hash per post
  - contact_messages: contact form submissions
  - site_stats: named counters (home page visits)
  - unique_visitors: one row per hashed visitor IP

# Relationships

	categories 1──* posts   (ON DELETE SET NULL)
	users      1──* posts   (ON DELETE SET NULL)
	posts      1──* post_images, comments, ratings (ON DELETE CASCADE)
	users      1──* comments (ON DELETE SET NULL)

# Indexes

Performance indexes on:

  - posts.slug, categories.slug, users.email (unique)
  - posts.status, posts.category_id, posts.created_at
  - comments.post_id, comments.status
  - ratings.post_id
  - post_images.post_id
*/
package db
