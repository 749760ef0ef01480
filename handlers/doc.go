// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the blog API.

# Handler Types

Each handler is a struct holding the store and, where needed, the config:

  - AuthHandler: Registration, login and profile
  - PostHandler: Public listing and reading, admin post management
  - RatingHandler: Star ratings from users and guests
  - CategoryHandler: Category listing and management
  - CommentHandler: Guest and user comments, moderation
  - ContactHandler: Contact form submissions
  - StatsHandler: Home page visits and dashboard counters
  - UploadHandler: Image uploads through an ImageSaver
  - SitemapHandler: XML sitemap of published posts

Handlers are created via constructor functions:

	postHandler := handlers.NewPostHandler(st, cfg)

# Identity

Handlers read the signed-in user with middleware.UserFromContext. Guests
are anonymous; where one guest must be told apart from another (ratings
and visits) they are keyed by a salted hash of their IP.

# Errors

Failures are reported as {"error": "...", "message": "..."} with a
matching status code. Store errors map to 404 (not found) and 409
(duplicate); anything unexpected is logged and answered with
500 "Server Error".
*/
package handlers
