// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the blog API onto a chi router.

# Route Registration

NewRouter builds every handler from a store and the parsed configuration:

	h := router.NewRouter(st, cfg)

Every response passes through request IDs, panic recovery, access
logging, security headers and CORS. Routes under /api are additionally
rate limited per client IP and resolve an optional bearer token.

# Endpoints

Public:

	GET  /health                      - Liveness
	GET  /sitemap.xml                 - Sitemap of published posts
	GET  /blogimages/*                - Uploaded images
	POST /api/auth/register           - Create account (first one is admin)
	POST /api/auth/login              - Exchange credentials for a token
	GET  /api/posts                   - Published posts (page, limit, search, category)
	GET  /api/posts/{slug}            - Post with comments; counts a view
	POST /api/posts/{id}/rate         - Rate 1-5, once per user or guest
	GET  /api/categories              - All categories
	POST /api/comments                - Comment as a user or guest
	GET  /api/comments/post/{postId}  - Approved comments of a post
	POST /api/contact                 - Contact form
	POST /api/stats/visit             - Home page visit

Signed in:

	GET /api/auth/profile

Admin:

	GET    /api/posts/admin         - All posts with rating aggregates
	GET    /api/posts/admin/{id}    - Any post by id
	POST   /api/posts               - Create post
	PUT    /api/posts/{id}          - Update post
	DELETE /api/posts/{id}          - Delete post
	POST   /api/categories          - Create category
	DELETE /api/categories/{id}     - Delete category
	GET    /api/comments            - All comments
	PUT    /api/comments/{id}       - Moderate comment
	DELETE /api/comments/{id}       - Delete comment
	GET    /api/contact             - Contact messages
	GET    /api/stats               - Dashboard counters
	POST   /api/upload              - Upload one image ("image")
	POST   /api/upload/multiple     - Upload up to 10 images ("images")
*/
package router

