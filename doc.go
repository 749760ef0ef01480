// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Daily Updates Hub API server.

Daily Updates Hub is a blog backend: published posts with categories,
guest and member comments, star ratings, a contact form, visit counters
and an admin dashboard.

# Starting the Server

Configuration comes from CLI flags, then the environment, then a .env
file in the working directory:

	JWT_SECRET=... IP_HASH_SALT=... DATABASE_URL=blog.db go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..." -p 5000

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Secret for signing auth tokens
  - IP_HASH_SALT (--ip-salt): Secret for hashing guest IPs

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - CLIENT_URL (--client-url): Frontend origin allowed by CORS
  - SITE_URL (--site-url): Public site used in the sitemap
  - PUBLIC_URL (--public-url): Base URL of uploaded images
  - UPLOAD_DIR (--upload-dir): Where uploads are stored (default: ./blogimages)
  - MAX_UPLOAD_SIZE (--max-upload): Per-file limit (default: 5MB)
  - TOKEN_TTL (--token-ttl): Token lifetime (default: 720h)
  - RATE_LIMIT (--rate-limit): Requests per 15 minutes per IP on /api
  - TRUST_PROXY (--trust-proxy): Take client IPs from X-Forwarded-For / X-Real-IP

# Architecture

  - handlers: HTTP request handlers
  - router: Route definitions on chi
  - middleware: Auth, CORS, rate limiting, logging, JSON helpers, validation
  - store: Queries and transactions over sqlx
  - storage: Image uploads on local disk
  - models: Request, response and domain types
  - auth: Passwords, tokens and IDs
  - slug: URL slugs
  - db: Connections and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
