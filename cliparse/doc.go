// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnvFile seeds the environment from a .env file, then ParseFlags
returns a Config struct with all settings:

	cliparse.LoadEnvFile(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type (sqlite or postgres)
	--client-url    Frontend origin allowed by CORS
	--site-url      Public site URL used in the sitemap
	--public-url    Base URL for uploaded images
	--upload-dir    Directory for uploaded images
	--max-upload    Maximum size per uploaded file (e.g. 5MB)
	--token-ttl     Auth token lifetime (e.g. 720h)
	--rate-limit    Requests per 15 minutes per IP on /api (0 disables)
	--trust-proxy   Take the client IP from forwarding headers
	--jwt-secret    Token signing secret
	--ip-salt       Salt for hashing client IPs

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	CLIENT_URL      → --client-url
	SITE_URL        → --site-url
	PUBLIC_URL      → --public-url
	UPLOAD_DIR      → --upload-dir
	MAX_UPLOAD_SIZE → --max-upload
	TOKEN_TTL       → --token-ttl
	RATE_LIMIT      → --rate-limit
	TRUST_PROXY     → --trust-proxy
	JWT_SECRET      → --jwt-secret
	IP_HASH_SALT    → --ip-salt

CLI flags take precedence over environment variables, which take
precedence over the .env file.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - IP_HASH_SALT must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - MAX_UPLOAD_SIZE, TOKEN_TTL, RATE_LIMIT and TRUST_PROXY must parse
*/
package cliparse
