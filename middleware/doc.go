// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

All middleware has the func(http.Handler) http.Handler shape used by chi.

# Request Logging

	r.Use(middleware.WithLogging)

Logs one line per request with method, path, status, bytes, client IP,
chi request ID and duration_ms.

# CORS and Security Headers

	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(cfg.ClientURL))

CORS reflects allowed origins (no Origin, localhost, *.vercel.app, the
configured client URL, or anything when no client URL is configured) with
credentials. Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization. Preflights from other origins get 403.

# Rate Limiting

	r.Use(middleware.RateLimit(100, 15*time.Minute))

One token bucket per client IP; exhausted buckets get 429 with Retry-After.

# Authentication

	r.Use(middleware.Authenticate(st, cfg.JWTSecret))
	r.With(middleware.RequireAdmin).Delete("/posts/{id}", h.DeletePost)

Authenticate turns an optional bearer token into the current user:

	user := middleware.UserFromContext(r.Context()) // nil for guests

RequireAuth answers 401 for guests; RequireAdmin also answers 403 for
non-admin users.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse and validate JSON request bodies:

	var req models.ContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

# Client IP Extraction

Get the client IP from the connection's remote address:

	ip := middleware.GetClientIP(r)

Used for rate limiting, guest rating identity and visitor counting.
Forwarding headers are only honoured when the router runs with
TrustProxy, which installs chi's RealIP ahead of everything else.
*/
package middleware
