// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential, token and identifier utilities.

# Passwords

Passwords are stored as bcrypt hashes at the default cost:

	hashed, err := auth.HashPassword(plain)
	err = auth.CheckPassword(hashed, plain) // ErrInvalidCredentials on mismatch

# Bearer Tokens

Tokens are HS256-signed JWTs carrying the user ID and role:

	token, err := auth.IssueToken(user.ID, user.Role, secret, ttl)
	claims, err := auth.ParseToken(token, secret)

ParseToken accepts only HS256, requires the "updateshub" issuer and an
expiry, and reports every failure as ErrInvalidToken.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Guest ratings and unique visitors are keyed by a salted hash, never by
the raw address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
