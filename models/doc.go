// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, validated with go-playground/validator
struct tags:

  - RegisterRequest, LoginRequest
  - CreatePostRequest, UpdatePostRequest
  - CreateCategoryRequest
  - CreateCommentRequest, UpdateCommentStatusRequest
  - RateRequest
  - ContactRequest

# Response Types

  - AuthResponse: id, name, email, role, token
  - CreatePostResponse, CreatedResponse, MessageResponse
  - RatingResponse: averageRating, totalRatings
  - UploadResponse, UploadMultipleResponse
  - PostPage, AdminPostPage: a page of posts with total and page count
  - ErrorResponse: error, message

# Domain Types

Rows as stored, tagged for both JSON and sqlx:

  - User: account; the password hash is never serialised
  - Category
  - Post, PostSummary, AdminPost, PostDetail
  - Comment: user_name is the member name, the guest name or "Anonymous"
  - ContactMessage
  - AdminStats
  - SitemapEntry

# Constants

Roles:

	RoleAdmin = "admin"
	RoleUser  = "user"

Post status:

	PostStatusDraft     = "draft"
	PostStatusPublished = "published"

Comment status:

	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusRejected = "rejected"
*/
package models
