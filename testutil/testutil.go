// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/updateshub/auth"
	"github.com/danielhkuo/updateshub/cliparse"
	"github.com/danielhkuo/updateshub/db"
	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/store"
)

// TestDBURL is an in-memory SQLite database private to each connection pool
const TestDBURL = "file::memory:"

// TestPassword is the plain-text password of every fixture user
const TestPassword = "password123"

// SetupTestDB creates a fresh in-memory database with the full schema.
// It is closed when the test finishes.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.DriverSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore is SetupTestDB wrapped in a store
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          5000,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.DriverSQLite,
		JWTSecret:     "test-jwt-secret",
		TokenTTL:      time.Hour,
		IPHashSalt:    "test-ip-salt",
		SiteURL:       "https://blog.example.com",
		PublicURL:     "http://localhost:5000",
		MaxUploadSize: 5_000_000,
		RateLimit:     1000,
	}
}

// CreateTestUser stores a user whose password is TestPassword.
// role should be models.RoleAdmin or models.RoleUser.
func CreateTestUser(t *testing.T, st *store.Store, name, email, role string) *models.User {
	t.Helper()

	// Minimum cost keeps fixtures fast; CheckPassword accepts any cost.
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user, err := st.CreateUser(context.Background(), name, email, string(hash), role)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory stores a category with the given name
func CreateTestCategory(t *testing.T, st *store.Store, name string) *models.Category {
	t.Helper()

	category, err := st.CreateCategory(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

// CreateTestPost stores a post. authorID and categoryID may be empty;
// status should be "draft" or "published".
func CreateTestPost(t *testing.T, st *store.Store, authorID, categoryID, title, status string) *models.Post {
	t.Helper()

	post, err := st.CreatePost(context.Background(), store.NewPost{
		CreatePostRequest: models.CreatePostRequest{
			Title:      title,
			Content:    "Content of " + title,
			CategoryID: categoryID,
			Status:     status,
		},
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return post
}

// CreateTestComment stores an approved comment. Leave userID empty for a
// guest comment.
func CreateTestComment(t *testing.T, st *store.Store, postID, userID, guestName, text string) *models.Comment {
	t.Helper()

	comment, err := st.CreateComment(context.Background(), store.NewComment{
		PostID:    postID,
		UserID:    userID,
		GuestName: guestName,
		Comment:   text,
	})
	if err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
	return comment
}

// AuthHeader returns an Authorization header carrying a token for user
func AuthHeader(t *testing.T, cfg cliparse.Config, user *models.User) map[string]string {
	t.Helper()

	token, err := auth.IssueToken(user.ID, user.Role, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
