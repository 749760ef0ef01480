// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/updateshub/models"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		req     interface{}
		wantErr string
	}{
		{
			name: "valid registration",
			req:  models.RegisterRequest{Name: "Dana", Email: "dana@example.com", Password: "secret1"},
		},
		{
			name:    "missing fields use json names",
			req:     models.RegisterRequest{},
			wantErr: "name is required; email is required; password is required",
		},
		{
			name:    "bad email and short password",
			req:     models.RegisterRequest{Name: "Dana", Email: "nope", Password: "123"},
			wantErr: "email must be a valid email; password must be at least 6 characters",
		},
		{
			name:    "post title too long",
			req:     models.CreatePostRequest{Title: strings.Repeat("a", 256), Content: "x"},
			wantErr: "title must be at most 255 characters",
		},
		{
			name:    "bad post status",
			req:     models.CreatePostRequest{Title: "t", Content: "x", Status: "archived"},
			wantErr: "status must be one of: draft published",
		},
		{
			name:    "too many images",
			req:     models.CreatePostRequest{Title: "t", Content: "x", AdditionalImages: make([]string, 11)},
			wantErr: "additional_images must contain at most 10 items",
		},
		{
			name:    "blank image url",
			req:     models.CreatePostRequest{Title: "t", Content: "x", AdditionalImages: []string{""}},
			wantErr: "additional_images[0] is required",
		},
		{
			name: "empty update is fine",
			req:  models.UpdatePostRequest{},
		},
		{
			name:    "comment status vocabulary",
			req:     models.UpdateCommentStatusRequest{Status: "spam"},
			wantErr: "status must be one of: pending approved rejected",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.req)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}
