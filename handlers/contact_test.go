// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/testutil"
)

func TestContact(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewContactHandler(st)

	testCases := []struct {
		name           string
		body           models.ContactRequest
		expectedStatus int
	}{
		{"valid", models.ContactRequest{Name: "Vi", Email: "vi@example.com", Message: "Hello there"}, http.StatusCreated},
		{"bad email", models.ContactRequest{Name: "Vi", Email: "nope", Message: "Hello"}, http.StatusBadRequest},
		{"missing message", models.ContactRequest{Name: "Vi", Email: "vi@example.com"}, http.StatusBadRequest},
		{"missing name", models.ContactRequest{Email: "vi@example.com", Message: "Hello"}, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Submit(w, testutil.MakeRequest("POST", "/api/contact", tc.body, nil))
			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest("GET", "/api/contact", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var messages []models.ContactMessage
	testutil.AssertJSON(t, w, &messages)
	if len(messages) != 1 || messages[0].Message != "Hello there" {
		t.Errorf("Expected the single valid message, got %+v", messages)
	}
}
