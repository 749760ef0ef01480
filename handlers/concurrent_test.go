// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/testutil"
)

// TestConcurrentPostViews verifies that simultaneous reads of one post
// each count exactly one view
func TestConcurrentPostViews(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewPostHandler(st, testutil.GetTestConfig())
	post := testutil.CreateTestPost(t, st, "", "", "Popular", models.PostStatusPublished)

	numReaders := 20
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numReaders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest("GET", "/api/posts/"+post.Slug, nil)
			req.SetPathValue("slug", post.Slug)
			w := httptest.NewRecorder()
			handler.GetPostBySlug(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(successCount.Load()) != numReaders {
		t.Errorf("Expected %d successful reads, got %d", numReaders, successCount.Load())
	}

	got, err := st.GetPostByID(t.Context(), post.ID)
	if err != nil {
		t.Fatalf("Failed to reload post: %v", err)
	}
	if got.ViewCount != numReaders {
		t.Errorf("Expected view_count %d, got %d", numReaders, got.ViewCount)
	}
}

// TestConcurrentGuestRatings verifies that racing ratings keep one row per
// rater, whether the raters are distinct or the same guest
func TestConcurrentGuestRatings(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewRatingHandler(st, testutil.GetTestConfig())
	post := testutil.CreateTestPost(t, st, "", "", "Contested", models.PostStatusPublished)

	rateFrom := func(ip string, rating int) int {
		req := testutil.MakeRequest("POST", "/api/posts/"+post.ID+"/rate",
			models.RateRequest{Rating: float64(rating)}, nil)
		req.RemoteAddr = ip + ":40000"
		req.SetPathValue("id", post.ID)
		w := httptest.NewRecorder()
		handler.RatePost(w, req)
		return w.Code
	}

	numGuests := 10
	var failures atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numGuests; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			if rateFrom(fmt.Sprintf("198.51.100.%d", idx+1), idx%5+1) != http.StatusOK {
				failures.Add(1)
			}
		}(i)
		// Same guest over and over
		go func(idx int) {
			defer wg.Done()
			if rateFrom("203.0.113.7", idx%5+1) != http.StatusOK {
				failures.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("Expected every rating to succeed, %d failed", failures.Load())
	}

	detail, err := st.GetPostByID(t.Context(), post.ID)
	if err != nil {
		t.Fatalf("Failed to reload post: %v", err)
	}
	if detail.TotalRatings != numGuests+1 {
		t.Errorf("Expected %d ratings, got %d", numGuests+1, detail.TotalRatings)
	}
}
