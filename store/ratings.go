// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
)

// Rater identifies who is rating: a user, or a guest by hashed IP
type Rater struct {
	UserID  string
	GuestIP string
}

type RatingSummary struct {
	AverageRating float64 `db:"average_rating"`
	TotalRatings  int     `db:"total_ratings"`
}

var errNoRater = errors.New("rater has neither user nor guest identity")

// RatePost records or replaces the rater's score for a post and returns
// the post's new average (one decimal) and rating count.
func (s *Store) RatePost(ctx context.Context, postID string, rater Rater, value int) (RatingSummary, error) {
	var n int
	if err := s.get(ctx, s.db, &n, `SELECT COUNT(*) FROM posts WHERE id = ?`, postID); err != nil {
		return RatingSummary{}, fmt.Errorf("failed to check post: %w", err)
	}
	if n == 0 {
		return RatingSummary{}, ErrNotFound
	}

	id, err := newID()
	if err != nil {
		return RatingSummary{}, err
	}
	now := s.now()

	switch {
	case rater.UserID != "":
		_, err = s.exec(ctx, s.db, `
			INSERT INTO ratings (id, post_id, user_id, rating, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (post_id, user_id) DO UPDATE SET rating = excluded.rating, updated_at = excluded.updated_at`,
			id, postID, rater.UserID, value, now, now)
	case rater.GuestIP != "":
		_, err = s.exec(ctx, s.db, `
			INSERT INTO ratings (id, post_id, guest_ip, rating, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (post_id, guest_ip) DO UPDATE SET rating = excluded.rating, updated_at = excluded.updated_at`,
			id, postID, rater.GuestIP, value, now, now)
	default:
		return RatingSummary{}, errNoRater
	}
	if err != nil {
		return RatingSummary{}, fmt.Errorf("failed to save rating: %w", err)
	}

	var summary RatingSummary
	if err := s.get(ctx, s.db, &summary, `
		SELECT COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS total_ratings
		FROM ratings WHERE post_id = ?`, postID); err != nil {
		return RatingSummary{}, fmt.Errorf("failed to summarise ratings: %w", err)
	}
	summary.AverageRating = round1(summary.AverageRating)
	return summary, nil
}
