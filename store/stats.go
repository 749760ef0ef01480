// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/updateshub/models"
)

// HomeVisitsKey is the site_stats counter bumped on every home page visit
const HomeVisitsKey = "home_visits"

// RecordVisit counts a home page visit and remembers the visitor
func (s *Store) RecordVisit(ctx context.Context, visitorHash string) error {
	now := s.now()
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.exec(ctx, tx, `
			INSERT INTO site_stats (stat_key, stat_value) VALUES (?, 1)
			ON CONFLICT (stat_key) DO UPDATE SET stat_value = site_stats.stat_value + 1`,
			HomeVisitsKey); err != nil {
			return fmt.Errorf("failed to count visit: %w", err)
		}
		if _, err := s.exec(ctx, tx, `
			INSERT INTO unique_visitors (visitor_hash, first_seen, last_seen, visit_count)
			VALUES (?, ?, ?, 1)
			ON CONFLICT (visitor_hash) DO UPDATE
			SET last_seen = excluded.last_seen, visit_count = unique_visitors.visit_count + 1`,
			visitorHash, now, now); err != nil {
			return fmt.Errorf("failed to record visitor: %w", err)
		}
		return nil
	})
}

// AdminStats gathers the dashboard counters concurrently
func (s *Store) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var (
		stats   models.AdminStats
		ratings RatingSummary
	)

	counters := []struct {
		dest  *int64
		query string
		args  []interface{}
	}{
		{&stats.TotalPosts, `SELECT COUNT(*) FROM posts`, nil},
		{&stats.TotalBlogViews, `SELECT COALESCE(SUM(view_count), 0) FROM posts`, nil},
		{&stats.TotalComments, `SELECT COUNT(*) FROM comments`, nil},
		{&stats.TotalSiteVisits, `SELECT COALESCE(MAX(stat_value), 0) FROM site_stats WHERE stat_key = ?`, []interface{}{HomeVisitsKey}},
		{&stats.UniqueVisitors, `SELECT COUNT(*) FROM unique_visitors`, nil},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range counters {
		g.Go(func() error {
			return s.get(gctx, s.db, c.dest, c.query, c.args...)
		})
	}
	g.Go(func() error {
		return s.get(gctx, s.db, &ratings,
			`SELECT COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS total_ratings FROM ratings`)
	})
	if err := g.Wait(); err != nil {
		return models.AdminStats{}, fmt.Errorf("failed to gather stats: %w", err)
	}

	stats.RepeatViews = max(stats.TotalSiteVisits-stats.UniqueVisitors, 0)
	stats.AverageRating = round1(ratings.AverageRating)
	stats.TotalRatings = int64(ratings.TotalRatings)
	return stats, nil
}
