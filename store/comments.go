// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/updateshub/models"
)

// AnonymousName is shown for guest comments without a name
const AnonymousName = "Anonymous"

const commentColumns = `cm.id, cm.post_id, cm.user_id, cm.guest_name, cm.comment, cm.status, cm.created_at,
	COALESCE(u.name, cm.guest_name, 'Anonymous') AS user_name`

// NewComment is a comment from a signed-in user (UserID set) or a guest.
// GuestName is ignored when UserID is set.
type NewComment struct {
	PostID    string
	UserID    string
	GuestName string
	Comment   string
}

// ListApprovedComments returns the visible comments of a post, newest first
func (s *Store) ListApprovedComments(ctx context.Context, postID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := s.selectAll(ctx, s.db, &comments, `
		SELECT `+commentColumns+`
		FROM comments cm
		LEFT JOIN users u ON cm.user_id = u.id
		WHERE cm.post_id = ? AND cm.status = ?
		ORDER BY cm.created_at DESC`, postID, models.CommentStatusApproved); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// ListAllComments returns every comment with the title of its post, for moderation
func (s *Store) ListAllComments(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := s.selectAll(ctx, s.db, &comments, `
		SELECT `+commentColumns+`, p.title AS post_title
		FROM comments cm
		LEFT JOIN users u ON cm.user_id = u.id
		LEFT JOIN posts p ON cm.post_id = p.id
		ORDER BY cm.created_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *Store) getComment(ctx context.Context, id string) (*models.Comment, error) {
	var c models.Comment
	if err := s.get(ctx, s.db, &c, `
		SELECT `+commentColumns+`
		FROM comments cm
		LEFT JOIN users u ON cm.user_id = u.id
		WHERE cm.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &c, nil
}

// CreateComment publishes a comment immediately. Returns ErrNotFound when
// the post does not exist.
func (s *Store) CreateComment(ctx context.Context, in NewComment) (*models.Comment, error) {
	var n int
	if err := s.get(ctx, s.db, &n, `SELECT COUNT(*) FROM posts WHERE id = ?`, in.PostID); err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	var guestName *string
	if in.UserID == "" {
		name := strings.TrimSpace(in.GuestName)
		if name == "" {
			name = AnonymousName
		}
		guestName = &name
	}

	if _, err := s.exec(ctx, s.db, `
		INSERT INTO comments (id, post_id, user_id, guest_name, comment, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, in.PostID, nullable(in.UserID), guestName, in.Comment,
		models.CommentStatusApproved, s.now()); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return s.getComment(ctx, id)
}

func (s *Store) UpdateCommentStatus(ctx context.Context, id, status string) error {
	if err := s.execAffecting(ctx, s.db, `UPDATE comments SET status = ? WHERE id = ?`, status, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	if err := s.execAffecting(ctx, s.db, `DELETE FROM comments WHERE id = ?`, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
