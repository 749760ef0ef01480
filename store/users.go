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

// CreateUser stores an account. passwordHash must already be bcrypt
// hashed. Emails are stored lower-cased; ErrDuplicate means the email is
// registered.
func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash, role string) (*models.User, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        id,
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  passwordHash,
		Role:      role,
		CreatedAt: s.now(),
	}
	if _, err := s.exec(ctx, s.db,
		`INSERT INTO users (id, name, email, password, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `email = ?`, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, `id = ?`, id)
}

func (s *Store) getUser(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	var u models.User
	if err := s.get(ctx, s.db, &u,
		`SELECT id, name, email, password, role, created_at FROM users WHERE `+where, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.get(ctx, s.db, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
