// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/updateshub/models"
)

func (s *Store) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	messages := []models.ContactMessage{}
	if err := s.selectAll(ctx, s.db, &messages,
		`SELECT id, name, email, message, created_at FROM contact_messages ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (s *Store) CreateMessage(ctx context.Context, name, email, message string) (*models.ContactMessage, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{
		ID:        id,
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: s.now(),
	}
	if _, err := s.exec(ctx, s.db,
		`INSERT INTO contact_messages (id, name, email, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	return msg, nil
}
