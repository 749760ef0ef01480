// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/updateshub/models"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.selectAll(ctx, s.db, &categories,
		`SELECT id, name, slug, created_at FROM categories ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory stores a category whose slug is derived from name, suffixed
// like post slugs when taken. ErrDuplicate means a concurrent insert won.
func (s *Store) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}

	categorySlug, err := s.uniqueSlug(ctx, s.db, categorySlugs, name, "")
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:        id,
		Name:      name,
		Slug:      categorySlug,
		CreatedAt: s.now(),
	}

	if _, err := s.exec(ctx, s.db,
		`INSERT INTO categories (id, name, slug, created_at) VALUES (?, ?, ?, ?)`,
		category.ID, category.Name, category.Slug, category.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes a category; its posts become uncategorised
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.execAffecting(ctx, s.db, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
