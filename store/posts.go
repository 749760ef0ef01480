// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/slug"
)

// Paging limits for list endpoints
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ErrUnknownCategory is returned when a post references a category that
// does not exist.
var ErrUnknownCategory = errors.New("category does not exist")

const postColumns = `p.id, p.title, p.slug, p.content, p.featured_image, p.category_id,
	p.author_id, p.meta_title, p.meta_description, p.status, p.view_count,
	p.created_at, p.updated_at`

const summaryColumns = `p.id, p.title, p.slug, p.featured_image, p.category_id, p.author_id,
	p.created_at, p.view_count, p.meta_description, p.status`

type ListParams struct {
	Page       int
	Limit      int
	Search     string
	CategoryID string
}

// normalize clamps paging to sane bounds
func (p ListParams) normalize() ListParams {
	p.Page, p.Limit = clampPage(p.Page, p.Limit)
	p.Search = strings.TrimSpace(p.Search)
	return p
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func pageCount(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NewPost is a post as submitted by its author
type NewPost struct {
	models.CreatePostRequest
	AuthorID string
}

// PostUpdate carries partial changes; see models.UpdatePostRequest
type PostUpdate models.UpdatePostRequest

// ListPublishedPosts returns one page of published posts, newest first.
// The page and the total count are queried concurrently.
func (s *Store) ListPublishedPosts(ctx context.Context, params ListParams) (models.PostPage, error) {
	params = params.normalize()

	filter := sq.And{sq.Eq{"p.status": models.PostStatusPublished}}
	if params.CategoryID != "" {
		filter = append(filter, sq.Eq{"p.category_id": params.CategoryID})
	}
	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		filter = append(filter, sq.Or{
			sq.Like{"LOWER(p.title)": pattern},
			sq.Like{"LOWER(p.content)": pattern},
			sq.Like{"LOWER(c.name)": pattern},
		})
	}

	base := s.sb.Select().
		From("posts p").
		LeftJoin("categories c ON p.category_id = c.id").
		Where(filter)

	listQuery, listArgs, err := base.
		Columns(summaryColumns, "c.name AS category_name", "u.name AS author_name").
		LeftJoin("users u ON p.author_id = u.id").
		OrderBy("p.created_at DESC").
		Limit(uint64(params.Limit)).
		Offset(uint64((params.Page - 1) * params.Limit)).
		ToSql()
	if err != nil {
		return models.PostPage{}, fmt.Errorf("failed to build post query: %w", err)
	}
	countQuery, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return models.PostPage{}, fmt.Errorf("failed to build count query: %w", err)
	}

	posts := []models.PostSummary{}
	var total int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.selectAll(gctx, s.db, &posts, listQuery, listArgs...)
	})
	g.Go(func() error {
		return s.get(gctx, s.db, &total, countQuery, countArgs...)
	})
	if err := g.Wait(); err != nil {
		return models.PostPage{}, fmt.Errorf("failed to list posts: %w", err)
	}

	return models.PostPage{
		Posts: posts,
		Total: total,
		Page:  params.Page,
		Pages: pageCount(total, params.Limit),
	}, nil
}

// ListAdminPosts returns every post regardless of status together with
// its rating aggregates.
func (s *Store) ListAdminPosts(ctx context.Context, page, limit int) (models.AdminPostPage, error) {
	page, limit = clampPage(page, limit)

	posts := []models.AdminPost{}
	var total int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.selectAll(gctx, s.db, &posts, `
			SELECT `+postColumns+`, c.name AS category_name, u.name AS author_name,
				COALESCE((SELECT AVG(r.rating) FROM ratings r WHERE r.post_id = p.id), 0) AS avg_rating,
				(SELECT COUNT(*) FROM ratings r WHERE r.post_id = p.id) AS rating_count
			FROM posts p
			LEFT JOIN categories c ON p.category_id = c.id
			LEFT JOIN users u ON p.author_id = u.id
			ORDER BY p.created_at DESC
			LIMIT ? OFFSET ?`, limit, (page-1)*limit)
	})
	g.Go(func() error {
		return s.get(gctx, s.db, &total, `SELECT COUNT(*) FROM posts`)
	})
	if err := g.Wait(); err != nil {
		return models.AdminPostPage{}, fmt.Errorf("failed to list admin posts: %w", err)
	}

	for i := range posts {
		posts[i].AvgRating = round1(posts[i].AvgRating)
	}

	return models.AdminPostPage{
		Posts: posts,
		Total: total,
		Page:  page,
		Pages: pageCount(total, limit),
	}, nil
}

const detailQuery = `
	SELECT ` + postColumns + `, c.name AS category_name, u.name AS author_name,
		COALESCE((SELECT AVG(r.rating) FROM ratings r WHERE r.post_id = p.id), 0) AS average_rating,
		(SELECT COUNT(*) FROM ratings r WHERE r.post_id = p.id) AS total_ratings
	FROM posts p
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN users u ON p.author_id = u.id
	WHERE `

// GetPostDetail loads a post by slug with its images and approved
// comments, and counts the read. The images, comments and view counter
// are handled concurrently once the post is known.
func (s *Store) GetPostDetail(ctx context.Context, postSlug string) (*models.PostDetail, error) {
	var post models.PostDetail
	if err := s.get(ctx, s.db, &post, detailQuery+`p.slug = ?`, postSlug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	var (
		images   []string
		comments []models.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		images, err = s.postImages(gctx, s.db, post.ID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.ListApprovedComments(gctx, post.ID)
		return err
	})
	g.Go(func() error {
		_, err := s.exec(gctx, s.db, `UPDATE posts SET view_count = view_count + 1 WHERE id = ?`, post.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load post details: %w", err)
	}

	post.ViewCount++
	post.AverageRating = round1(post.AverageRating)
	post.AdditionalImages = images
	post.Comments = comments
	return &post, nil
}

// GetPostByID loads a post for editing. Comments are not attached and
// the view counter is left alone.
func (s *Store) GetPostByID(ctx context.Context, id string) (*models.PostDetail, error) {
	var post models.PostDetail
	if err := s.get(ctx, s.db, &post, detailQuery+`p.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	images, err := s.postImages(ctx, s.db, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post images: %w", err)
	}
	post.AverageRating = round1(post.AverageRating)
	post.AdditionalImages = images
	return &post, nil
}

func (s *Store) postImages(ctx context.Context, q queryer, postID string) ([]string, error) {
	images := []string{}
	err := s.selectAll(ctx, q, &images,
		`SELECT image_url FROM post_images WHERE post_id = ? ORDER BY position`, postID)
	return images, err
}

func (s *Store) replaceImages(ctx context.Context, tx *sqlx.Tx, postID string, images []string) error {
	if _, err := s.exec(ctx, tx, `DELETE FROM post_images WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("failed to clear post images: %w", err)
	}
	for i, url := range images {
		id, err := newID()
		if err != nil {
			return err
		}
		if _, err := s.exec(ctx, tx,
			`INSERT INTO post_images (id, post_id, image_url, position) VALUES (?, ?, ?, ?)`,
			id, postID, url, i); err != nil {
			return fmt.Errorf("failed to insert post image: %w", err)
		}
	}
	return nil
}

// slugScope is a table with a unique slug column and the word used when a
// title slugifies to nothing.
type slugScope struct {
	table    string
	fallback string
}

var (
	postSlugs     = slugScope{table: "posts", fallback: "post"}
	categorySlugs = slugScope{table: "categories", fallback: "category"}
)

const maxSlugAttempts = 10

// SlugExists reports whether a post other than excludeID uses slug
func (s *Store) SlugExists(ctx context.Context, postSlug, excludeID string) (bool, error) {
	return s.slugExists(ctx, s.db, postSlugs, postSlug, excludeID)
}

func (s *Store) slugExists(ctx context.Context, q queryer, scope slugScope, candidate, excludeID string) (bool, error) {
	var n int
	err := s.get(ctx, q, &n, `SELECT COUNT(*) FROM `+scope.table+` WHERE slug = ? AND id <> ?`, candidate, excludeID)
	return n > 0, err
}

// uniqueSlug derives a slug from title, suffixing the current unix
// milliseconds when another row in scope already holds it. Further
// collisions within the same millisecond add a counter.
func (s *Store) uniqueSlug(ctx context.Context, q queryer, scope slugScope, title, excludeID string) (string, error) {
	base := slug.WithFallback(title, scope.fallback)
	stamped := base + "-" + strconv.FormatInt(s.now().UnixMilli(), 10)

	candidate := base
	for i := 0; i < maxSlugAttempts; i++ {
		exists, err := s.slugExists(ctx, q, scope, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = stamped
		if i > 0 {
			candidate += "-" + strconv.Itoa(i)
		}
	}
	return "", ErrDuplicate
}

func (s *Store) checkCategory(ctx context.Context, q queryer, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	var n int
	if err := s.get(ctx, q, &n, `SELECT COUNT(*) FROM categories WHERE id = ?`, categoryID); err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if n == 0 {
		return ErrUnknownCategory
	}
	return nil
}

// CreatePost inserts a post and its additional images in one transaction.
// Status defaults to draft.
func (s *Store) CreatePost(ctx context.Context, in NewPost) (*models.Post, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	now := s.now()

	post := &models.Post{
		ID:              id,
		Title:           in.Title,
		Content:         in.Content,
		FeaturedImage:   nullable(in.FeaturedImage),
		CategoryID:      nullable(in.CategoryID),
		AuthorID:        nullable(in.AuthorID),
		MetaTitle:       nullable(in.MetaTitle),
		MetaDescription: nullable(in.MetaDescription),
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.checkCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}

		postSlug, err := s.uniqueSlug(ctx, tx, postSlugs, in.Title, "")
		if err != nil {
			return err
		}
		post.Slug = postSlug

		if _, err := s.exec(ctx, tx, `
			INSERT INTO posts (id, title, slug, content, featured_image, category_id, author_id,
				meta_title, meta_description, status, view_count, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
			post.ID, post.Title, post.Slug, post.Content, post.FeaturedImage, post.CategoryID,
			post.AuthorID, post.MetaTitle, post.MetaDescription, post.Status, now, now); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to insert post: %w", err)
		}

		return s.replaceImages(ctx, tx, post.ID, in.AdditionalImages)
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// UpdatePost applies the non-empty fields of in. A title change
// regenerates the slug, and a non-nil image list replaces all images.
func (s *Store) UpdatePost(ctx context.Context, id string, in PostUpdate) (*models.Post, error) {
	var post models.Post

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.get(ctx, tx, &post, `SELECT `+postColumns+` FROM posts p WHERE p.id = ?`, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get post: %w", err)
		}

		if in.Title != "" && in.Title != post.Title {
			newSlug, err := s.uniqueSlug(ctx, tx, postSlugs, in.Title, post.ID)
			if err != nil {
				return err
			}
			post.Title = in.Title
			post.Slug = newSlug
		}
		if in.Content != "" {
			post.Content = in.Content
		}
		if in.FeaturedImage != "" {
			post.FeaturedImage = &in.FeaturedImage
		}
		if in.CategoryID != "" {
			if err := s.checkCategory(ctx, tx, in.CategoryID); err != nil {
				return err
			}
			post.CategoryID = &in.CategoryID
		}
		if in.MetaTitle != "" {
			post.MetaTitle = &in.MetaTitle
		}
		if in.MetaDescription != "" {
			post.MetaDescription = &in.MetaDescription
		}
		if in.Status != "" {
			post.Status = in.Status
		}
		post.UpdatedAt = s.now()

		if _, err := s.exec(ctx, tx, `
			UPDATE posts SET title = ?, slug = ?, content = ?, featured_image = ?, category_id = ?,
				meta_title = ?, meta_description = ?, status = ?, updated_at = ?
			WHERE id = ?`,
			post.Title, post.Slug, post.Content, post.FeaturedImage, post.CategoryID,
			post.MetaTitle, post.MetaDescription, post.Status, post.UpdatedAt, post.ID); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to update post: %w", err)
		}

		if in.AdditionalImages != nil {
			return s.replaceImages(ctx, tx, post.ID, in.AdditionalImages)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// DeletePost removes a post; images, comments and ratings cascade
func (s *Store) DeletePost(ctx context.Context, id string) error {
	if err := s.execAffecting(ctx, s.db, `DELETE FROM posts WHERE id = ?`, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// ListSitemapEntries returns published slugs, most recently updated first
func (s *Store) ListSitemapEntries(ctx context.Context) ([]models.SitemapEntry, error) {
	entries := []models.SitemapEntry{}
	if err := s.selectAll(ctx, s.db, &entries,
		`SELECT slug, updated_at FROM posts WHERE status = ? ORDER BY updated_at DESC`,
		models.PostStatusPublished); err != nil {
		return nil, fmt.Errorf("failed to list sitemap entries: %w", err)
	}
	return entries, nil
}
