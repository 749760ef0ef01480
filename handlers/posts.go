// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/updateshub/cliparse"
	"github.com/danielhkuo/updateshub/middleware"
	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/store"
)

type PostHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewPostHandler(st *store.Store, cfg cliparse.Config) *PostHandler {
	return &PostHandler{st: st, cfg: cfg}
}

// queryInt reads an integer query parameter; junk reads as 0 and is
// clamped by the store.
func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

// ListPosts handles GET /api/posts?page=&limit=&search=&category=
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.st.ListPublishedPosts(r.Context(), store.ListParams{
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
		Search:     q.Get("search"),
		CategoryID: q.Get("category"),
	})
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, page)
}

// GetPostBySlug handles GET /api/posts/{slug}. Each call counts as a view.
func (h *PostHandler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.st.GetPostDetail(r.Context(), r.PathValue("slug"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		slog.Error("failed to get post", "slug", r.PathValue("slug"), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, post)
}

// ListAdminPosts handles GET /api/posts/admin
func (h *PostHandler) ListAdminPosts(w http.ResponseWriter, r *http.Request) {
	page, err := h.st.ListAdminPosts(r.Context(), queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		slog.Error("failed to list admin posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, page)
}

// GetPostByID handles GET /api/posts/admin/{id}
func (h *PostHandler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.st.GetPostByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		slog.Error("failed to get post", "post_id", r.PathValue("id"), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, post)
}

// CreatePost handles POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	in := store.NewPost{CreatePostRequest: req}
	if user := middleware.UserFromContext(r.Context()); user != nil {
		in.AuthorID = user.ID
	}

	post, err := h.st.CreatePost(r.Context(), in)
	switch {
	case errors.Is(err, store.ErrUnknownCategory):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Category not found")
		return
	case errors.Is(err, store.ErrDuplicate):
		middleware.ErrorResponse(w, http.StatusConflict, "Slug already in use, try again")
		return
	case err != nil:
		slog.Error("failed to create post", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	slog.Info("post created", "post_id", post.ID, "slug", post.Slug, "status", post.Status)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePostResponse{
		ID:     post.ID,
		Title:  post.Title,
		Slug:   post.Slug,
		Status: post.Status,
	})
}

// UpdatePost handles PUT /api/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePostRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.st.UpdatePost(r.Context(), r.PathValue("id"), store.PostUpdate(req))
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
		return
	case errors.Is(err, store.ErrUnknownCategory):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Category not found")
		return
	case errors.Is(err, store.ErrDuplicate):
		middleware.ErrorResponse(w, http.StatusConflict, "Slug already in use, try again")
		return
	case err != nil:
		slog.Error("failed to update post", "post_id", r.PathValue("id"), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	slog.Info("post updated", "post_id", post.ID, "slug", post.Slug)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Post updated"})
}

// DeletePost handles DELETE /api/posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := h.st.DeletePost(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete post", "post_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	slog.Info("post deleted", "post_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Post removed"})
}
