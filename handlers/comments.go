// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/updateshub/middleware"
	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/store"
)

type CommentHandler struct {
	st *store.Store
}

func NewCommentHandler(st *store.Store) *CommentHandler {
	return &CommentHandler{st: st}
}

// ListByPost handles GET /api/comments/post/{postId}
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	comments, err := h.st.ListApprovedComments(r.Context(), r.PathValue("postId"))
	if err != nil {
		slog.Error("failed to list comments", "post_id", r.PathValue("postId"), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, comments)
}

// ListAll handles GET /api/comments
func (h *CommentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	comments, err := h.st.ListAllComments(r.Context())
	if err != nil {
		slog.Error("failed to list comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, comments)
}

// Create handles POST /api/comments. Guests may comment under a name.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	in := store.NewComment{
		PostID:    req.PostID,
		GuestName: req.GuestName,
		Comment:   req.Comment,
	}
	if user := middleware.UserFromContext(r.Context()); user != nil {
		in.UserID = user.ID
	}

	comment, err := h.st.CreateComment(r.Context(), in)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		slog.Error("failed to create comment", "post_id", req.PostID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	slog.Info("comment created", "comment_id", comment.ID, "post_id", comment.PostID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{
		ID:      comment.ID,
		Message: "Comment submitted successfully",
	})
}

// UpdateStatus handles PUT /api/comments/{id}
func (h *CommentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCommentStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	err := h.st.UpdateCommentStatus(r.Context(), id, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		slog.Error("failed to update comment", "comment_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	slog.Info("comment moderated", "comment_id", id, "status", req.Status)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Comment status updated"})
}

// Delete handles DELETE /api/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := h.st.DeleteComment(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete comment", "comment_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Comment removed"})
}
