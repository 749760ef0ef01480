// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/updateshub/middleware"
	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/store"
)

type CategoryHandler struct {
	st *store.Store
}

func NewCategoryHandler(st *store.Store) *CategoryHandler {
	return &CategoryHandler{st: st}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.st.ListCategories(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, categories)
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.st.CreateCategory(r.Context(), req.Name)
	if errors.Is(err, store.ErrDuplicate) {
		middleware.ErrorResponse(w, http.StatusConflict, "Category already exists")
		return
	}
	if err != nil {
		slog.Error("failed to create category", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	slog.Info("category created", "category_id", category.ID, "slug", category.Slug)

	middleware.JSONResponse(w, http.StatusCreated, category)
}

// Delete handles DELETE /api/categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := h.st.DeleteCategory(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete category", "category_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	slog.Info("category deleted", "category_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Category removed"})
}
