// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/updateshub/auth"
	"github.com/danielhkuo/updateshub/cliparse"
	"github.com/danielhkuo/updateshub/middleware"
	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/store"
)

type AuthHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewAuthHandler(st *store.Store, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{st: st, cfg: cfg}
}

// Register handles POST /api/auth/register.
// The first account becomes the admin; later accounts are regular users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.st.CountUsers(r.Context())
	if err != nil {
		slog.Error("failed to count users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}
	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	user, err := h.st.CreateUser(r.Context(), req.Name, req.Email, hash, role)
	if errors.Is(err, store.ErrDuplicate) {
		middleware.ErrorResponse(w, http.StatusConflict, "User already exists")
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)

	h.respondWithToken(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.st.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to get user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

// Profile handles GET /api/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *models.User) {
	token, err := auth.IssueToken(user.ID, user.Role, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	middleware.JSONResponse(w, status, models.AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	})
}
