// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/updateshub/middleware"
	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/store"
)

type ContactHandler struct {
	st *store.Store
}

func NewContactHandler(st *store.Store) *ContactHandler {
	return &ContactHandler{st: st}
}

// List handles GET /api/contact
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.st.ListMessages(r.Context())
	if err != nil {
		slog.Error("failed to list messages", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, messages)
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.st.CreateMessage(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		slog.Error("failed to save message", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	slog.Info("contact message received", "message_id", msg.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{
		ID:      msg.ID,
		Message: "Message sent successfully",
	})
}
