// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/danielhkuo/updateshub/auth"
	"github.com/danielhkuo/updateshub/cliparse"
	"github.com/danielhkuo/updateshub/middleware"
	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/store"
)

type RatingHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewRatingHandler(st *store.Store, cfg cliparse.Config) *RatingHandler {
	return &RatingHandler{st: st, cfg: cfg}
}

// RatePost handles POST /api/posts/{id}/rate.
// Signed-in users rate as themselves; guests are identified by a salted
// hash of their IP. Rating again replaces the earlier score.
func (h *RatingHandler) RatePost(w http.ResponseWriter, r *http.Request) {
	var req models.RateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Rating < 1 || req.Rating > 5 || req.Rating != math.Trunc(req.Rating) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Rating must be a number between 1 and 5")
		return
	}

	var rater store.Rater
	if user := middleware.UserFromContext(r.Context()); user != nil {
		rater.UserID = user.ID
	} else {
		rater.GuestIP = auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	}

	postID := r.PathValue("id")
	summary, err := h.st.RatePost(r.Context(), postID, rater, int(req.Rating))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		slog.Error("failed to rate post", "post_id", postID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RatingResponse{
		Message:       "Rating submitted successfully",
		AverageRating: summary.AverageRating,
		TotalRatings:  summary.TotalRatings,
	})
}
