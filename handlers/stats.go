// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/updateshub/auth"
	"github.com/danielhkuo/updateshub/cliparse"
	"github.com/danielhkuo/updateshub/middleware"
	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/store"
)

type StatsHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewStatsHandler(st *store.Store, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{st: st, cfg: cfg}
}

// AdminStats handles GET /api/stats
func (h *StatsHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.st.AdminStats(r.Context())
	if err != nil {
		slog.Error("failed to gather stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}

// RecordVisit handles POST /api/stats/visit, sent by the home page.
// Visitors are remembered by a salted hash of their IP.
func (h *StatsHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	visitor := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	if err := h.st.RecordVisit(r.Context(), visitor); err != nil {
		slog.Error("failed to record visit", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server Error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Visit recorded"})
}
