// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/voteup/middleware"
	"github.com/danielhkuo/voteup/store"
	"github.com/danielhkuo/voteup/voting"
)

type AdminHandler struct {
	store store.Store
}

func NewAdminHandler(s store.Store) *AdminHandler {
	return &AdminHandler{store: s}
}

// Stats handles GET /admin/stats (admin)
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	contests, err := h.store.ListContests(r.Context(), "")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	revenue, err := h.store.Revenue(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	stats := voting.Summarize(contests)
	stats.Revenue = revenue
	stats.RevenueText = voting.Currency + " " + humanize.CommafWithDigits(float64(revenue)/100, 2)

	middleware.JSONResponse(w, http.StatusOK, stats)
}
