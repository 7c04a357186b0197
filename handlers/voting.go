// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/voteup/auth"
	"github.com/danielhkuo/voteup/cache"
	"github.com/danielhkuo/voteup/cliparse"
	"github.com/danielhkuo/voteup/middleware"
	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/store"
	"github.com/danielhkuo/voteup/voting"
)

type VotingHandler struct {
	store store.Store
	cache cache.Cache
	cfg   cliparse.Config
}

func NewVotingHandler(s store.Store, c cache.Cache, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: s, cache: c, cfg: cfg}
}

func eligibilityResponse(u models.User, now time.Time) models.EligibilityResponse {
	e := voting.CanVote(u, now)
	return models.EligibilityResponse{
		Allowed:      e.Allowed,
		Source:       e.Source(),
		WaitMS:       e.Wait.Milliseconds(),
		Countdown:    voting.Countdown(e.Wait),
		NextFreeVote: voting.DescribeWait(now, e.Wait),
		Votes:        u.VotesRemaining,
	}
}

// Eligibility handles GET /me/eligibility.
// Clients poll it to drive the free-vote countdown.
func (h *VotingHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, eligibilityResponse(u, time.Now()))
}

// CastVote handles POST /contests/{id}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	contestID := r.PathValue("id")

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ParticipantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant_id is required")
		return
	}

	now := time.Now()
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	receipt, err := h.store.CastVote(r.Context(), contestID, req.ParticipantID, u.ID, ipHash, now)
	if errors.Is(err, voting.ErrVoteNotAllowed) {
		h.writeNotAllowed(w, r, u.ID, now)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	invalidateLeaderboard(r.Context(), h.cache, contestID)

	slog.Info("vote cast",
		"contest_id", contestID,
		"participant_id", req.ParticipantID,
		"user_id", u.ID,
		"source", receipt.Vote.Source,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Contest:        receipt.Contest,
		Source:         receipt.Vote.Source,
		VotesRemaining: receipt.User.VotesRemaining,
		LastFreeVote:   receipt.User.LastFreeVote,
	})
}

// writeNotAllowed reports the wait using the freshest user record, since
// a concurrent vote may have spent the slot after the middleware loaded it
func (h *VotingHandler) writeNotAllowed(w http.ResponseWriter, r *http.Request, userID string, now time.Time) {
	u, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	e := eligibilityResponse(u, now)
	if e.WaitMS > 0 {
		w.Header().Set("Retry-After", strconv.FormatInt((e.WaitMS+999)/1000, 10))
	}
	middleware.JSONResponse(w, http.StatusTooManyRequests, struct {
		models.ErrorResponse
		Eligibility models.EligibilityResponse `json:"eligibility"`
	}{
		ErrorResponse: models.ErrorResponse{
			Error:   http.StatusText(http.StatusTooManyRequests),
			Message: "Next free vote in " + e.Countdown + ". Buy a vote pack to vote now.",
			Code:    voting.CodeVoteNotAllowed,
		},
		Eligibility: e,
	})
}
