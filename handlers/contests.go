// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/voteup/auth"
	"github.com/danielhkuo/voteup/cache"
	"github.com/danielhkuo/voteup/cliparse"
	"github.com/danielhkuo/voteup/middleware"
	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/store"
	"github.com/danielhkuo/voteup/voting"
)

type ContestHandler struct {
	store store.Store
	cache cache.Cache
	cfg   cliparse.Config
}

func NewContestHandler(s store.Store, c cache.Cache, cfg cliparse.Config) *ContestHandler {
	return &ContestHandler{store: s, cache: c, cfg: cfg}
}

// LeaderboardKey is the cache key for a contest's standings
func LeaderboardKey(contestID string) string {
	return "leaderboard:" + contestID
}

// leaderboardVersionKey holds a token that changes on every invalidation.
// Cached standings are only served while their token is still current, so
// a slow reader cannot put back standings computed before a vote.
func leaderboardVersionKey(contestID string) string {
	return LeaderboardKey(contestID) + ":version"
}

type cachedLeaderboard struct {
	Version string                     `json:"version"`
	Board   models.LeaderboardResponse `json:"board"`
}

// leaderboardVersion returns the current token; "" when none was issued.
// ok is false when the cache could not be read.
func leaderboardVersion(ctx context.Context, c cache.Cache, contestID string) (string, bool) {
	raw, err := c.Get(ctx, leaderboardVersionKey(contestID))
	switch {
	case errors.Is(err, cache.ErrKeyNotFound):
		return "", true
	case err != nil:
		slog.Warn("leaderboard version read failed", "contest_id", contestID, "error", err)
		return "", false
	}
	return string(raw), true
}

// invalidateLeaderboard rotates the version token and drops the cached
// standings. A failure only costs freshness until the TTL expires, so it is
// logged and ignored.
func invalidateLeaderboard(ctx context.Context, c cache.Cache, contestID string) {
	if err := c.Set(ctx, leaderboardVersionKey(contestID), []byte(auth.GenerateID()), 0); err != nil {
		slog.Warn("failed to rotate leaderboard version", "contest_id", contestID, "error", err)
	}
	if err := c.Delete(ctx, LeaderboardKey(contestID)); err != nil {
		slog.Warn("failed to invalidate leaderboard", "contest_id", contestID, "error", err)
	}
}

// List handles GET /contests?status=
func (h *ContestHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", models.StatusUpcoming, models.StatusActive, models.StatusEnded:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be upcoming, active or ended")
		return
	}

	contests, err := h.store.ListContests(r.Context(), status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
}

// Get handles GET /contests/{id}
func (h *ContestHandler) Get(w http.ResponseWriter, r *http.Request) {
	contest, err := h.store.GetContest(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, contest)
}

// Leaderboard handles GET /contests/{id}/leaderboard
func (h *ContestHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	key := LeaderboardKey(contestID)

	// read the token before the contest so a vote landing in between
	// leaves this entry stale on arrival
	version, versionOK := leaderboardVersion(r.Context(), h.cache, contestID)

	var cached cachedLeaderboard
	err := cache.GetJSON(r.Context(), h.cache, key, &cached)
	if err == nil && versionOK && cached.Version == version {
		w.Header().Set("X-Cache", "HIT")
		middleware.JSONResponse(w, http.StatusOK, cached.Board)
		return
	}
	if err != nil && !errors.Is(err, cache.ErrKeyNotFound) {
		slog.Warn("leaderboard cache read failed", "contest_id", contestID, "error", err)
	}

	contest, err := h.store.GetContest(r.Context(), contestID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := models.LeaderboardResponse{
		ContestID:  contest.ID,
		TotalVotes: voting.TotalVotes(contest),
		Standings:  voting.Standings(contest),
	}

	if versionOK {
		entry := cachedLeaderboard{Version: version, Board: resp}
		if err := cache.SetJSON(r.Context(), h.cache, key, entry, h.cfg.CacheTTL); err != nil {
			slog.Warn("leaderboard cache write failed", "contest_id", contestID, "error", err)
		}
	}

	w.Header().Set("X-Cache", "MISS")
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Create handles POST /contests (admin)
func (h *ContestHandler) Create(w http.ResponseWriter, r *http.Request) {
	organizer, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.CreateContestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := voting.ValidateContest(req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	now := time.Now().UTC()
	contest := models.Contest{
		ID:           auth.GenerateID(),
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Prize:        req.Prize,
		StartDate:    req.StartDate.UTC(),
		EndDate:      req.EndDate.UTC(),
		OrganizerID:  organizer.ID,
		Status:       voting.StatusAt(req.StartDate, req.EndDate, now),
		Participants: make([]models.Participant, 0, len(req.Participants)),
		CreatedAt:    now,
	}
	for _, p := range req.Participants {
		contest.Participants = append(contest.Participants, models.Participant{
			ID:        auth.GenerateID(),
			ContestID: contest.ID,
			Name:      strings.TrimSpace(p.Name),
			Bio:       p.Bio,
			Image:     p.Image,
		})
	}

	if err := h.store.CreateContest(r.Context(), contest); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slog.Info("contest created",
		"contest_id", contest.ID,
		"status", contest.Status,
		"participants", len(contest.Participants),
		"organizer_id", organizer.ID,
	)

	created, err := h.store.GetContest(r.Context(), contest.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, created)
}

// AddParticipant handles POST /contests/{id}/participants (admin)
func (h *ContestHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")

	var req models.AddParticipantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := voting.ValidateParticipant(req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	p, err := h.store.AddParticipant(r.Context(), contestID, models.Participant{
		ID:    auth.GenerateID(),
		Name:  strings.TrimSpace(req.Name),
		Bio:   req.Bio,
		Image: req.Image,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	invalidateLeaderboard(r.Context(), h.cache, contestID)
	slog.Info("participant added", "contest_id", contestID, "participant_id", p.ID)

	middleware.JSONResponse(w, http.StatusCreated, p)
}
