// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/voteup/auth"
	"github.com/danielhkuo/voteup/middleware"
	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/store"
	"github.com/danielhkuo/voteup/voting"
)

type CommentHandler struct {
	store store.Store
	auth  middleware.Authenticator
}

// NewCommentHandler takes an optional Authenticator so anonymous listing can
// still mark the caller's own likes when a token is present
func NewCommentHandler(s store.Store, a middleware.Authenticator) *CommentHandler {
	return &CommentHandler{store: s, auth: a}
}

func commentView(c models.Comment, viewerID string, now time.Time) models.CommentView {
	return models.CommentView{
		Comment:   c,
		LikedByMe: viewerID != "" && voting.LikedBy(c, viewerID),
		TimeAgo:   humanize.RelTime(c.CreatedAt, now, "ago", "from now"),
	}
}

// viewerID identifies the caller on public routes; a bad token is ignored
func (h *CommentHandler) viewerID(r *http.Request) string {
	if u, ok := middleware.UserFromContext(r.Context()); ok {
		return u.ID
	}
	token := middleware.BearerToken(r)
	if token == "" || h.auth == nil {
		return ""
	}
	u, err := h.auth.CurrentUser(r.Context(), token)
	if err != nil {
		return ""
	}
	return u.ID
}

// List handles GET /contests/{id}/comments?participant_id=
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if _, err := h.store.GetContest(r.Context(), contestID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	comments, err := h.store.ListComments(r.Context(), store.CommentFilter{
		ContestID:     contestID,
		ParticipantID: r.URL.Query().Get("participant_id"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	viewer := h.viewerID(r)
	now := time.Now()
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, commentView(c, viewer, now))
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}

// Add handles POST /contests/{id}/comments
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.AddCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	content, err := voting.ValidateComment(req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	now := time.Now().UTC()
	c := models.Comment{
		ID:            auth.GenerateID(),
		UserID:        u.ID,
		UserName:      u.Name,
		ContestID:     r.PathValue("id"),
		ParticipantID: req.ParticipantID,
		Content:       content,
		LikedBy:       []string{},
		CreatedAt:     now,
	}
	if err := h.store.AddComment(r.Context(), c); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slog.Info("comment added", "comment_id", c.ID, "contest_id", c.ContestID, "user_id", u.ID)
	middleware.JSONResponse(w, http.StatusCreated, commentView(c, u.ID, now))
}

// ToggleLike handles POST /comments/{id}/like
func (h *CommentHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	c, err := h.store.ToggleLike(r.Context(), r.PathValue("id"), u.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, commentView(c, u.ID, time.Now()))
}

// Delete handles DELETE /comments/{id}.
// Deleting a comment the caller did not write changes nothing and still
// answers 204, so the endpoint does not reveal authorship.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	commentID := r.PathValue("id")
	removed, err := h.store.DeleteComment(r.Context(), commentID, u.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if removed {
		slog.Info("comment deleted", "comment_id", commentID, "user_id", u.ID)
	}
	w.WriteHeader(http.StatusNoContent)
}
