// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/voteup/auth"
	"github.com/danielhkuo/voteup/middleware"
	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/payment"
	"github.com/danielhkuo/voteup/store"
	"github.com/danielhkuo/voteup/voting"
)

// errorMapping pairs a sentinel with the response it produces
type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: the specific not-found errors come before voting.ErrNotFound
var errorMappings = []errorMapping{
	{voting.ErrContestNotFound, http.StatusNotFound, "CONTEST_NOT_FOUND"},
	{voting.ErrParticipantNotFound, http.StatusNotFound, "PARTICIPANT_NOT_FOUND"},
	{voting.ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"},
	{voting.ErrPackNotFound, http.StatusNotFound, "PACK_NOT_FOUND"},
	{store.ErrPurchaseNotFound, http.StatusNotFound, "PURCHASE_NOT_FOUND"},
	{voting.ErrNotFound, http.StatusNotFound, voting.CodeNotFound},

	{voting.ErrVoteNotAllowed, http.StatusTooManyRequests, voting.CodeVoteNotAllowed},
	{voting.ErrContestNotActive, http.StatusConflict, voting.CodeContestNotActive},
	{voting.ErrInvalidComment, http.StatusBadRequest, voting.CodeInvalidComment},
	{voting.ErrInvalidContest, http.StatusBadRequest, voting.CodeInvalidContest},

	{auth.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{auth.ErrEmailExists, http.StatusConflict, "EMAIL_EXISTS"},
	{auth.ErrUnavailable, http.StatusServiceUnavailable, "AUTH_UNAVAILABLE"},

	{payment.ErrPaymentDeclined, http.StatusPaymentRequired, "PAYMENT_DECLINED"},
	{payment.ErrPaymentPending, http.StatusConflict, "PAYMENT_PENDING"},
	{payment.ErrUnavailable, http.StatusBadGateway, "PAYMENT_UNAVAILABLE"},
	{store.ErrPurchaseNotPending, http.StatusConflict, "PURCHASE_SETTLED"},
	{store.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
}

// writeServiceError maps a domain error to a status and code. Anything
// unrecognised is logged and reported as a 500 without its message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			middleware.CodedErrorResponse(w, m.status, m.code, err.Error())
			return
		}
	}

	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"error", err,
	)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
}

// currentUser returns the user loaded by middleware.RequireAuth
func currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok || u.ID == "" {
		middleware.CodedErrorResponse(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return models.User{}, false
	}
	return u, true
}
