// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/voteup/auth"
	"github.com/danielhkuo/voteup/cache"
	"github.com/danielhkuo/voteup/cliparse"
	"github.com/danielhkuo/voteup/handlers"
	"github.com/danielhkuo/voteup/middleware"
	"github.com/danielhkuo/voteup/payment"
	"github.com/danielhkuo/voteup/store"
)

func NewRouter(s store.Store, c cache.Cache, v payment.Verifier, svc *auth.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc)
	contestHandler := handlers.NewContestHandler(s, c, cfg)
	votingHandler := handlers.NewVotingHandler(s, c, cfg)
	purchaseHandler := handlers.NewPurchaseHandler(s, v, cfg)
	commentHandler := handlers.NewCommentHandler(s, svc)
	adminHandler := handlers.NewAdminHandler(s)

	public := middleware.WithLogging
	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(svc)(h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(svc)(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /auth/register", public(authHandler.Register))
	mux.HandleFunc("POST /auth/login", public(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", user(authHandler.Logout))
	mux.HandleFunc("GET /me", user(authHandler.Me))
	mux.HandleFunc("GET /me/eligibility", user(votingHandler.Eligibility))

	// Contests
	mux.HandleFunc("GET /contests", public(contestHandler.List))
	mux.HandleFunc("GET /contests/{id}", public(contestHandler.Get))
	mux.HandleFunc("GET /contests/{id}/leaderboard", public(contestHandler.Leaderboard))
	mux.HandleFunc("POST /contests", admin(contestHandler.Create))
	mux.HandleFunc("POST /contests/{id}/participants", admin(contestHandler.AddParticipant))

	// Voting
	mux.HandleFunc("POST /contests/{id}/votes", user(votingHandler.CastVote))

	// Vote packs
	mux.HandleFunc("GET /vote-packs", public(purchaseHandler.ListPacks))
	mux.HandleFunc("POST /purchases", user(purchaseHandler.Begin))
	mux.HandleFunc("POST /purchases/{reference}/confirm", user(purchaseHandler.Confirm))
	mux.HandleFunc("POST /purchases/{reference}/cancel", user(purchaseHandler.Cancel))

	// Comments
	mux.HandleFunc("GET /contests/{id}/comments", public(commentHandler.List))
	mux.HandleFunc("POST /contests/{id}/comments", user(commentHandler.Add))
	mux.HandleFunc("POST /comments/{id}/like", user(commentHandler.ToggleLike))
	mux.HandleFunc("DELETE /comments/{id}", user(commentHandler.Delete))

	// Dashboard
	mux.HandleFunc("GET /admin/stats", admin(adminHandler.Stats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voteup API v1"))
	})

	return mux
}
