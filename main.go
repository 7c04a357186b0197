// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/voteup/auth"
	"github.com/danielhkuo/voteup/cache"
	"github.com/danielhkuo/voteup/cliparse"
	"github.com/danielhkuo/voteup/db"
	"github.com/danielhkuo/voteup/middleware"
	"github.com/danielhkuo/voteup/payment"
	"github.com/danielhkuo/voteup/reconcile"
	"github.com/danielhkuo/voteup/router"
	"github.com/danielhkuo/voteup/store"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	s, err := openStore(cfg)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer s.Close()
	slog.Info("Database ready", "type", cfg.DatabaseType)

	c, err := cache.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		slog.Error("cache connection failed", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	verifier, err := newVerifier(cfg)
	if err != nil {
		slog.Error("payment setup failed", "error", err)
		os.Exit(1)
	}

	svc := auth.NewService(s, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL), cfg.AdminEmails)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ReconcileInterval > 0 {
		go reconcile.New(s, c, cfg.ReconcileInterval).Run(ctx)
	}

	// Create router
	mux := router.NewRouter(s, c, verifier, svc, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(middleware.RequestID(mux)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "payment", cfg.PaymentMode)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func openStore(cfg cliparse.Config) (store.Store, error) {
	if cfg.DatabaseType == db.TypeMemory {
		slog.Warn("using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return store.NewSQLStore(conn), nil
}

func newVerifier(cfg cliparse.Config) (payment.Verifier, error) {
	if cfg.PaymentMode == cliparse.PaymentFake {
		slog.Warn("payment verification is faked; every purchase succeeds")
		return payment.NewFakeVerifier(), nil
	}
	return payment.NewPaystackVerifier(cfg.PaystackSecretKey, cfg.PaystackBaseURL)
}
