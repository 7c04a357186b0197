// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/voteup/cache"
)

// LeaderboardPattern matches every cached leaderboard
const LeaderboardPattern = "leaderboard:*"

// StatusSyncer moves contests whose window opened or closed
type StatusSyncer interface {
	SyncStatuses(ctx context.Context, now time.Time) (int, error)
}

// Reconciler keeps stored contest statuses in line with their date windows
type Reconciler struct {
	store    StatusSyncer
	cache    cache.Cache
	interval time.Duration
	now      func() time.Time
}

// New returns a Reconciler that runs every interval. c may be nil.
func New(s StatusSyncer, c cache.Cache, interval time.Duration) *Reconciler {
	return &Reconciler{store: s, cache: c, interval: interval, now: time.Now}
}

// RunOnce syncs statuses and reports how many contests changed. Cached
// leaderboards are dropped whenever anything changed.
func (r *Reconciler) RunOnce(ctx context.Context) (int, error) {
	changed, err := r.store.SyncStatuses(ctx, r.now().UTC())
	if err != nil {
		return 0, err
	}
	if changed == 0 {
		return 0, nil
	}

	slog.Info("contest statuses updated", "changed", changed)
	if r.cache != nil {
		if err := r.cache.DeletePattern(ctx, LeaderboardPattern); err != nil {
			slog.Warn("failed to drop cached leaderboards", "error", err)
		}
	}
	return changed, nil
}

// Run syncs immediately and then on every tick until ctx is cancelled
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("status reconciler started", "interval", r.interval)
	for {
		if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
			slog.Error("status reconciliation failed", "error", err)
		}

		select {
		case <-ctx.Done():
			slog.Info("status reconciler stopped")
			return
		case <-ticker.C:
		}
	}
}
