// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/voteup/models"
)

func TestCanVote(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		user       models.User
		wantAllow  bool
		wantWait   time.Duration
		wantSource string
	}{
		{
			name:       "credits allow regardless of free slot",
			user:       models.User{VotesRemaining: 3, LastFreeVote: now.UnixMilli()},
			wantAllow:  true,
			wantSource: models.SourceCredit,
		},
		{
			name:       "never voted",
			user:       models.User{},
			wantAllow:  true,
			wantSource: models.SourceFree,
		},
		{
			name:     "free vote 5 minutes ago",
			user:     models.User{LastFreeVote: now.Add(-5 * time.Minute).UnixMilli()},
			wantWait: 5 * time.Minute,
		},
		{
			name:       "free vote exactly one interval ago",
			user:       models.User{LastFreeVote: now.Add(-FreeVoteInterval).UnixMilli()},
			wantAllow:  true,
			wantSource: models.SourceFree,
		},
		{
			name:     "one millisecond short",
			user:     models.User{LastFreeVote: now.Add(-FreeVoteInterval + time.Millisecond).UnixMilli()},
			wantWait: time.Millisecond,
		},
		{
			name:     "clock skew puts last free vote in the future",
			user:     models.User{LastFreeVote: now.Add(time.Minute).UnixMilli()},
			wantWait: FreeVoteInterval + time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanVote(tt.user, now)
			assert.Equal(t, tt.wantAllow, got.Allowed)
			assert.Equal(t, tt.wantWait, got.Wait)
			assert.Equal(t, tt.wantSource, got.Source())
		})
	}
}

func TestCanVote_WaitNeverNegative(t *testing.T) {
	now := time.Now()
	for _, ago := range []time.Duration{0, time.Second, 9 * time.Minute, 10 * time.Minute, time.Hour} {
		got := CanVote(models.User{LastFreeVote: now.Add(-ago).UnixMilli()}, now)
		assert.GreaterOrEqual(t, got.Wait, time.Duration(0), "ago=%s", ago)
		if got.Allowed {
			assert.Zero(t, got.Wait)
		}
	}
}

func TestCountdown(t *testing.T) {
	tests := []struct {
		wait time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{999 * time.Millisecond, "0:00"},
		{5 * time.Second, "0:05"},
		{5 * time.Minute, "5:00"},
		{9*time.Minute + 59*time.Second + 500*time.Millisecond, "9:59"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Countdown(tt.wait))
		})
	}
}

func TestDescribeWait(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "now", DescribeWait(now, 0))
	assert.Equal(t, "5 minutes from now", DescribeWait(now, 5*time.Minute))
}

func TestNextFreeVote(t *testing.T) {
	last := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	u := models.User{LastFreeVote: last.UnixMilli()}
	assert.True(t, NextFreeVote(u).Equal(last.Add(FreeVoteInterval)))
}
