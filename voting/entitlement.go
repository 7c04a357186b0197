// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/voteup/models"
)

// FreeVoteInterval is the minimum spacing between two free votes
const FreeVoteInterval = 10 * time.Minute

// Eligibility is the result of CanVote.
// Wait is zero when Allowed is true.
type Eligibility struct {
	Allowed bool
	Wait    time.Duration
	source  string
}

// Source reports which resource a vote cast now would consume:
// models.SourceCredit, models.SourceFree, or "" when not allowed.
func (e Eligibility) Source() string {
	return e.source
}

// CanVote decides whether u may vote at now.
// Purchased credits always allow a vote; otherwise the free slot opens
// FreeVoteInterval after LastFreeVote.
func CanVote(u models.User, now time.Time) Eligibility {
	if u.VotesRemaining > 0 {
		return Eligibility{Allowed: true, source: models.SourceCredit}
	}

	elapsed := time.Duration(now.UnixMilli()-u.LastFreeVote) * time.Millisecond
	if elapsed >= FreeVoteInterval {
		return Eligibility{Allowed: true, source: models.SourceFree}
	}

	wait := FreeVoteInterval - elapsed
	if wait < 0 {
		wait = 0
	}
	return Eligibility{Wait: wait}
}

// NextFreeVote returns the instant the user's free slot opens
func NextFreeVote(u models.User) time.Time {
	return time.UnixMilli(u.LastFreeVote).Add(FreeVoteInterval)
}

// Countdown formats a wait as m:ss, truncating partial seconds
func Countdown(wait time.Duration) string {
	if wait <= 0 {
		return "0:00"
	}
	secs := int64(wait / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// DescribeWait renders a human phrase such as "9 minutes from now"
func DescribeWait(now time.Time, wait time.Duration) string {
	if wait <= 0 {
		return "now"
	}
	return humanize.RelTime(now.Add(wait), now, "ago", "from now")
}
