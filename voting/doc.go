// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the entitlement and tally rules for contests.

Everything here is pure: functions take values and return new values, so the
rules can be tested without a database and reused by every store.

# Entitlement

A user may vote when they hold purchased credits, or when their free slot
has reopened:

	elig := voting.CanVote(user, time.Now())
	if !elig.Allowed {
		// elig.Wait until the next free vote
	}

Free votes are spaced by FreeVoteInterval (10 minutes). Credits are always
spent first; the free slot is only stamped when no credits remain.

# Casting

	contest, user, err := voting.CastVote(contest, participantID, user, now)

CastVote increments the participant and the contest total together so that
TotalVotes stays equal to the sum of participant votes.

# Vote Packs

	pack, err := voting.FindPack("popular")
	user = voting.ApplyPurchase(user, pack)

Prices are in GHS; MinorUnits converts to pesewas for the payment provider.

# Aggregation

	board := voting.Leaderboard(contest)        // votes desc, stable
	pct := voting.PercentOfMax(p, contest)      // 0..100
	rows := voting.Standings(contest)           // ranked, with percent

# Comments

	comment = voting.ToggleLike(comment, userID)
	comments = voting.DeleteComment(comments, commentID, userID)

DeleteComment silently ignores requests from anyone but the author.
*/
package voting
