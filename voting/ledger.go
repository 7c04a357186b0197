// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"time"

	"github.com/danielhkuo/voteup/models"
)

// CastVote records one vote by u for participantID in c.
//
// Purchased credits are spent before the free slot. The returned contest and
// user are copies; the inputs are left untouched. A missing participant yields
// ErrParticipantNotFound and an exhausted user yields ErrVoteNotAllowed, and
// in both cases nothing changes.
func CastVote(c models.Contest, participantID string, u models.User, now time.Time) (models.Contest, models.User, error) {
	idx := participantIndex(c, participantID)
	if idx < 0 {
		return c, u, ErrParticipantNotFound
	}

	elig := CanVote(u, now)
	if !elig.Allowed {
		return c, u, ErrVoteNotAllowed
	}

	out := c
	out.Participants = make([]models.Participant, len(c.Participants))
	copy(out.Participants, c.Participants)
	out.Participants[idx].Votes++
	out.TotalVotes++

	spend(&u, elig.Source(), now)
	return out, u, nil
}

// spend consumes the resource named by source
func spend(u *models.User, source string, now time.Time) {
	if source == models.SourceCredit {
		u.VotesRemaining--
		return
	}
	u.LastFreeVote = now.UnixMilli()
}

func participantIndex(c models.Contest, participantID string) int {
	for i, p := range c.Participants {
		if p.ID == participantID {
			return i
		}
	}
	return -1
}

// FindParticipant returns the participant with the given ID
func FindParticipant(c models.Contest, participantID string) (models.Participant, bool) {
	idx := participantIndex(c, participantID)
	if idx < 0 {
		return models.Participant{}, false
	}
	return c.Participants[idx], true
}
