// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"sort"

	"github.com/danielhkuo/voteup/models"
)

// Leaderboard returns the participants ordered by votes, highest first.
// Ties keep insertion order.
func Leaderboard(c models.Contest) []models.Participant {
	out := make([]models.Participant, len(c.Participants))
	copy(out, c.Participants)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Votes > out[j].Votes
	})
	return out
}

// maxVotes is never below 1 so a contest with no votes divides cleanly
func maxVotes(c models.Contest) int {
	m := 1
	for _, p := range c.Participants {
		if p.Votes > m {
			m = p.Votes
		}
	}
	return m
}

// PercentOfMax scales p's votes against the contest leader, 0..100
func PercentOfMax(p models.Participant, c models.Contest) float64 {
	return float64(p.Votes) / float64(maxVotes(c)) * 100
}

// Standings combines Leaderboard and PercentOfMax with 1-indexed ranks.
// Participants with equal votes share a rank.
func Standings(c models.Contest) []models.Standing {
	board := Leaderboard(c)
	top := maxVotes(c)

	out := make([]models.Standing, len(board))
	for i, p := range board {
		rank := i + 1
		if i > 0 && board[i-1].Votes == p.Votes {
			rank = out[i-1].Rank
		}
		out[i] = models.Standing{
			Rank:          rank,
			ParticipantID: p.ID,
			Name:          p.Name,
			Image:         p.Image,
			Votes:         p.Votes,
			PercentOfMax:  float64(p.Votes) / float64(top) * 100,
		}
	}
	return out
}

// TotalVotes sums participant votes. It equals c.TotalVotes for any
// contest only mutated through CastVote.
func TotalVotes(c models.Contest) int {
	total := 0
	for _, p := range c.Participants {
		total += p.Votes
	}
	return total
}
