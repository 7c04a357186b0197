// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/voteup/models"
)

// Summarize aggregates dashboard figures across contests.
// Revenue is left for the caller, which owns transaction records.
func Summarize(contests []models.Contest) models.AdminStatsResponse {
	var stats models.AdminStatsResponse
	stats.TotalContests = len(contests)

	top := 1
	for _, c := range contests {
		if c.Status == models.StatusActive {
			stats.ActiveContests++
		}
		stats.TotalVotes += c.TotalVotes
		stats.TotalParticipants += len(c.Participants)
		if c.TotalVotes > top {
			top = c.TotalVotes
		}
	}

	stats.ContestPerformance = make([]models.ContestShare, 0, len(contests))
	for _, c := range contests {
		stats.ContestPerformance = append(stats.ContestPerformance, models.ContestShare{
			ContestID:    c.ID,
			Title:        c.Title,
			TotalVotes:   c.TotalVotes,
			PercentOfMax: float64(c.TotalVotes) / float64(top) * 100,
		})
	}

	stats.TopParticipants = TopParticipants(contests, 5)
	stats.TotalVotesText = humanize.Comma(int64(stats.TotalVotes))
	return stats
}

// TopParticipants returns the n highest-voted participants across contests
func TopParticipants(contests []models.Contest, n int) []models.RankedParticipant {
	var all []models.RankedParticipant
	for _, c := range contests {
		for _, p := range c.Participants {
			all = append(all, models.RankedParticipant{Participant: p, ContestTitle: c.Title})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Votes > all[j].Votes
	})
	if len(all) > n {
		all = all[:n]
	}
	if all == nil {
		all = []models.RankedParticipant{}
	}
	return all
}
