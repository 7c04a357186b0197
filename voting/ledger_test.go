// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/voteup/models"
)

func testContest() models.Contest {
	return models.Contest{
		ID:     "c1",
		Status: models.StatusActive,
		Participants: []models.Participant{
			{ID: "p1", ContestID: "c1", Name: "Ama", Votes: 4, Position: 0},
			{ID: "p2", ContestID: "c1", Name: "Kofi", Votes: 7, Position: 1},
			{ID: "p3", ContestID: "c1", Name: "Esi", Votes: 0, Position: 2},
		},
		TotalVotes: 11,
	}
}

func TestCastVote_SpendsCreditFirst(t *testing.T) {
	now := time.Now()
	last := now.Add(-time.Hour).UnixMilli()
	u := models.User{ID: "u1", VotesRemaining: 3, LastFreeVote: last}

	c, got, err := CastVote(testContest(), "p1", u, now)
	require.NoError(t, err)

	assert.Equal(t, 2, got.VotesRemaining)
	assert.Equal(t, last, got.LastFreeVote, "free slot must not be stamped while credits remain")
	assert.Equal(t, 5, c.Participants[0].Votes)
	assert.Equal(t, 12, c.TotalVotes)
}

func TestCastVote_StampsFreeSlot(t *testing.T) {
	now := time.Now()
	u := models.User{ID: "u1", VotesRemaining: 0, LastFreeVote: now.Add(-11 * time.Minute).UnixMilli()}

	c, got, err := CastVote(testContest(), "p3", u, now)
	require.NoError(t, err)

	assert.Equal(t, 0, got.VotesRemaining)
	assert.Equal(t, now.UnixMilli(), got.LastFreeVote)
	assert.Equal(t, 1, c.Participants[2].Votes)
	assert.Equal(t, 12, c.TotalVotes)
}

func TestCastVote_Rejected(t *testing.T) {
	now := time.Now()
	c := testContest()

	tests := []struct {
		name          string
		participantID string
		user          models.User
		wantErr       error
	}{
		{
			name:          "unknown participant",
			participantID: "nope",
			user:          models.User{VotesRemaining: 1},
			wantErr:       ErrParticipantNotFound,
		},
		{
			name:          "free slot still cooling down",
			participantID: "p1",
			user:          models.User{LastFreeVote: now.Add(-5 * time.Minute).UnixMilli()},
			wantErr:       ErrVoteNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotC, gotU, err := CastVote(c, tt.participantID, tt.user, now)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, c, gotC)
			assert.Equal(t, tt.user, gotU)
		})
	}

	assert.ErrorIs(t, ErrParticipantNotFound, ErrNotFound)
}

func TestCastVote_DoesNotMutateInput(t *testing.T) {
	c := testContest()
	_, _, err := CastVote(c, "p2", models.User{VotesRemaining: 1}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 7, c.Participants[1].Votes)
	assert.Equal(t, 11, c.TotalVotes)
}

func TestCastVote_TotalMatchesSum(t *testing.T) {
	now := time.Now()
	c := testContest()
	u := models.User{VotesRemaining: 25}
	ids := []string{"p1", "p2", "p3"}

	var err error
	for i := 0; i < 25; i++ {
		c, u, err = CastVote(c, ids[i%len(ids)], u, now)
		require.NoError(t, err)
		require.GreaterOrEqual(t, u.VotesRemaining, 0)
		assert.Equal(t, TotalVotes(c), c.TotalVotes)
	}

	assert.Equal(t, 0, u.VotesRemaining)
	assert.Equal(t, 36, c.TotalVotes)

	// Credits are gone and the free slot was never used, so one more works
	c, u, err = CastVote(c, "p1", u, now)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), u.LastFreeVote)

	_, _, err = CastVote(c, "p1", u, now.Add(time.Minute))
	assert.ErrorIs(t, err, ErrVoteNotAllowed)
}

func TestFindParticipant(t *testing.T) {
	p, ok := FindParticipant(testContest(), "p2")
	require.True(t, ok)
	assert.Equal(t, "Kofi", p.Name)

	_, ok = FindParticipant(testContest(), "zzz")
	assert.False(t, ok)
}
