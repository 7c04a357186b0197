// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/voteup/cache"
	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/testutil"
	"github.com/danielhkuo/voteup/voting"
)

func castVoteRequest(t *testing.T, u models.User, contestID, participantID string) *http.Request {
	t.Helper()
	req := testutil.MakeRequest("POST", "/contests/"+contestID+"/votes",
		models.CastVoteRequest{ParticipantID: participantID}, nil)
	req.SetPathValue("id", contestID)
	return testutil.AsUser(req, u)
}

func TestCastVote(t *testing.T) {
	s := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(s, cache.NewMemoryCache(), cfg)

	active := testutil.CreateTestContest(t, s, models.StatusActive, "Ama", "Kofi")
	upcoming := testutil.CreateTestContest(t, s, models.StatusUpcoming, "Esi")
	ended := testutil.CreateTestContest(t, s, models.StatusEnded, "Yaw")

	waiting := testutil.CreateTestUser(t, s, models.RoleUser, 0)
	// spend the free slot so the next attempt must wait
	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(t, waiting, active.ID, active.Participants[0].ID))
	testutil.AssertStatus(t, w, http.StatusCreated)

	testCases := []struct {
		name          string
		user          models.User
		contestID     string
		participantID string
		expectedCode  int
		expectedErr   string
	}{
		{
			name:          "free vote",
			user:          testutil.CreateTestUser(t, s, models.RoleUser, 0),
			contestID:     active.ID,
			participantID: active.Participants[1].ID,
			expectedCode:  http.StatusCreated,
		},
		{
			name:          "credit vote",
			user:          testutil.CreateTestUser(t, s, models.RoleUser, 3),
			contestID:     active.ID,
			participantID: active.Participants[0].ID,
			expectedCode:  http.StatusCreated,
		},
		{
			name:          "free slot still closed",
			user:          waiting,
			contestID:     active.ID,
			participantID: active.Participants[0].ID,
			expectedCode:  http.StatusTooManyRequests,
			expectedErr:   voting.CodeVoteNotAllowed,
		},
		{
			name:          "unknown contest",
			user:          testutil.CreateTestUser(t, s, models.RoleUser, 1),
			contestID:     "missing",
			participantID: "p",
			expectedCode:  http.StatusNotFound,
			expectedErr:   "CONTEST_NOT_FOUND",
		},
		{
			name:          "unknown participant",
			user:          testutil.CreateTestUser(t, s, models.RoleUser, 1),
			contestID:     active.ID,
			participantID: "missing",
			expectedCode:  http.StatusNotFound,
			expectedErr:   "PARTICIPANT_NOT_FOUND",
		},
		{
			name:          "upcoming contest",
			user:          testutil.CreateTestUser(t, s, models.RoleUser, 1),
			contestID:     upcoming.ID,
			participantID: upcoming.Participants[0].ID,
			expectedCode:  http.StatusConflict,
			expectedErr:   voting.CodeContestNotActive,
		},
		{
			name:          "ended contest",
			user:          testutil.CreateTestUser(t, s, models.RoleUser, 1),
			contestID:     ended.ID,
			participantID: ended.Participants[0].ID,
			expectedCode:  http.StatusConflict,
			expectedErr:   voting.CodeContestNotActive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CastVote(w, castVoteRequest(t, tc.user, tc.contestID, tc.participantID))

			testutil.AssertStatus(t, w, tc.expectedCode)
			if tc.expectedErr != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Code != tc.expectedErr {
					t.Errorf("Expected code %s, got %s", tc.expectedErr, resp.Code)
				}
			}
		})
	}
}

func TestCastVote_SpendsCreditBeforeFreeSlot(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, cache.NewMemoryCache(), testutil.GetTestConfig())

	contest := testutil.CreateTestContest(t, s, models.StatusActive, "Ama")
	user := testutil.CreateTestUser(t, s, models.RoleUser, 3)

	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(t, user, contest.ID, contest.Participants[0].ID))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CastVoteResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Source != models.SourceCredit {
		t.Errorf("Expected credit source, got %s", resp.Source)
	}
	if resp.VotesRemaining != 2 {
		t.Errorf("Expected 2 votes remaining, got %d", resp.VotesRemaining)
	}
	if resp.LastFreeVote != 0 {
		t.Errorf("Expected free slot untouched, got %d", resp.LastFreeVote)
	}
	if resp.Contest.TotalVotes != 1 || resp.Contest.Participants[0].Votes != 1 {
		t.Errorf("Expected one recorded vote, got total %d", resp.Contest.TotalVotes)
	}
}

func TestCastVote_NotAllowedReportsWait(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, cache.NewMemoryCache(), testutil.GetTestConfig())

	contest := testutil.CreateTestContest(t, s, models.StatusActive, "Ama")
	user := testutil.CreateTestUser(t, s, models.RoleUser, 0)

	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(t, user, contest.ID, contest.Participants[0].ID))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(t, user, contest.ID, contest.Participants[0].ID))
	testutil.AssertStatus(t, w, http.StatusTooManyRequests)

	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	var resp struct {
		models.ErrorResponse
		Eligibility models.EligibilityResponse `json:"eligibility"`
	}
	testutil.AssertJSON(t, w, &resp)

	if resp.Eligibility.Allowed {
		t.Error("Expected not allowed")
	}
	if resp.Eligibility.WaitMS <= 0 || resp.Eligibility.WaitMS > voting.FreeVoteInterval.Milliseconds() {
		t.Errorf("Expected a wait within the free interval, got %d", resp.Eligibility.WaitMS)
	}

	stored, _ := s.GetContest(context.Background(), contest.ID)
	if stored.TotalVotes != 1 {
		t.Errorf("Rejected vote must not count, total is %d", stored.TotalVotes)
	}
}

func TestCastVote_InvalidatesLeaderboard(t *testing.T) {
	s := testutil.SetupTestStore(t)
	c := cache.NewMemoryCache()
	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(s, c, cfg)
	contestHandler := NewContestHandler(s, c, cfg)

	contest := testutil.CreateTestContest(t, s, models.StatusActive, "Ama", "Kofi")
	user := testutil.CreateTestUser(t, s, models.RoleUser, 5)

	leaderboard := func() (models.LeaderboardResponse, string) {
		req := httptest.NewRequest("GET", "/contests/"+contest.ID+"/leaderboard", nil)
		req.SetPathValue("id", contest.ID)
		w := httptest.NewRecorder()
		contestHandler.Leaderboard(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.LeaderboardResponse
		testutil.AssertJSON(t, w, &resp)
		return resp, w.Header().Get("X-Cache")
	}

	_, hit := leaderboard()
	if hit != "MISS" {
		t.Errorf("Expected first read to miss, got %s", hit)
	}
	_, hit = leaderboard()
	if hit != "HIT" {
		t.Errorf("Expected second read to hit, got %s", hit)
	}

	w := httptest.NewRecorder()
	votingHandler.CastVote(w, castVoteRequest(t, user, contest.ID, contest.Participants[1].ID))
	testutil.AssertStatus(t, w, http.StatusCreated)

	board, hit := leaderboard()
	if hit != "MISS" {
		t.Errorf("Expected vote to invalidate the cache, got %s", hit)
	}
	if board.Standings[0].Name != "Kofi" || board.Standings[0].Votes != 1 {
		t.Errorf("Expected Kofi to lead with 1 vote, got %+v", board.Standings[0])
	}
	if board.TotalVotes != 1 {
		t.Errorf("Expected total 1, got %d", board.TotalVotes)
	}
}

func TestCastVote_BadRequests(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, cache.NewMemoryCache(), testutil.GetTestConfig())
	user := testutil.CreateTestUser(t, s, models.RoleUser, 1)

	t.Run("missing participant", func(t *testing.T) {
		req := testutil.AsUser(testutil.MakeRequest("POST", "/contests/c/votes", map[string]string{}, nil), user)
		req.SetPathValue("id", "c")
		w := httptest.NewRecorder()
		handler.CastVote(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("anonymous", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/contests/c/votes", models.CastVoteRequest{ParticipantID: "p"}, nil)
		req.SetPathValue("id", "c")
		w := httptest.NewRecorder()
		handler.CastVote(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestEligibility(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewVotingHandler(s, cache.NewMemoryCache(), testutil.GetTestConfig())

	now := time.Now()
	testCases := []struct {
		name    string
		user    models.User
		allowed bool
		source  string
		minWait time.Duration
		maxWait time.Duration
	}{
		{
			name:    "never voted",
			user:    models.User{ID: "u1"},
			allowed: true,
			source:  models.SourceFree,
		},
		{
			name:    "has credits",
			user:    models.User{ID: "u2", VotesRemaining: 2, LastFreeVote: now.UnixMilli()},
			allowed: true,
			source:  models.SourceCredit,
		},
		{
			name:    "five minutes into the wait",
			user:    models.User{ID: "u3", LastFreeVote: now.Add(-5 * time.Minute).UnixMilli()},
			allowed: false,
			minWait: 4*time.Minute + 50*time.Second,
			maxWait: 5 * time.Minute,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.AsUser(httptest.NewRequest("GET", "/me/eligibility", nil), tc.user)
			w := httptest.NewRecorder()
			handler.Eligibility(w, req)
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.EligibilityResponse
			testutil.AssertJSON(t, w, &resp)

			if resp.Allowed != tc.allowed {
				t.Fatalf("Expected allowed=%v, got %v", tc.allowed, resp.Allowed)
			}
			if resp.Source != tc.source {
				t.Errorf("Expected source %q, got %q", tc.source, resp.Source)
			}
			wait := time.Duration(resp.WaitMS) * time.Millisecond
			if wait < tc.minWait || wait > tc.maxWait {
				t.Errorf("Expected wait in [%s, %s], got %s", tc.minWait, tc.maxWait, wait)
			}
			if tc.allowed && resp.Countdown != "0:00" {
				t.Errorf("Expected 0:00 countdown, got %s", resp.Countdown)
			}
			if !tc.allowed && resp.Countdown != "4:59" && resp.Countdown != "5:00" {
				t.Errorf("Expected a countdown near 5:00, got %s", resp.Countdown)
			}
		})
	}
}
