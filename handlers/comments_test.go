// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/store"
	"github.com/danielhkuo/voteup/testutil"
)

func addComment(t *testing.T, h *CommentHandler, u models.User, contestID string, req models.AddCommentRequest) *httptest.ResponseRecorder {
	t.Helper()
	r := testutil.AsUser(testutil.MakeRequest("POST", "/contests/"+contestID+"/comments", req, nil), u)
	r.SetPathValue("id", contestID)
	w := httptest.NewRecorder()
	h.Add(w, r)
	return w
}

func TestAddComment(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewCommentHandler(s, testutil.GetTestAuth(s))
	user := testutil.CreateTestUser(t, s, models.RoleUser, 0)
	contest := testutil.CreateTestContest(t, s, models.StatusActive, "Ama")

	testCases := []struct {
		name         string
		contestID    string
		request      models.AddCommentRequest
		expectedCode int
	}{
		{"contest comment", contest.ID, models.AddCommentRequest{Content: "  Go Ama!  "}, http.StatusCreated},
		{"participant comment", contest.ID, models.AddCommentRequest{Content: "Fine", ParticipantID: contest.Participants[0].ID}, http.StatusCreated},
		{"blank", contest.ID, models.AddCommentRequest{Content: "   "}, http.StatusBadRequest},
		{"too long", contest.ID, models.AddCommentRequest{Content: strings.Repeat("a", 501)}, http.StatusBadRequest},
		{"unknown contest", "nope", models.AddCommentRequest{Content: "hi"}, http.StatusNotFound},
		{"unknown participant", contest.ID, models.AddCommentRequest{Content: "hi", ParticipantID: "nope"}, http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := addComment(t, handler, user, tc.contestID, tc.request)
			testutil.AssertStatus(t, w, tc.expectedCode)
			if tc.expectedCode != http.StatusCreated {
				return
			}

			var view models.CommentView
			testutil.AssertJSON(t, w, &view)
			assert.Equal(t, strings.TrimSpace(tc.request.Content), view.Content)
			assert.Equal(t, user.ID, view.UserID)
			assert.Equal(t, user.Name, view.UserName)
			assert.Zero(t, view.Likes)
			assert.False(t, view.LikedByMe)
			assert.NotEmpty(t, view.TimeAgo)
		})
	}
}

func TestListComments(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewCommentHandler(s, testutil.GetTestAuth(s))
	author := testutil.CreateTestUser(t, s, models.RoleUser, 0)
	fan := testutil.CreateTestUser(t, s, models.RoleUser, 0)
	contest := testutil.CreateTestContest(t, s, models.StatusActive, "Ama", "Esi")

	require.Equal(t, http.StatusCreated, addComment(t, handler, author, contest.ID, models.AddCommentRequest{Content: "general"}).Code)
	w := addComment(t, handler, author, contest.ID, models.AddCommentRequest{Content: "for Esi", ParticipantID: contest.Participants[1].ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var esiComment models.CommentView
	testutil.AssertJSON(t, w, &esiComment)
	_, err := s.ToggleLike(context.Background(), esiComment.ID, fan.ID)
	require.NoError(t, err)

	list := func(query string, headers map[string]string) []models.CommentView {
		t.Helper()
		r := testutil.MakeRequest("GET", "/contests/"+contest.ID+"/comments"+query, nil, headers)
		r.SetPathValue("id", contest.ID)
		w := httptest.NewRecorder()
		handler.List(w, r)
		testutil.AssertStatus(t, w, http.StatusOK)

		var views []models.CommentView
		testutil.AssertJSON(t, w, &views)
		return views
	}

	t.Run("anonymous", func(t *testing.T) {
		views := list("", nil)
		require.Len(t, views, 2)
		for _, v := range views {
			assert.False(t, v.LikedByMe)
		}
	})

	t.Run("by participant", func(t *testing.T) {
		views := list("?participant_id="+contest.Participants[1].ID, nil)
		require.Len(t, views, 1)
		assert.Equal(t, "for Esi", views[0].Content)
		assert.Equal(t, 1, views[0].Likes)
	})

	t.Run("marks the viewer's likes", func(t *testing.T) {
		views := list("?participant_id="+contest.Participants[1].ID, testutil.AuthHeader(t, fan))
		require.Len(t, views, 1)
		assert.True(t, views[0].LikedByMe)
	})

	t.Run("bad token reads as anonymous", func(t *testing.T) {
		views := list("?participant_id="+contest.Participants[1].ID, map[string]string{"Authorization": "Bearer junk"})
		require.Len(t, views, 1)
		assert.False(t, views[0].LikedByMe)
	})

	t.Run("unknown contest", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/contests/nope/comments", nil)
		r.SetPathValue("id", "nope")
		w := httptest.NewRecorder()
		handler.List(w, r)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestToggleLike(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewCommentHandler(s, nil)
	author := testutil.CreateTestUser(t, s, models.RoleUser, 0)
	fan := testutil.CreateTestUser(t, s, models.RoleUser, 0)
	contest := testutil.CreateTestContest(t, s, models.StatusActive, "Ama")

	w := addComment(t, handler, author, contest.ID, models.AddCommentRequest{Content: "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.CommentView
	testutil.AssertJSON(t, w, &comment)

	like := func(u models.User, id string) *httptest.ResponseRecorder {
		r := testutil.AsUser(httptest.NewRequest("POST", "/comments/"+id+"/like", nil), u)
		r.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.ToggleLike(w, r)
		return w
	}

	steps := []struct {
		user      models.User
		wantLikes int
		wantMine  bool
	}{
		{fan, 1, true},
		{author, 2, true},
		{fan, 1, false},
		{fan, 2, true},
	}
	for i, step := range steps {
		w := like(step.user, comment.ID)
		testutil.AssertStatus(t, w, http.StatusOK)

		var view models.CommentView
		testutil.AssertJSON(t, w, &view)
		assert.Equal(t, step.wantLikes, view.Likes, "step %d", i)
		assert.Equal(t, step.wantMine, view.LikedByMe, "step %d", i)
		assert.Len(t, view.LikedBy, view.Likes, "step %d", i)
	}

	testutil.AssertStatus(t, like(fan, "nope"), http.StatusNotFound)
}

func TestDeleteComment(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewCommentHandler(s, nil)
	author := testutil.CreateTestUser(t, s, models.RoleUser, 0)
	other := testutil.CreateTestUser(t, s, models.RoleUser, 0)
	contest := testutil.CreateTestContest(t, s, models.StatusActive, "Ama")

	w := addComment(t, handler, author, contest.ID, models.AddCommentRequest{Content: "mine"})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.CommentView
	testutil.AssertJSON(t, w, &comment)

	del := func(u models.User, id string) *httptest.ResponseRecorder {
		r := testutil.AsUser(httptest.NewRequest("DELETE", "/comments/"+id, nil), u)
		r.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Delete(w, r)
		return w
	}

	// someone else's comment stays put
	testutil.AssertStatus(t, del(other, comment.ID), http.StatusNoContent)
	_, err := s.GetComment(context.Background(), comment.ID)
	require.NoError(t, err)

	testutil.AssertStatus(t, del(author, comment.ID), http.StatusNoContent)
	_, err = s.GetComment(context.Background(), comment.ID)
	assert.Error(t, err)

	// unknown ids are a no-op as well
	testutil.AssertStatus(t, del(author, comment.ID), http.StatusNoContent)

	remaining, err := s.ListComments(context.Background(), store.CommentFilter{ContestID: contest.ID})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
