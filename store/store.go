// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/voting"
)

var (
	ErrDuplicate          = errors.New("duplicate record")
	ErrUserNotFound       = fmt.Errorf("user %w", voting.ErrNotFound)
	ErrPurchaseNotFound   = fmt.Errorf("purchase %w", voting.ErrNotFound)
	ErrPurchaseNotPending = errors.New("purchase is no longer pending")
)

// VoteReceipt is the state after a successful vote
type VoteReceipt struct {
	Contest models.Contest
	User    models.User
	Vote    models.Vote
}

// CommentFilter selects comments for one contest, optionally one participant
type CommentFilter struct {
	ContestID     string
	ParticipantID string
}

// Store persists users, contests, comments, and purchases.
//
// Every counter change is applied as a conditional update so that
// concurrent callers never lose increments or spend the same vote twice.
type Store interface {
	CreateUser(ctx context.Context, u models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	CreateContest(ctx context.Context, c models.Contest) error
	GetContest(ctx context.Context, id string) (models.Contest, error)
	// ListContests returns contests newest first; an empty status means all
	ListContests(ctx context.Context, status string) ([]models.Contest, error)
	// AddParticipant appends p after the existing participants
	AddParticipant(ctx context.Context, contestID string, p models.Participant) (models.Participant, error)
	// SyncStatuses moves contests whose window has opened or closed and
	// reports how many changed
	SyncStatuses(ctx context.Context, now time.Time) (int, error)

	// CastVote spends one credit (or the free slot) and records the vote
	CastVote(ctx context.Context, contestID, participantID, userID, ipHash string, now time.Time) (VoteReceipt, error)

	CreateTransaction(ctx context.Context, tx models.Transaction) error
	GetTransaction(ctx context.Context, reference string) (models.Transaction, error)
	// CompletePurchase settles a pending transaction and credits its votes once
	CompletePurchase(ctx context.Context, reference, providerRef string, now time.Time) (models.Transaction, models.User, error)
	// FailPurchase closes a pending transaction without crediting anything
	FailPurchase(ctx context.Context, reference string) (models.Transaction, error)
	// Revenue sums completed transactions in minor units
	Revenue(ctx context.Context) (int64, error)

	AddComment(ctx context.Context, c models.Comment) error
	GetComment(ctx context.Context, id string) (models.Comment, error)
	ListComments(ctx context.Context, f CommentFilter) ([]models.Comment, error)
	ToggleLike(ctx context.Context, commentID, userID string) (models.Comment, error)
	// DeleteComment removes the comment only when userID wrote it and
	// reports whether anything was removed
	DeleteComment(ctx context.Context, commentID, userID string) (bool, error)

	Close() error
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
