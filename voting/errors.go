// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrContestNotFound     = fmt.Errorf("contest %w", ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("participant %w", ErrNotFound)
	ErrCommentNotFound     = fmt.Errorf("comment %w", ErrNotFound)
	ErrPackNotFound        = fmt.Errorf("vote pack %w", ErrNotFound)

	ErrVoteNotAllowed   = errors.New("no vote available")
	ErrContestNotActive = errors.New("contest is not active")
	ErrInvalidComment   = errors.New("invalid comment")
	ErrInvalidContest   = errors.New("invalid contest")
)

// Error codes returned to API clients alongside the HTTP status
const (
	CodeNotFound         = "NOT_FOUND"
	CodeVoteNotAllowed   = "VOTE_NOT_ALLOWED"
	CodeContestNotActive = "CONTEST_NOT_ACTIVE"
	CodeInvalidComment   = "INVALID_COMMENT"
	CodeInvalidContest   = "INVALID_CONTEST"
)
