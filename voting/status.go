// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/voteup/models"
)

// StatusAt derives a contest's status from its window
func StatusAt(start, end time.Time, now time.Time) string {
	switch {
	case now.Before(start):
		return models.StatusUpcoming
	case !end.IsZero() && !now.Before(end):
		return models.StatusEnded
	default:
		return models.StatusActive
	}
}

// ValidateContest checks the fields an organizer must supply
func ValidateContest(req models.CreateContestRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidContest)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidContest)
	}
	if !req.EndDate.After(req.StartDate) {
		return fmt.Errorf("%w: end_date must be after start_date", ErrInvalidContest)
	}
	for _, p := range req.Participants {
		if err := ValidateParticipant(p); err != nil {
			return err
		}
	}
	return nil
}

func ValidateParticipant(req models.AddParticipantRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: participant name is required", ErrInvalidContest)
	}
	return nil
}

// AcceptsVotes reports whether c's voting window is open at now.
// The window is authoritative; a stored status may lag until reconciled.
func AcceptsVotes(c models.Contest, now time.Time) bool {
	return StatusAt(c.StartDate, c.EndDate, now) == models.StatusActive
}
