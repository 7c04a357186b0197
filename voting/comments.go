// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/voteup/models"
)

// MaxCommentLength is counted in characters, not bytes
const MaxCommentLength = 500

// ValidateComment trims content and checks its length
func ValidateComment(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: content is required", ErrInvalidComment)
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return "", fmt.Errorf("%w: content must be at most %d characters", ErrInvalidComment, MaxCommentLength)
	}
	return content, nil
}

// ToggleLike adds userID to the comment's likes, or removes it if present.
// Likes always equals len(LikedBy) on the result.
func ToggleLike(c models.Comment, userID string) models.Comment {
	liked := make([]string, 0, len(c.LikedBy)+1)
	found := false
	for _, id := range c.LikedBy {
		if id == userID {
			found = true
			continue
		}
		liked = append(liked, id)
	}
	if !found {
		liked = append(liked, userID)
	}

	c.LikedBy = liked
	c.Likes = len(liked)
	return c
}

// LikedBy reports whether userID has liked c
func LikedBy(c models.Comment, userID string) bool {
	for _, id := range c.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// DeleteComment removes commentID from comments when userID wrote it.
// Any other request returns the collection unchanged.
func DeleteComment(comments []models.Comment, commentID, userID string) []models.Comment {
	out := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.ID == commentID && c.UserID == userID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SortNewestFirst orders comments by creation time, newest first
func SortNewestFirst(comments []models.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
}
