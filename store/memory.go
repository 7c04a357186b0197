// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/voting"
)

// MemoryStore implements Store in process memory.
// A single mutex serializes every operation, which makes each one atomic.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[string]models.User
	emails       map[string]string
	contests     map[string]models.Contest
	comments     map[string]models.Comment
	transactions map[string]models.Transaction
	votes        []models.Vote
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]models.User),
		emails:       make(map[string]string),
		contests:     make(map[string]models.Contest),
		comments:     make(map[string]models.Comment),
		transactions: make(map[string]models.Transaction),
	}
}

func (m *MemoryStore) Close() error {
	return nil
}

// cloneContest detaches the participant slice from the stored copy
func cloneContest(c models.Contest) models.Contest {
	ps := make([]models.Participant, len(c.Participants))
	copy(ps, c.Participants)
	c.Participants = ps
	return c
}

func cloneComment(c models.Comment) models.Comment {
	liked := make([]string, len(c.LikedBy))
	copy(liked, c.LikedBy)
	c.LikedBy = liked
	return c
}

func (m *MemoryStore) CreateUser(ctx context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.ID]; ok {
		return ErrDuplicate
	}
	if _, ok := m.emails[u.Email]; ok {
		return ErrDuplicate
	}
	m.users[u.ID] = u
	m.emails[u.Email] = u.ID
	return nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.emails[email]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return m.users[id], nil
}

func (m *MemoryStore) CreateContest(ctx context.Context, c models.Contest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contests[c.ID]; ok {
		return ErrDuplicate
	}

	c = cloneContest(c)
	for i := range c.Participants {
		c.Participants[i].ContestID = c.ID
		c.Participants[i].Votes = 0
		c.Participants[i].Position = i
	}
	c.TotalVotes = 0
	m.contests[c.ID] = c
	return nil
}

func (m *MemoryStore) GetContest(ctx context.Context, id string) (models.Contest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contests[id]
	if !ok {
		return models.Contest{}, voting.ErrContestNotFound
	}
	return cloneContest(c), nil
}

func (m *MemoryStore) ListContests(ctx context.Context, status string) ([]models.Contest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Contest, 0, len(m.contests))
	for _, c := range m.contests {
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, cloneContest(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) AddParticipant(ctx context.Context, contestID string, p models.Participant) (models.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contests[contestID]
	if !ok {
		return models.Participant{}, voting.ErrContestNotFound
	}
	if _, exists := voting.FindParticipant(c, p.ID); exists {
		return models.Participant{}, ErrDuplicate
	}

	p.ContestID = contestID
	p.Votes = 0
	p.Position = len(c.Participants)

	c = cloneContest(c)
	c.Participants = append(c.Participants, p)
	m.contests[contestID] = c
	return p, nil
}

func (m *MemoryStore) SyncStatuses(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	changed := 0
	for id, c := range m.contests {
		next := voting.StatusAt(c.StartDate, c.EndDate, now)
		// status only moves forward
		if next == c.Status || (c.Status == models.StatusEnded) {
			continue
		}
		if c.Status == models.StatusActive && next == models.StatusUpcoming {
			continue
		}
		c.Status = next
		m.contests[id] = c
		changed++
	}
	return changed, nil
}

func (m *MemoryStore) CastVote(ctx context.Context, contestID, participantID, userID, ipHash string, now time.Time) (VoteReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contests[contestID]
	if !ok {
		return VoteReceipt{}, voting.ErrContestNotFound
	}
	if !voting.AcceptsVotes(c, now) {
		return VoteReceipt{}, voting.ErrContestNotActive
	}
	u, ok := m.users[userID]
	if !ok {
		return VoteReceipt{}, ErrUserNotFound
	}

	source := voting.CanVote(u, now).Source()
	c, u, err := voting.CastVote(c, participantID, u, now)
	if err != nil {
		return VoteReceipt{}, err
	}

	vote := models.Vote{
		ID:            uuid.NewString(),
		ContestID:     contestID,
		ParticipantID: participantID,
		UserID:        userID,
		Source:        source,
		CastAt:        now,
	}
	m.contests[contestID] = c
	m.users[userID] = u
	m.votes = append(m.votes, vote)

	return VoteReceipt{Contest: cloneContest(c), User: u, Vote: vote}, nil
}

func (m *MemoryStore) CreateTransaction(ctx context.Context, t models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[t.Reference]; ok {
		return ErrDuplicate
	}
	t.Status = models.TxPending
	t.CompletedAt = nil
	m.transactions[t.Reference] = t
	return nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, reference string) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transactions[reference]
	if !ok {
		return models.Transaction{}, ErrPurchaseNotFound
	}
	return t, nil
}

func (m *MemoryStore) CompletePurchase(ctx context.Context, reference, providerRef string, now time.Time) (models.Transaction, models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transactions[reference]
	if !ok {
		return models.Transaction{}, models.User{}, ErrPurchaseNotFound
	}
	if t.Status != models.TxPending {
		return models.Transaction{}, models.User{}, ErrPurchaseNotPending
	}
	u, ok := m.users[t.UserID]
	if !ok {
		return models.Transaction{}, models.User{}, ErrUserNotFound
	}

	u = voting.ApplyPurchase(u, models.VotePack{ID: t.PackID, Votes: t.VotesReceived})
	done := now.UTC()
	t.Status = models.TxCompleted
	t.ProviderRef = providerRef
	t.CompletedAt = &done

	m.users[u.ID] = u
	m.transactions[reference] = t
	return t, u, nil
}

func (m *MemoryStore) FailPurchase(ctx context.Context, reference string) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transactions[reference]
	if !ok {
		return models.Transaction{}, ErrPurchaseNotFound
	}
	if t.Status != models.TxPending {
		return models.Transaction{}, ErrPurchaseNotPending
	}
	t.Status = models.TxFailed
	m.transactions[reference] = t
	return t, nil
}

func (m *MemoryStore) Revenue(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total int64
	for _, t := range m.transactions {
		if t.Status == models.TxCompleted {
			total += t.Amount
		}
	}
	return total, nil
}

func (m *MemoryStore) AddComment(ctx context.Context, c models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	contest, ok := m.contests[c.ContestID]
	if !ok {
		return voting.ErrContestNotFound
	}
	if c.ParticipantID != "" {
		if _, ok := voting.FindParticipant(contest, c.ParticipantID); !ok {
			return voting.ErrParticipantNotFound
		}
	}
	if _, ok := m.comments[c.ID]; ok {
		return ErrDuplicate
	}

	c.Likes = 0
	c.LikedBy = []string{}
	m.comments[c.ID] = c
	return nil
}

func (m *MemoryStore) GetComment(ctx context.Context, id string) (models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[id]
	if !ok {
		return models.Comment{}, voting.ErrCommentNotFound
	}
	return cloneComment(c), nil
}

func (m *MemoryStore) ListComments(ctx context.Context, f CommentFilter) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Comment{}
	for _, c := range m.comments {
		if c.ContestID != f.ContestID {
			continue
		}
		if f.ParticipantID != "" && c.ParticipantID != f.ParticipantID {
			continue
		}
		out = append(out, cloneComment(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	voting.SortNewestFirst(out)
	return out, nil
}

func (m *MemoryStore) ToggleLike(ctx context.Context, commentID, userID string) (models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[commentID]
	if !ok {
		return models.Comment{}, voting.ErrCommentNotFound
	}
	c = voting.ToggleLike(c, userID)
	m.comments[commentID] = c
	return cloneComment(c), nil
}

func (m *MemoryStore) DeleteComment(ctx context.Context, commentID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.comments[commentID]
	if !ok {
		return false, nil
	}
	remaining := voting.DeleteComment([]models.Comment{c}, commentID, userID)
	if len(remaining) == 1 {
		return false, nil
	}
	delete(m.comments, commentID)
	return true, nil
}
