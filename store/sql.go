// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/voting"
)

// SQLStore implements Store on PostgreSQL or SQLite through sqlx.
// Queries are written with ? placeholders and rebound for the driver.
type SQLStore struct {
	db *sqlx.DB
}

var _ Store = (*SQLStore)(nil)

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) q(query string) string {
	return s.db.Rebind(query)
}

// isUniqueViolation recognizes unique/primary key failures from either driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
		// without extended result codes only the primary code is set
		return code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

func rowsAffected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Users

const userColumns = `id, email, name, role, password_hash, votes_remaining, last_free_vote, created_at`

type userRow struct {
	ID             string `db:"id"`
	Email          string `db:"email"`
	Name           string `db:"name"`
	Role           string `db:"role"`
	PasswordHash   string `db:"password_hash"`
	VotesRemaining int    `db:"votes_remaining"`
	LastFreeVote   int64  `db:"last_free_vote"`
	CreatedAt      int64  `db:"created_at"`
}

func (r userRow) model() models.User {
	return models.User{
		ID:             r.ID,
		Email:          r.Email,
		Name:           r.Name,
		Role:           r.Role,
		PasswordHash:   r.PasswordHash,
		VotesRemaining: r.VotesRemaining,
		LastFreeVote:   r.LastFreeVote,
		CreatedAt:      fromMillis(r.CreatedAt),
	}
}

func (s *SQLStore) CreateUser(ctx context.Context, u models.User) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), u.ID, u.Email, u.Name, u.Role, u.PasswordHash, u.VotesRemaining, u.LastFreeVote, toMillis(u.CreatedAt))
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLStore) getUser(ctx context.Context, q sqlx.QueryerContext, where string, arg any) (models.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, q, &row, s.q(`SELECT `+userColumns+` FROM users WHERE `+where+` = ?`), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("query user: %w", err)
	}
	return row.model(), nil
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.getUser(ctx, s.db, "id", id)
}

func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.getUser(ctx, s.db, "email", email)
}

// Contests

const contestColumns = `id, title, description, image_url, prize, start_date, end_date, organizer_id, status, total_votes, created_at`
const participantColumns = `id, contest_id, name, bio, image, votes, position`

type contestRow struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	ImageURL    string `db:"image_url"`
	Prize       string `db:"prize"`
	StartDate   int64  `db:"start_date"`
	EndDate     int64  `db:"end_date"`
	OrganizerID string `db:"organizer_id"`
	Status      string `db:"status"`
	TotalVotes  int    `db:"total_votes"`
	CreatedAt   int64  `db:"created_at"`
}

func (r contestRow) model() models.Contest {
	return models.Contest{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		Prize:        r.Prize,
		StartDate:    fromMillis(r.StartDate),
		EndDate:      fromMillis(r.EndDate),
		OrganizerID:  r.OrganizerID,
		Status:       r.Status,
		TotalVotes:   r.TotalVotes,
		CreatedAt:    fromMillis(r.CreatedAt),
		Participants: []models.Participant{},
	}
}

type participantRow struct {
	ID        string `db:"id"`
	ContestID string `db:"contest_id"`
	Name      string `db:"name"`
	Bio       string `db:"bio"`
	Image     string `db:"image"`
	Votes     int    `db:"votes"`
	Position  int    `db:"position"`
}

func (r participantRow) model() models.Participant {
	return models.Participant{
		ID:        r.ID,
		ContestID: r.ContestID,
		Name:      r.Name,
		Bio:       r.Bio,
		Image:     r.Image,
		Votes:     r.Votes,
		Position:  r.Position,
	}
}

func (s *SQLStore) CreateContest(ctx context.Context, c models.Contest) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO contests (`+contestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), c.ID, c.Title, c.Description, c.ImageURL, c.Prize, toMillis(c.StartDate), toMillis(c.EndDate),
		c.OrganizerID, c.Status, 0, toMillis(c.CreatedAt))
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert contest: %w", err)
	}

	for i, p := range c.Participants {
		if err := s.insertParticipant(ctx, tx, c.ID, p, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLStore) insertParticipant(ctx context.Context, tx *sqlx.Tx, contestID string, p models.Participant, position int) error {
	_, err := tx.ExecContext(ctx, s.q(`
		INSERT INTO participants (`+participantColumns+`)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`), p.ID, contestID, p.Name, p.Bio, p.Image, position)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

func (s *SQLStore) getContest(ctx context.Context, q sqlx.QueryerContext, id string) (models.Contest, error) {
	var row contestRow
	err := sqlx.GetContext(ctx, q, &row, s.q(`SELECT `+contestColumns+` FROM contests WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contest{}, voting.ErrContestNotFound
	}
	if err != nil {
		return models.Contest{}, fmt.Errorf("query contest: %w", err)
	}

	c := row.model()
	var prows []participantRow
	err = sqlx.SelectContext(ctx, q, &prows, s.q(`
		SELECT `+participantColumns+` FROM participants
		WHERE contest_id = ?
		ORDER BY position, id
	`), id)
	if err != nil {
		return models.Contest{}, fmt.Errorf("query participants: %w", err)
	}
	for _, p := range prows {
		c.Participants = append(c.Participants, p.model())
	}
	return c, nil
}

func (s *SQLStore) GetContest(ctx context.Context, id string) (models.Contest, error) {
	return s.getContest(ctx, s.db, id)
}

func (s *SQLStore) ListContests(ctx context.Context, status string) ([]models.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id`

	var rows []contestRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, s.q(query), args...); err != nil {
		return nil, fmt.Errorf("query contests: %w", err)
	}

	contests := make([]models.Contest, len(rows))
	if len(rows) == 0 {
		return contests, nil
	}

	index := make(map[string]int, len(rows))
	ids := make([]string, len(rows))
	for i, r := range rows {
		contests[i] = r.model()
		index[r.ID] = i
		ids[i] = r.ID
	}

	pquery, pargs, err := sqlx.In(`
		SELECT `+participantColumns+` FROM participants
		WHERE contest_id IN (?)
		ORDER BY contest_id, position, id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("build participant query: %w", err)
	}

	var prows []participantRow
	if err := sqlx.SelectContext(ctx, s.db, &prows, s.q(pquery), pargs...); err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	for _, p := range prows {
		i := index[p.ContestID]
		contests[i].Participants = append(contests[i].Participants, p.model())
	}

	return contests, nil
}

func (s *SQLStore) AddParticipant(ctx context.Context, contestID string, p models.Participant) (models.Participant, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Participant{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.GetContext(ctx, &exists, s.q(`SELECT COUNT(*) FROM contests WHERE id = ?`), contestID)
	if err != nil {
		return models.Participant{}, fmt.Errorf("query contest: %w", err)
	}
	if exists == 0 {
		return models.Participant{}, voting.ErrContestNotFound
	}

	var next int
	err = tx.GetContext(ctx, &next, s.q(`
		SELECT COALESCE(MAX(position), -1) + 1 FROM participants WHERE contest_id = ?
	`), contestID)
	if err != nil {
		return models.Participant{}, fmt.Errorf("query position: %w", err)
	}

	if err := s.insertParticipant(ctx, tx, contestID, p, next); err != nil {
		return models.Participant{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Participant{}, fmt.Errorf("commit: %w", err)
	}

	p.ContestID = contestID
	p.Votes = 0
	p.Position = next
	return p, nil
}

func (s *SQLStore) SyncStatuses(ctx context.Context, now time.Time) (int, error) {
	ms := now.UnixMilli()

	ended, err := rowsAffected(s.db.ExecContext(ctx, s.q(`
		UPDATE contests SET status = 'ended'
		WHERE status <> 'ended' AND end_date <= ?
	`), ms))
	if err != nil {
		return 0, fmt.Errorf("end contests: %w", err)
	}

	opened, err := rowsAffected(s.db.ExecContext(ctx, s.q(`
		UPDATE contests SET status = 'active'
		WHERE status = 'upcoming' AND start_date <= ? AND end_date > ?
	`), ms, ms))
	if err != nil {
		return 0, fmt.Errorf("open contests: %w", err)
	}

	return int(ended + opened), nil
}

// Votes

func (s *SQLStore) CastVote(ctx context.Context, contestID, participantID, userID, ipHash string, now time.Time) (VoteReceipt, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return VoteReceipt{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	c, err := s.getContest(ctx, tx, contestID)
	if err != nil {
		return VoteReceipt{}, err
	}
	if !voting.AcceptsVotes(c, now) {
		return VoteReceipt{}, voting.ErrContestNotActive
	}
	if _, ok := voting.FindParticipant(c, participantID); !ok {
		return VoteReceipt{}, voting.ErrParticipantNotFound
	}

	u, err := s.getUser(ctx, tx, "id", userID)
	if err != nil {
		return VoteReceipt{}, err
	}
	elig := voting.CanVote(u, now)
	if !elig.Allowed {
		return VoteReceipt{}, voting.ErrVoteNotAllowed
	}

	// The WHERE guards re-check entitlement at write time, so a concurrent
	// vote that got there first makes this one affect zero rows.
	spendCredit := func() (int64, error) {
		return rowsAffected(tx.ExecContext(ctx, s.q(`
			UPDATE users SET votes_remaining = votes_remaining - 1
			WHERE id = ? AND votes_remaining > 0
		`), userID))
	}
	claimFreeSlot := func() (int64, error) {
		cutoff := now.Add(-voting.FreeVoteInterval).UnixMilli()
		return rowsAffected(tx.ExecContext(ctx, s.q(`
			UPDATE users SET last_free_vote = ?
			WHERE id = ? AND votes_remaining = 0 AND last_free_vote <= ?
		`), now.UnixMilli(), userID, cutoff))
	}

	source := elig.Source()
	var n int64
	if source == models.SourceCredit {
		if n, err = spendCredit(); err != nil {
			return VoteReceipt{}, fmt.Errorf("spend vote: %w", err)
		}
		// the last credit went to a concurrent vote; the free slot may still be open
		if n == 0 {
			source = models.SourceFree
		}
	}
	if source == models.SourceFree {
		if n, err = claimFreeSlot(); err != nil {
			return VoteReceipt{}, fmt.Errorf("spend vote: %w", err)
		}
	}
	if n == 0 {
		return VoteReceipt{}, voting.ErrVoteNotAllowed
	}

	n, err = rowsAffected(tx.ExecContext(ctx, s.q(`
		UPDATE participants SET votes = votes + 1
		WHERE id = ? AND contest_id = ?
	`), participantID, contestID))
	if err != nil {
		return VoteReceipt{}, fmt.Errorf("increment participant: %w", err)
	}
	if n == 0 {
		return VoteReceipt{}, voting.ErrParticipantNotFound
	}

	_, err = tx.ExecContext(ctx, s.q(`
		UPDATE contests SET total_votes = total_votes + 1 WHERE id = ?
	`), contestID)
	if err != nil {
		return VoteReceipt{}, fmt.Errorf("increment contest: %w", err)
	}

	vote := models.Vote{
		ID:            uuid.NewString(),
		ContestID:     contestID,
		ParticipantID: participantID,
		UserID:        userID,
		Source:        source,
		CastAt:        now,
	}
	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO votes (id, contest_id, participant_id, user_id, source, ip_hash, cast_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), vote.ID, contestID, participantID, userID, vote.Source, ipHash, now.UnixMilli())
	if err != nil {
		return VoteReceipt{}, fmt.Errorf("insert vote: %w", err)
	}

	c, err = s.getContest(ctx, tx, contestID)
	if err != nil {
		return VoteReceipt{}, err
	}
	u, err = s.getUser(ctx, tx, "id", userID)
	if err != nil {
		return VoteReceipt{}, err
	}

	if err := tx.Commit(); err != nil {
		return VoteReceipt{}, fmt.Errorf("commit: %w", err)
	}

	return VoteReceipt{Contest: c, User: u, Vote: vote}, nil
}

// Purchases

const transactionColumns = `id, user_id, pack_id, reference, amount, currency, votes_received, status, provider_ref, created_at, completed_at`

type transactionRow struct {
	ID            string        `db:"id"`
	UserID        string        `db:"user_id"`
	PackID        string        `db:"pack_id"`
	Reference     string        `db:"reference"`
	Amount        int64         `db:"amount"`
	Currency      string        `db:"currency"`
	VotesReceived int           `db:"votes_received"`
	Status        string        `db:"status"`
	ProviderRef   string        `db:"provider_ref"`
	CreatedAt     int64         `db:"created_at"`
	CompletedAt   sql.NullInt64 `db:"completed_at"`
}

func (r transactionRow) model() models.Transaction {
	t := models.Transaction{
		ID:            r.ID,
		UserID:        r.UserID,
		PackID:        r.PackID,
		Reference:     r.Reference,
		Amount:        r.Amount,
		Currency:      r.Currency,
		VotesReceived: r.VotesReceived,
		Status:        r.Status,
		ProviderRef:   r.ProviderRef,
		CreatedAt:     fromMillis(r.CreatedAt),
	}
	if r.CompletedAt.Valid {
		done := fromMillis(r.CompletedAt.Int64)
		t.CompletedAt = &done
	}
	return t
}

func (s *SQLStore) CreateTransaction(ctx context.Context, t models.Transaction) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`), t.ID, t.UserID, t.PackID, t.Reference, t.Amount, t.Currency, t.VotesReceived,
		models.TxPending, t.ProviderRef, toMillis(t.CreatedAt))
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *SQLStore) getTransaction(ctx context.Context, q sqlx.QueryerContext, reference string) (models.Transaction, error) {
	var row transactionRow
	err := sqlx.GetContext(ctx, q, &row, s.q(`SELECT `+transactionColumns+` FROM transactions WHERE reference = ?`), reference)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrPurchaseNotFound
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("query transaction: %w", err)
	}
	return row.model(), nil
}

func (s *SQLStore) GetTransaction(ctx context.Context, reference string) (models.Transaction, error) {
	return s.getTransaction(ctx, s.db, reference)
}

func (s *SQLStore) CompletePurchase(ctx context.Context, reference, providerRef string, now time.Time) (models.Transaction, models.User, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Transaction{}, models.User{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	t, err := s.getTransaction(ctx, tx, reference)
	if err != nil {
		return models.Transaction{}, models.User{}, err
	}

	n, err := rowsAffected(tx.ExecContext(ctx, s.q(`
		UPDATE transactions SET status = 'completed', provider_ref = ?, completed_at = ?
		WHERE reference = ? AND status = 'pending'
	`), providerRef, now.UnixMilli(), reference))
	if err != nil {
		return models.Transaction{}, models.User{}, fmt.Errorf("complete transaction: %w", err)
	}
	if n == 0 {
		return models.Transaction{}, models.User{}, ErrPurchaseNotPending
	}

	n, err = rowsAffected(tx.ExecContext(ctx, s.q(`
		UPDATE users SET votes_remaining = votes_remaining + ? WHERE id = ?
	`), t.VotesReceived, t.UserID))
	if err != nil {
		return models.Transaction{}, models.User{}, fmt.Errorf("credit votes: %w", err)
	}
	if n == 0 {
		return models.Transaction{}, models.User{}, ErrUserNotFound
	}

	if t, err = s.getTransaction(ctx, tx, reference); err != nil {
		return models.Transaction{}, models.User{}, err
	}
	u, err := s.getUser(ctx, tx, "id", t.UserID)
	if err != nil {
		return models.Transaction{}, models.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Transaction{}, models.User{}, fmt.Errorf("commit: %w", err)
	}
	return t, u, nil
}

func (s *SQLStore) FailPurchase(ctx context.Context, reference string) (models.Transaction, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.getTransaction(ctx, tx, reference); err != nil {
		return models.Transaction{}, err
	}

	n, err := rowsAffected(tx.ExecContext(ctx, s.q(`
		UPDATE transactions SET status = 'failed'
		WHERE reference = ? AND status = 'pending'
	`), reference))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("fail transaction: %w", err)
	}
	if n == 0 {
		return models.Transaction{}, ErrPurchaseNotPending
	}

	t, err := s.getTransaction(ctx, tx, reference)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Transaction{}, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

func (s *SQLStore) Revenue(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE status = 'completed'`)
	if err != nil {
		return 0, fmt.Errorf("sum revenue: %w", err)
	}
	return total, nil
}

// Comments

const commentColumns = `id, user_id, user_name, contest_id, participant_id, content, likes, created_at`

type commentRow struct {
	ID            string `db:"id"`
	UserID        string `db:"user_id"`
	UserName      string `db:"user_name"`
	ContestID     string `db:"contest_id"`
	ParticipantID string `db:"participant_id"`
	Content       string `db:"content"`
	Likes         int    `db:"likes"`
	CreatedAt     int64  `db:"created_at"`
}

func (r commentRow) model() models.Comment {
	return models.Comment{
		ID:            r.ID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		ContestID:     r.ContestID,
		ParticipantID: r.ParticipantID,
		Content:       r.Content,
		Likes:         r.Likes,
		LikedBy:       []string{},
		CreatedAt:     fromMillis(r.CreatedAt),
	}
}

type likeRow struct {
	CommentID string `db:"comment_id"`
	UserID    string `db:"user_id"`
}

func (s *SQLStore) AddComment(ctx context.Context, c models.Comment) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	contest, err := s.getContest(ctx, tx, c.ContestID)
	if err != nil {
		return err
	}
	if c.ParticipantID != "" {
		if _, ok := voting.FindParticipant(contest, c.ParticipantID); !ok {
			return voting.ErrParticipantNotFound
		}
	}

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO comments (`+commentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)
	`), c.ID, c.UserID, c.UserName, c.ContestID, c.ParticipantID, c.Content, toMillis(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return tx.Commit()
}

// attachLikes fills LikedBy for each comment and keeps Likes equal to its length
func (s *SQLStore) attachLikes(ctx context.Context, q sqlx.QueryerContext, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]string, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	query, args, err := sqlx.In(`
		SELECT comment_id, user_id FROM comment_likes
		WHERE comment_id IN (?)
		ORDER BY comment_id, user_id
	`, ids)
	if err != nil {
		return fmt.Errorf("build likes query: %w", err)
	}

	var rows []likeRow
	if err := sqlx.SelectContext(ctx, q, &rows, s.q(query), args...); err != nil {
		return fmt.Errorf("query likes: %w", err)
	}

	byComment := make(map[string][]string)
	for _, r := range rows {
		byComment[r.CommentID] = append(byComment[r.CommentID], r.UserID)
	}
	for i := range comments {
		if liked, ok := byComment[comments[i].ID]; ok {
			comments[i].LikedBy = liked
		}
		comments[i].Likes = len(comments[i].LikedBy)
	}
	return nil
}

func (s *SQLStore) getComment(ctx context.Context, q sqlx.QueryerContext, id string) (models.Comment, error) {
	var row commentRow
	err := sqlx.GetContext(ctx, q, &row, s.q(`SELECT `+commentColumns+` FROM comments WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Comment{}, voting.ErrCommentNotFound
	}
	if err != nil {
		return models.Comment{}, fmt.Errorf("query comment: %w", err)
	}

	out := []models.Comment{row.model()}
	if err := s.attachLikes(ctx, q, out); err != nil {
		return models.Comment{}, err
	}
	return out[0], nil
}

func (s *SQLStore) GetComment(ctx context.Context, id string) (models.Comment, error) {
	return s.getComment(ctx, s.db, id)
}

func (s *SQLStore) ListComments(ctx context.Context, f CommentFilter) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE contest_id = ?`
	args := []any{f.ContestID}
	if f.ParticipantID != "" {
		query += ` AND participant_id = ?`
		args = append(args, f.ParticipantID)
	}
	query += ` ORDER BY created_at DESC, id`

	var rows []commentRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, s.q(query), args...); err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}

	comments := make([]models.Comment, len(rows))
	for i, r := range rows {
		comments[i] = r.model()
	}
	if err := s.attachLikes(ctx, s.db, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *SQLStore) ToggleLike(ctx context.Context, commentID, userID string) (models.Comment, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Comment{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.getComment(ctx, tx, commentID); err != nil {
		return models.Comment{}, err
	}

	// a concurrent toggle that already inserted the row turns this one
	// into an unlike instead of a primary key violation
	added, err := rowsAffected(tx.ExecContext(ctx, s.q(`
		INSERT INTO comment_likes (comment_id, user_id) VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`), commentID, userID))
	if err != nil {
		return models.Comment{}, fmt.Errorf("like: %w", err)
	}
	if added == 0 {
		_, err = tx.ExecContext(ctx, s.q(`
			DELETE FROM comment_likes WHERE comment_id = ? AND user_id = ?
		`), commentID, userID)
		if err != nil {
			return models.Comment{}, fmt.Errorf("unlike: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, s.q(`
		UPDATE comments
		SET likes = (SELECT COUNT(*) FROM comment_likes WHERE comment_id = ?)
		WHERE id = ?
	`), commentID, commentID)
	if err != nil {
		return models.Comment{}, fmt.Errorf("recount likes: %w", err)
	}

	c, err := s.getComment(ctx, tx, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Comment{}, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

func (s *SQLStore) DeleteComment(ctx context.Context, commentID, userID string) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	n, err := rowsAffected(tx.ExecContext(ctx, s.q(`
		DELETE FROM comments WHERE id = ? AND user_id = ?
	`), commentID, userID))
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, s.q(`DELETE FROM comment_likes WHERE comment_id = ?`), commentID)
	if err != nil {
		return false, fmt.Errorf("delete likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}
