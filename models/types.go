// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Contest status constants
const (
	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusEnded    = "ended"
)

// User role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Transaction status constants
const (
	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
)

// Vote source constants
const (
	SourceCredit = "credit"
	SourceFree   = "free"
)

// Request types

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateContestRequest struct {
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	ImageURL     string                  `json:"image_url"`
	Prize        string                  `json:"prize"`
	StartDate    time.Time               `json:"start_date"`
	EndDate      time.Time               `json:"end_date"`
	Participants []AddParticipantRequest `json:"participants"`
}

type AddParticipantRequest struct {
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Image string `json:"image"`
}

type CastVoteRequest struct {
	ParticipantID string `json:"participant_id"`
}

type BeginPurchaseRequest struct {
	PackID string `json:"pack_id"`
}

// TransactionRef is the provider reference handed back by the payment widget
type ConfirmPurchaseRequest struct {
	TransactionRef string `json:"transaction_ref"`
}

type AddCommentRequest struct {
	Content       string `json:"content"`
	ParticipantID string `json:"participant_id,omitempty"`
}

// Response types

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type EligibilityResponse struct {
	Allowed      bool   `json:"allowed"`
	Source       string `json:"source,omitempty"`
	WaitMS       int64  `json:"wait_ms"`
	Countdown    string `json:"countdown"`
	NextFreeVote string `json:"next_free_vote,omitempty"`
	Votes        int    `json:"votes_remaining"`
}

type CastVoteResponse struct {
	Contest        Contest `json:"contest"`
	Source         string  `json:"source"`
	VotesRemaining int     `json:"votes_remaining"`
	LastFreeVote   int64   `json:"last_free_vote"`
}

type LeaderboardResponse struct {
	ContestID  string     `json:"contest_id"`
	TotalVotes int        `json:"total_votes"`
	Standings  []Standing `json:"standings"`
}

type Standing struct {
	Rank          int     `json:"rank"`
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	Image         string  `json:"image,omitempty"`
	Votes         int     `json:"votes"`
	PercentOfMax  float64 `json:"percent_of_max"`
}

// CheckoutResponse carries the parameters the client-side payment widget needs
type CheckoutResponse struct {
	Reference string            `json:"reference"`
	PublicKey string            `json:"public_key,omitempty"`
	Email     string            `json:"email"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Metadata  map[string]string `json:"metadata"`
}

type PurchaseResponse struct {
	Transaction    Transaction `json:"transaction"`
	VotesRemaining int         `json:"votes_remaining"`
}

type CommentView struct {
	Comment
	LikedByMe bool   `json:"liked_by_me"`
	TimeAgo   string `json:"time_ago"`
}

type AdminStatsResponse struct {
	TotalContests      int                 `json:"total_contests"`
	ActiveContests     int                 `json:"active_contests"`
	TotalVotes         int                 `json:"total_votes"`
	TotalVotesText     string              `json:"total_votes_text"`
	TotalParticipants  int                 `json:"total_participants"`
	Revenue            int64               `json:"revenue"`
	RevenueText        string              `json:"revenue_text"`
	ContestPerformance []ContestShare      `json:"contest_performance"`
	TopParticipants    []RankedParticipant `json:"top_participants"`
}

type ContestShare struct {
	ContestID    string  `json:"contest_id"`
	Title        string  `json:"title"`
	TotalVotes   int     `json:"total_votes"`
	PercentOfMax float64 `json:"percent_of_max"`
}

type RankedParticipant struct {
	Participant
	ContestTitle string `json:"contest_title"`
}

// Domain types

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	VotesRemaining int       `json:"votes_remaining"`
	LastFreeVote   int64     `json:"last_free_vote"` // epoch ms, 0 = never
	PasswordHash   string    `json:"-"`              // Never expose in JSON
	CreatedAt      time.Time `json:"created_at"`
}

type Contest struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	ImageURL     string        `json:"image_url"`
	Prize        string        `json:"prize"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	OrganizerID  string        `json:"organizer_id"`
	Status       string        `json:"status"`
	Participants []Participant `json:"participants"`
	TotalVotes   int           `json:"total_votes"`
	CreatedAt    time.Time     `json:"created_at"`
}

type Participant struct {
	ID        string `json:"id"`
	ContestID string `json:"contest_id"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Votes     int    `json:"votes"`
	Position  int    `json:"-"` // insertion order
}

type Comment struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	ContestID     string    `json:"contest_id"`
	ParticipantID string    `json:"participant_id,omitempty"`
	Content       string    `json:"content"`
	Likes         int       `json:"likes"`
	LikedBy       []string  `json:"liked_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// VotePack is a catalog entry. Price is in major currency units.
type VotePack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	Votes   int    `json:"votes"`
	Popular bool   `json:"popular"`
}

type Transaction struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	PackID        string     `json:"pack_id"`
	Reference     string     `json:"reference"`
	Amount        int64      `json:"amount"` // minor units
	Currency      string     `json:"currency"`
	VotesReceived int        `json:"votes_received"`
	Status        string     `json:"status"`
	ProviderRef   string     `json:"provider_ref,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Vote is an audit record of one cast vote
type Vote struct {
	ID            string    `json:"id"`
	ContestID     string    `json:"contest_id"`
	ParticipantID string    `json:"participant_id"`
	UserID        string    `json:"user_id"`
	Source        string    `json:"source"`
	CastAt        time.Time `json:"cast_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
