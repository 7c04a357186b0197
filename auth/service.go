// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/store"
	"github.com/danielhkuo/voteup/voting"
)

// UserStore is the subset of the store the identity service needs
type UserStore interface {
	CreateUser(ctx context.Context, u models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// Service registers and signs in users against a UserStore.
// Bad credentials and an unreachable store are reported as different errors.
type Service struct {
	users  UserStore
	tokens *Tokens
	admins map[string]bool
}

// NewService creates an identity service. Addresses in adminEmails receive
// the admin role when they register.
func NewService(users UserStore, tokens *Tokens, adminEmails []string) *Service {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		if e = NormalizeEmail(e); e != "" {
			admins[e] = true
		}
	}
	return &Service{users: users, tokens: tokens, admins: admins}
}

func (s *Service) Tokens() *Tokens {
	return s.tokens
}

// Register creates a user with no credits and an open free slot
func (s *Service) Register(ctx context.Context, req models.RegisterRequest, now time.Time) (models.AuthResponse, error) {
	if err := ValidateRegistration(req.Email, req.Password, req.Name); err != nil {
		return models.AuthResponse{}, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return models.AuthResponse{}, err
	}

	email := NormalizeEmail(req.Email)
	role := models.RoleUser
	if s.admins[email] {
		role = models.RoleAdmin
	}

	u := models.User{
		ID:           GenerateID(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.AuthResponse{}, ErrEmailExists
		}
		return models.AuthResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	slog.Info("user registered", "user_id", u.ID, "role", u.Role)
	return s.session(u, now)
}

// Login checks credentials and returns a fresh session
func (s *Service) Login(ctx context.Context, req models.LoginRequest, now time.Time) (models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, NormalizeEmail(req.Email))
	if errors.Is(err, voting.ErrNotFound) {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := CheckPassword(u.PasswordHash, req.Password); err != nil {
		return models.AuthResponse{}, err
	}

	return s.session(u, now)
}

// CurrentUser resolves a token to the stored user record
func (s *Service) CurrentUser(ctx context.Context, token string) (models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return models.User{}, err
	}

	u, err := s.users.GetUser(ctx, claims.UserID())
	if errors.Is(err, voting.ErrNotFound) {
		return models.User{}, fmt.Errorf("%w: user no longer exists", ErrInvalidToken)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return u, nil
}

func (s *Service) session(u models.User, now time.Time) (models.AuthResponse, error) {
	token, expires, err := s.tokens.Issue(u, now)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{Token: token, ExpiresAt: expires, User: u}, nil
}
