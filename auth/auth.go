// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnavailable        = errors.New("identity service unavailable")
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	passwordRegex = regexp.MustCompile(`^.{6,72}$`) // bcrypt ignores bytes past 72
)

// GenerateID returns a new random UUID string for database records
func GenerateID() string {
	return uuid.NewString()
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the fields of a sign-up request
func ValidateRegistration(email, password, name string) error {
	if !emailRegex.MatchString(NormalizeEmail(email)) {
		return fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if !passwordRegex.MatchString(password) {
		return fmt.Errorf("%w: password must be 6-72 characters", ErrInvalidInput)
	}
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < 2 || n > 50 {
		return fmt.Errorf("%w: name must be 2-50 characters", ErrInvalidInput)
	}
	return nil
}

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for the vote audit log
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// 64 bits is enough to spot repeated sources
	return hex.EncodeToString(sum[:8])
}
