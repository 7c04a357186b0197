// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package payment

import (
	"context"
	"sync"
	"time"

	"github.com/danielhkuo/voteup/models"
)

// FakeVerifier approves every transaction unless told otherwise.
// It backs PAYMENT_MODE=fake for local development.
type FakeVerifier struct {
	mu       sync.Mutex
	declined map[string]bool
	pending  map[string]bool
}

var _ Verifier = (*FakeVerifier)(nil)

func NewFakeVerifier() *FakeVerifier {
	return &FakeVerifier{
		declined: make(map[string]bool),
		pending:  make(map[string]bool),
	}
}

// Decline makes future checks of reference fail
func (f *FakeVerifier) Decline(reference string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declined[reference] = true
}

// Hold keeps reference unsettled until Release is called
func (f *FakeVerifier) Hold(reference string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[reference] = true
}

func (f *FakeVerifier) Release(reference string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pending, reference)
}

func (f *FakeVerifier) Verify(ctx context.Context, tx models.Transaction) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.declined[tx.Reference] {
		return Result{}, ErrPaymentDeclined
	}
	if f.pending[tx.Reference] {
		return Result{}, ErrPaymentPending
	}
	return Result{
		Reference:   tx.Reference,
		ProviderRef: "fake_" + tx.Reference,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		PaidAt:      time.Now().UTC(),
	}, nil
}
