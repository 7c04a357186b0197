// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/voteup/models"
)

var (
	ErrPaymentDeclined = errors.New("payment declined")
	ErrPaymentPending  = errors.New("payment not yet settled")
	ErrUnavailable     = errors.New("payment provider unavailable")
)

// ReferencePrefix starts every checkout reference handed to the widget
const ReferencePrefix = "VOTEUPGH"

// Result is the provider's view of a settled payment
type Result struct {
	Reference   string
	ProviderRef string
	Amount      int64
	Currency    string
	PaidAt      time.Time // zero when the provider sent no usable timestamp
}

// Verifier confirms with the payment provider that a transaction was paid.
//
// Verify returns ErrPaymentDeclined when the provider reports failure or the
// amount/currency differ from tx, ErrPaymentPending when the provider has
// not settled it yet, and ErrUnavailable when the provider cannot be reached.
type Verifier interface {
	Verify(ctx context.Context, tx models.Transaction) (Result, error)
}

// NewReference builds a checkout reference unique per user and millisecond
func NewReference(userID string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d", ReferencePrefix, userID, now.UnixMilli())
}

func checkAmount(tx models.Transaction, amount int64, currency string) error {
	if amount != tx.Amount || currency != tx.Currency {
		return fmt.Errorf("%w: paid %d %s, expected %d %s",
			ErrPaymentDeclined, amount, currency, tx.Amount, tx.Currency)
	}
	return nil
}
