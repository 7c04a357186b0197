// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/voteup/models"
)

// DefaultPaystackURL is the live Paystack API
const DefaultPaystackURL = "https://api.paystack.co"

// PaystackVerifier calls GET /transaction/verify/{reference}
type PaystackVerifier struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

var _ Verifier = (*PaystackVerifier)(nil)

func NewPaystackVerifier(secretKey, baseURL string) (*PaystackVerifier, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("paystack secret key cannot be empty")
	}
	if baseURL == "" {
		baseURL = DefaultPaystackURL
	}
	return &PaystackVerifier{
		secretKey:  secretKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}, nil
}

type paystackResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID        int64  `json:"id"`
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		PaidAt    string `json:"paid_at"`
	} `json:"data"`
}

func (v *PaystackVerifier) Verify(ctx context.Context, tx models.Transaction) (Result, error) {
	endpoint := v.baseURL + "/transaction/verify/" + url.PathEscape(tx.Reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return Result{}, fmt.Errorf("%w: paystack returned %d", ErrUnavailable, resp.StatusCode)
	}

	var body paystackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("%w: decode verify response: %v", ErrUnavailable, err)
	}

	// Paystack answers unknown references with 400 and status=false
	if resp.StatusCode != http.StatusOK || !body.Status {
		return Result{}, fmt.Errorf("%w: %s", ErrPaymentDeclined, body.Message)
	}

	switch body.Data.Status {
	case "success":
	case "ongoing", "pending", "processing", "queued":
		return Result{}, ErrPaymentPending
	default:
		return Result{}, fmt.Errorf("%w: provider status %q", ErrPaymentDeclined, body.Data.Status)
	}

	if err := checkAmount(tx, body.Data.Amount, strings.ToUpper(body.Data.Currency)); err != nil {
		return Result{}, err
	}

	// status and amount settle the purchase; paid_at is informational
	paidAt, err := time.Parse(time.RFC3339, body.Data.PaidAt)
	if err != nil {
		slog.Debug("unparseable paid_at", "reference", tx.Reference, "value", body.Data.PaidAt, "error", err)
		paidAt = time.Time{}
	}
	return Result{
		Reference:   body.Data.Reference,
		ProviderRef: strconv.FormatInt(body.Data.ID, 10),
		Amount:      body.Data.Amount,
		Currency:    strings.ToUpper(body.Data.Currency),
		PaidAt:      paidAt,
	}, nil
}
