// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/voteup/auth"
	"github.com/danielhkuo/voteup/cliparse"
	"github.com/danielhkuo/voteup/middleware"
	"github.com/danielhkuo/voteup/models"
	"github.com/danielhkuo/voteup/payment"
	"github.com/danielhkuo/voteup/store"
	"github.com/danielhkuo/voteup/voting"
)

type PurchaseHandler struct {
	store    store.Store
	verifier payment.Verifier
	cfg      cliparse.Config
}

func NewPurchaseHandler(s store.Store, v payment.Verifier, cfg cliparse.Config) *PurchaseHandler {
	return &PurchaseHandler{store: s, verifier: v, cfg: cfg}
}

// ListPacks handles GET /vote-packs
func (h *PurchaseHandler) ListPacks(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, voting.Catalog())
}

// Begin handles POST /purchases.
// It records a pending transaction and returns what the checkout widget needs.
func (h *PurchaseHandler) Begin(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.BeginPurchaseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pack, err := voting.FindPack(req.PackID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	now := time.Now().UTC()
	tx := models.Transaction{
		ID:            auth.GenerateID(),
		UserID:        u.ID,
		PackID:        pack.ID,
		Reference:     payment.NewReference(u.ID, now),
		Amount:        voting.MinorUnits(pack),
		Currency:      voting.Currency,
		VotesReceived: pack.Votes,
		Status:        models.TxPending,
		CreatedAt:     now,
	}
	if err := h.store.CreateTransaction(r.Context(), tx); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slog.Info("purchase started", "user_id", u.ID, "pack_id", pack.ID, "reference", tx.Reference)

	middleware.JSONResponse(w, http.StatusCreated, models.CheckoutResponse{
		Reference: tx.Reference,
		PublicKey: h.cfg.PaystackPublicKey,
		Email:     u.Email,
		Amount:    tx.Amount,
		Currency:  tx.Currency,
		Metadata: map[string]string{
			"user_id":   u.ID,
			"pack_id":   pack.ID,
			"pack_name": pack.Name,
			"votes":     strconv.Itoa(pack.Votes),
		},
	})
}

// ownTransaction loads the transaction named in the path and checks the
// caller owns it. Someone else's reference reads as not found.
func (h *PurchaseHandler) ownTransaction(w http.ResponseWriter, r *http.Request, u models.User) (models.Transaction, bool) {
	tx, err := h.store.GetTransaction(r.Context(), r.PathValue("reference"))
	if err == nil && tx.UserID != u.ID {
		err = store.ErrPurchaseNotFound
	}
	if err != nil {
		writeServiceError(w, r, err)
		return models.Transaction{}, false
	}
	return tx, true
}

// Confirm handles POST /purchases/{reference}/confirm
func (h *PurchaseHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	// the body is optional; the widget's transaction ref is informational
	var req models.ConfirmPurchaseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tx, ok := h.ownTransaction(w, r, u)
	if !ok {
		return
	}
	if tx.Status != models.TxPending {
		writeServiceError(w, r, store.ErrPurchaseNotPending)
		return
	}

	result, err := h.verifier.Verify(r.Context(), tx)
	switch {
	case errors.Is(err, payment.ErrPaymentDeclined):
		if _, ferr := h.store.FailPurchase(r.Context(), tx.Reference); ferr != nil && !errors.Is(ferr, store.ErrPurchaseNotPending) {
			slog.Error("failed to close declined purchase", "reference", tx.Reference, "error", ferr)
		}
		slog.Warn("payment declined", "reference", tx.Reference, "user_id", u.ID, "error", err)
		writeServiceError(w, r, err)
		return
	case err != nil:
		// pending or provider outage: leave the transaction pending
		writeServiceError(w, r, err)
		return
	}

	providerRef := result.ProviderRef
	if providerRef == "" {
		providerRef = req.TransactionRef
	}

	settled, user, err := h.store.CompletePurchase(r.Context(), tx.Reference, providerRef, time.Now().UTC())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slog.Info("purchase completed",
		"reference", settled.Reference,
		"user_id", user.ID,
		"votes", settled.VotesReceived,
		"votes_remaining", user.VotesRemaining,
	)

	middleware.JSONResponse(w, http.StatusOK, models.PurchaseResponse{
		Transaction:    settled,
		VotesRemaining: user.VotesRemaining,
	})
}

// Cancel handles POST /purchases/{reference}/cancel, used when the buyer
// closes the widget without paying
func (h *PurchaseHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	tx, ok := h.ownTransaction(w, r, u)
	if !ok {
		return
	}

	failed, err := h.store.FailPurchase(r.Context(), tx.Reference)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slog.Info("purchase cancelled", "reference", failed.Reference, "user_id", u.ID)
	middleware.JSONResponse(w, http.StatusOK, models.PurchaseResponse{
		Transaction:    failed,
		VotesRemaining: u.VotesRemaining,
	})
}
