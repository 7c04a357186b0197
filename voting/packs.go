// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"github.com/danielhkuo/voteup/models"
)

// Currency is the ISO code all pack prices are quoted in
const Currency = "GHS"

var catalog = []models.VotePack{
	{ID: "starter", Name: "Starter Pack", Price: 35, Votes: 20},
	{ID: "popular", Name: "Popular Pack", Price: 60, Votes: 50, Popular: true},
	{ID: "power", Name: "Power Pack", Price: 100, Votes: 100},
}

// Catalog returns the vote packs on sale
func Catalog() []models.VotePack {
	out := make([]models.VotePack, len(catalog))
	copy(out, catalog)
	return out
}

func FindPack(id string) (models.VotePack, error) {
	for _, p := range catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return models.VotePack{}, ErrPackNotFound
}

// MinorUnits converts a pack price to the provider's smallest unit (pesewas)
func MinorUnits(p models.VotePack) int64 {
	return p.Price * 100
}

// ApplyPurchase credits u with the pack's votes.
// Callers must only invoke it once the payment is confirmed.
func ApplyPurchase(u models.User, p models.VotePack) models.User {
	u.VotesRemaining += p.Votes
	return u
}
