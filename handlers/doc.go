// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the VoteUp API.

# Handler Types

Each handler is a struct holding the store and whatever else it needs:

  - AuthHandler: Registration, login, and the current user
  - ContestHandler: Contest listing, creation, participants, leaderboard
  - VotingHandler: Vote casting and free-vote eligibility
  - PurchaseHandler: Vote pack catalog and checkout
  - CommentHandler: Comments, likes, and deletion
  - AdminHandler: Dashboard statistics

Handlers are created via constructor functions:

	contestHandler := handlers.NewContestHandler(s, c, cfg)

Authenticated handlers expect middleware.RequireAuth (or RequireAdmin) to
have loaded the caller into the request context.

# Voting

	POST /contests/{id}/votes → CastVote
	GET  /me/eligibility      → Eligibility

A vote spends a purchased credit when the user has one, otherwise the free
slot that reopens every voting.FreeVoteInterval (10 minutes). When neither
is available the response is 429 with a Retry-After header and the
current eligibility. Votes outside the contest window are refused with 409.

# Purchases

	GET  /vote-packs                      → ListPacks
	POST /purchases                       → Begin
	POST /purchases/{reference}/confirm   → Confirm
	POST /purchases/{reference}/cancel    → Cancel

Begin records a pending transaction and returns the checkout parameters for
the payment widget. Confirm verifies the payment with the provider and
credits the pack exactly once; replays get 409.

# Leaderboard

	GET /contests/{id}/leaderboard → Leaderboard

Standings are cached under LeaderboardKey together with a version token.
A vote or new participant rotates the token, so standings computed before
the change are never served afterwards. The X-Cache header reports HIT or MISS.

# Errors

Domain errors are mapped to status codes in errors.go. Every error body
carries a machine-readable code next to the message.
*/
package handlers
