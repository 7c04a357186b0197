// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists users, contests, comments, and purchases.

# Implementations

  - SQLStore: PostgreSQL or SQLite through sqlx (see package db)
  - MemoryStore: maps behind one mutex, for tests and DATABASE_TYPE=memory

Both satisfy Store and pass the same test suite.

# Vote Casting

CastVote runs in a single transaction and never overwrites a counter with a
value computed in Go. Entitlement is spent with a guarded update:

	UPDATE users SET votes_remaining = votes_remaining - 1
	WHERE id = ? AND votes_remaining > 0

or, when no credits remain, the free slot is stamped only if it has
reopened:

	UPDATE users SET last_free_vote = ?
	WHERE id = ? AND votes_remaining = 0 AND last_free_vote <= ?

A zero row count means a concurrent vote won and the call fails with
voting.ErrVoteNotAllowed. Participant and contest totals use
"votes = votes + 1", so simultaneous voters never lose increments.

# Purchases

CompletePurchase flips a transaction from pending to completed and credits
the user in the same transaction. The status guard makes a second
confirmation fail with ErrPurchaseNotPending instead of crediting twice.

# Errors

  - voting.ErrContestNotFound, voting.ErrParticipantNotFound,
    voting.ErrCommentNotFound, ErrUserNotFound, ErrPurchaseNotFound
    (all match voting.ErrNotFound)
  - ErrDuplicate: unique constraint (email, reference, id)
  - ErrPurchaseNotPending: purchase already settled
*/
package store
