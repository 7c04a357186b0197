// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest, LoginRequest: email, password (and name)
  - CreateContestRequest: contest fields plus initial participants
  - AddParticipantRequest: name, bio, image
  - CastVoteRequest: participant_id
  - BeginPurchaseRequest: pack_id
  - ConfirmPurchaseRequest: transaction_ref from the payment widget
  - AddCommentRequest: content, optional participant_id

# Response Types

  - AuthResponse: token, expires_at, user
  - EligibilityResponse: allowed, wait_ms, countdown (m:ss)
  - CastVoteResponse: updated contest and remaining entitlement
  - LeaderboardResponse: ranked standings with percent_of_max
  - CheckoutResponse: widget parameters (reference, amount in minor units)
  - PurchaseResponse: settled transaction and new credit balance
  - CommentView: comment plus liked_by_me and time_ago
  - AdminStatsResponse: dashboard aggregates
  - ErrorResponse: error, message, code

# Domain Types

  - User: identity plus vote entitlement (votes_remaining, last_free_vote)
  - Contest: competition with ordered participants and a total vote count
  - Participant: entrant with a vote count that only grows
  - Comment: short text with a like set (likes == len(liked_by))
  - VotePack: catalog entry, price in major units
  - Transaction: purchase record (pending, completed, failed)
  - Vote: audit row for a single cast vote

# Constants

Contest status:

	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusEnded    = "ended"

Roles:

	RoleUser  = "user"
	RoleAdmin = "admin"

Vote sources:

	SourceCredit = "credit"
	SourceFree   = "free"
*/
package models
