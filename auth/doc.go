// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity: password hashing, session tokens, and the
register/login service.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch

ValidateRegistration enforces a well-formed email, a 6-72 character
password, and a 2-50 character display name.

# Session Tokens

Sessions are stateless HS256 JWTs signed with the server secret:

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	token, expiresAt, err := tokens.Issue(user, time.Now())
	claims, err := tokens.Parse(token)

The subject claim carries the user ID. Logging out is a client-side token
drop; there is no server revocation list.

# Service

Service combines the above over a UserStore:

	svc := auth.NewService(store, tokens, cfg.AdminEmails)
	resp, err := svc.Register(ctx, req, time.Now())
	resp, err := svc.Login(ctx, req, time.Now())
	user, err := svc.CurrentUser(ctx, token)

Errors are distinct so callers can tell them apart:

  - ErrInvalidCredentials: unknown email or wrong password
  - ErrEmailExists: registration with a taken email
  - ErrInvalidInput: malformed registration fields
  - ErrInvalidToken: bad, expired, or orphaned token
  - ErrUnavailable: the backing store failed

# ID Generation

	id := auth.GenerateID() // random UUID

# IP Hashing

Vote audit rows keep a salted hash of the client address:

	hash := auth.HashIP(ipAddress, salt)
*/
package auth
