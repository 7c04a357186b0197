// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Sources, lowest precedence first:

 1. a dotenv file (-env-file, default .env; a missing file is fine)
 2. the process environment, read with caarlos0/env
 3. command-line flags

Variables already present in the environment are never replaced by the
dotenv file.

# Environment Variables

	PORT                 3318
	DATABASE_TYPE        sqlite | postgres | memory (default sqlite)
	DATABASE_URL         file path or postgres DSN (sqlite default voteup.db)
	JWT_SECRET           required
	TOKEN_TTL            48h
	IP_HASH_SALT         defaults to JWT_SECRET
	ADMIN_EMAILS         comma list granted the admin role on registration
	PAYMENT_MODE         paystack | fake (default paystack; fake must be set explicitly)
	PAYSTACK_SECRET_KEY  server-side verify key
	PAYSTACK_PUBLIC_KEY  handed to the checkout widget
	PAYSTACK_BASE_URL    https://api.paystack.co
	REDIS_ADDR           leaderboard cache; empty uses process memory
	REDIS_PASSWORD
	CACHE_TTL            30s
	RECONCILE_INTERVAL   1m; 0 disables the status reconciler

# CLI Flags

	-env-file   dotenv path
	-p          PORT
	-d          DATABASE_URL
	-t          DATABASE_TYPE
	-jwt-secret JWT_SECRET
	-payment    PAYMENT_MODE
	-redis      REDIS_ADDR
*/
package cliparse
