// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cache holds short-lived read models, chiefly contest leaderboards.

RedisCache is used when REDIS_ADDR is configured so several API instances
share one view. MemoryCache covers single-process deployments and tests.

Keys used by the API:

	leaderboard:{contestID}           standings plus the version they were built under
	leaderboard:{contestID}:version   token rotated on every invalidation, no expiry

A vote or a new participant rotates the version and deletes the standings.
Standings whose version is no longer current are treated as a miss, so a
read that raced a vote cannot keep serving the old ranking. The reconciler
clears leaderboard:* after it moves contest statuses. The TTL (CACHE_TTL,
default 30s) bounds staleness when an invalidation itself fails.
*/
package cache
