// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reconcile keeps each contest's stored status in step with its
start and end dates.

Vote acceptance is decided from the dates at request time, so a stale
status never lets a vote through. The reconciler only keeps listings
and dashboard counts honest:

	r := reconcile.New(s, c, time.Minute)
	go r.Run(ctx)

Statuses only move forward (upcoming → active → ended).
*/
package reconcile
