// Package async mirrors the sync Producer/Worker/Consumer roles with
// context-cancellable, blocking-until-ready operations.
//
// Go has no Future/Poll/waker trio to adapt the original core's async
// executor onto, so this package uses Go's native suspension
// primitive — channels — instead of a hand-rolled executor (spec.md
// §4.9, "the concrete async executor" is explicitly an external
// collaborator out of the core's scope). Each operation: attempts the
// sync operation; on would-block, selects on the role's wake channel,
// ctx.Done(), and a jittered fallback tick (covering the
// register-then-recheck race spec.md §9 calls out); returns once the
// sync operation succeeds, the context is cancelled, or the role it
// waits on (the consumer's or worker's upstream, the producer's
// downstream) has closed its handle.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package async

import (
	"time"

	"github.com/agilira/go-timecache"
)

// fallbackClock paces the register-then-recheck fallback tick the same
// way config.go's waitFor paces its busy-wait, instead of calling
// time.Now() on every iteration of a potentially tight retry loop.
var fallbackClock = timecache.NewWithResolution(time.Millisecond)

// jitteredFallback returns a small, per-call-varied duration around
// base so many async roles waking on the same tick don't all retry in
// lockstep — seeded from the cached clock instead of math/rand so the
// package stays allocation-free on this path.
func jitteredFallback(base time.Duration) time.Duration {
	n := fallbackClock.CachedTime().UnixNano()
	jitter := time.Duration(n%int64(base/4+1)) - base/8
	d := base + jitter
	if d <= 0 {
		return base
	}
	return d
}

// defaultFallback is the nominal time an async wait blocks without
// observing either a wake or a context cancellation (jitteredFallback
// varies it by up to an eighth either way) — a safety net against a
// missed wake rather than the primary wake path.
const defaultFallback = 4 * time.Millisecond
