// config.go: construction-time options, validated eagerly
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import (
	"time"

	"github.com/agilira/go-timecache"
)

// storageKind selects one of the three Storage strategies from
// spec.md §3. The zero value is static (inline-equivalent), the most
// common case and the cheapest to construct.
type storageKind int

const (
	storageStatic storageKind = iota
	storageHeap
	storageDoubled
)

// Options collects the construction-time choices Split/SplitMut accept.
// newOptions only applies the Option functions over the defaults; the
// capacity and the storage setup (including the doubled mapping's
// platform check) are checked once, eagerly, in newBuffer before any
// role handle exists, rather than deferring checks into the index
// protocol.
type Options struct {
	kind     storageKind
	local    bool // local (non-atomic) indices instead of concurrent
	async    bool // allocate waker slots
	waitStep time.Duration
}

// Option mutates an in-progress Options value.
type Option func(*Options)

// WithHeap selects the plain heap-backed Storage strategy instead of
// the default static (inline-equivalent) one. Functionally identical in
// Go; kept distinct so the spec's three storage strategies each have a
// selectable home (see storage.go's heapStorage doc comment).
func WithHeap() Option { return func(o *Options) { o.kind = storageHeap } }

// WithDoubledHeap selects the virtual-memory doubled-mapping strategy.
// Requires capacity*sizeof(T) to be a multiple of the platform page
// size (linux only; see vmem package) — Split/SplitMut return
// ErrUnsupportedPlatform otherwise.
func WithDoubledHeap() Option { return func(o *Options) { o.kind = storageDoubled } }

// WithLocal selects plain (non-atomic) indices for single-goroutine use
// instead of the default cache-padded atomic indices. A Buffer
// constructed this way must never have its roles used from more than
// one goroutine total, including across role handles.
func WithLocal() Option { return func(o *Options) { o.local = true } }

// WithAsync allocates the per-role waker slots the async subpackage
// needs. Sync-only callers can omit this; it costs three buffered
// channels.
func WithAsync() Option { return func(o *Options) { o.async = true } }

// WithWaitStep overrides the polling granularity WaitFor uses between
// availability checks. Default is 50 microseconds.
func WithWaitStep(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.waitStep = d
		}
	}
}

func newOptions(opts ...Option) Options {
	o := Options{waitStep: 50 * time.Microsecond}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// waitClock is a single process-wide cached clock, the same
// NewWithResolution(time.Millisecond) pattern the teacher's log-file
// timestamping used, reused here so WaitFor's busy-wait loop paces
// itself without a time.Now() syscall on every spin.
var waitClock = timecache.NewWithResolution(time.Millisecond)

// waitFor backs the WaitFor method on Producer, Worker, and Consumer:
// busy-waits until check reports true or timeout elapses, returning
// whether it became true. timeout<=0 means wait forever. This is the
// one blocking convenience spec.md §5 and §6 mention outside the async
// API; every other sync operation is non-blocking.
func waitFor(check func() bool, timeout time.Duration, step time.Duration) bool {
	if check() {
		return true
	}
	if timeout <= 0 {
		for !check() {
			time.Sleep(step)
		}
		return true
	}
	deadline := waitClock.CachedTime().Add(timeout)
	for waitClock.CachedTime().Before(deadline) {
		if check() {
			return true
		}
		time.Sleep(step)
	}
	return check()
}
