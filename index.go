// index.go: the three-index coordination protocol shared by every role
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import "sync/atomic"

// indexVar is one role's position around the ring, published for the
// adjacent role to observe. Two implementations back it: atomicIndex
// (concurrent Buffer, cache-line padded) and plainIndex (local Buffer,
// single-goroutine use, no synchronization overhead).
type indexVar interface {
	Load() uint64
	Store(uint64)
}

// atomicIndex is a single atomic counter padded to a full cache line so
// that the producer, worker, and consumer indices never false-share,
// the same padding convention rishavpaul-system-design's disruptor
// RingBufferSlot uses ("_ [N]byte" trailer after the hot field).
type atomicIndex struct {
	v atomic.Uint64
	_ [56]byte // v is 8 bytes; pad the struct out to 64
}

func (a *atomicIndex) Load() uint64   { return a.v.Load() }
func (a *atomicIndex) Store(x uint64) { a.v.Store(x) }

// plainIndex is the local-Buffer counterpart: no atomics, used when the
// Buffer is known to stay on a single goroutine (construction-time
// choice, see WithLocal).
type plainIndex struct{ v uint64 }

func (p *plainIndex) Load() uint64   { return p.v }
func (p *plainIndex) Store(x uint64) { p.v = x }

// diffMod returns (a - b) mod n for a, b already in [0, n).
func diffMod(a, b, n uint64) uint64 {
	if a >= b {
		return a - b
	}
	return n - b + a
}

// cursor is the index-protocol state shared by Producer, Worker, and
// Consumer: one role's own published index, a read-only view of the
// neighboring index the availability formula depends on (spec.md's
// "succ"), and a cached availability count refreshed only on demand.
//
// cursor is intentionally unexported: each role type exposes only the
// subset of cursor's behavior the spec's per-role operation table
// grants it (Producer has no ResetIndex, for instance), so embedding
// would over-promote. Each role forwards the operations it owns.
type cursor[T any] struct {
	n           uint64
	owner       indexVar
	succ        indexVar
	local       uint64
	avail       uint64
	isProducer  bool // selects the "-1" empty-slot-convention term
	wakeTarget  *waker
	detachedOff bool // true once a Detached has taken over publishing
}

// refresh re-reads the successor index and recomputes cached
// availability. The successor's index only moves forward modulo n from
// this role's perspective (spec §9, "Cached availability"), so refresh
// is idempotent and never overstates true availability at the moment
// it runs.
func (c *cursor[T]) refresh() uint64 {
	s := c.succ.Load()
	d := diffMod(s, c.local, c.n)
	if c.isProducer {
		if d == 0 {
			d = c.n - 1
		} else {
			d--
		}
	}
	c.avail = d
	return d
}

// available returns the best currently known pending/free count,
// refreshing from the successor's atomic index.
func (c *cursor[T]) available() uint64 { return c.refresh() }

// check reports whether k items may be consumed/produced without a
// forced refresh when the cache already proves it, falling back to one
// refresh otherwise. This is the fast path every push/pop call takes
// before touching memory.
func (c *cursor[T]) check(k uint64) bool {
	if k <= c.avail {
		return true
	}
	return k <= c.refresh()
}

// index returns this role's own current position.
func (c *cursor[T]) index() uint64 { return c.local }

// advance moves the local index forward by k, decrements the cached
// availability (saturating at zero), and — unless a Detached adapter
// has taken over publishing — stores the new index and wakes the
// single downstream role. Precondition (spec.md §4.4, §7): k must not
// exceed available(); violating it is a precondition violation the
// core does not guard against beyond the optional debug assertion.
func (c *cursor[T]) advance(k uint64) {
	debugAssertf(k <= c.avail || k <= c.refresh(), "mutring: advance(%d) exceeds available", k)
	c.local = (c.local + k) % c.n
	if c.avail >= k {
		c.avail -= k
	} else {
		c.avail = 0
	}
	if c.detachedOff {
		return
	}
	c.owner.Store(c.local)
	c.wakeTarget.wake()
}

// resetIndex skips this role's local index forward to the successor's
// current position, discarding whatever was pending, and publishes.
func (c *cursor[T]) resetIndex() {
	c.local = c.succ.Load()
	c.avail = 0
	if c.detachedOff {
		return
	}
	c.owner.Store(c.local)
	c.wakeTarget.wake()
}

// chunk returns a (possibly two-piece) view of the k items starting at
// this role's current index, per spec.md §4.4. Callers are responsible
// for having already confirmed k <= available().
func (c *cursor[T]) chunk(storage storageCells[T], k uint64) Span[T] {
	return spanAt(storage, c.n, c.local, k)
}
