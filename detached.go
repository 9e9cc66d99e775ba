// detached.go: the lookahead adapter that suppresses index publishing
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

// Detached wraps a Worker or Consumer (H is *Worker[T] or *Consumer[T])
// so that Advance/GoBack mutate only the local index and cached
// availability, never the published atomic — the cleanest replacement
// for a hidden detached flag threaded through every index-protocol
// branch (spec.md §9, "Detached indices"). Intended for lookahead
// searches that may need to retract without disturbing what the
// downstream role observes.
type Detached[T any, H any] struct {
	idx     *cursor[T]
	storage storageCells[T]
	handle  H
}

func newDetached[T any, H any](idx *cursor[T], storage storageCells[T], handle H) *Detached[T, H] {
	idx.detachedOff = true
	return &Detached[T, H]{idx: idx, storage: storage, handle: handle}
}

// Available returns the cached/refreshed availability as seen from the
// (possibly retracted) local index.
func (d *Detached[T, H]) Available() int { return int(d.idx.available()) }

// Index returns the current local index, which may differ from the
// last value published to the atomic.
func (d *Detached[T, H]) Index() int { return int(d.idx.local) }

// Peek returns a view of the next k items from the local index without
// publishing or consuming anything.
func (d *Detached[T, H]) Peek(k int) (Span[T], bool) {
	if !d.idx.check(uint64(k)) {
		return Span[T]{}, false
	}
	return spanAt(d.storage, d.idx.n, d.idx.local, uint64(k)), true
}

// Advance moves the local index forward by k and decrements the local
// cache, without publishing to the atomic — the defining difference
// from the attached Advance.
func (d *Detached[T, H]) Advance(k int) {
	kk := uint64(k)
	d.idx.local = (d.idx.local + kk) % d.idx.n
	if d.idx.avail >= kk {
		d.idx.avail -= kk
	} else {
		d.idx.avail = 0
	}
}

// GoBack retracts the local index by k (modulo n) and adds k back to
// the local availability cache, letting a lookahead search back out of
// slots it tentatively stepped past.
func (d *Detached[T, H]) GoBack(k int) {
	kk := uint64(k) % d.idx.n
	if kk > d.idx.local {
		d.idx.local = d.idx.n - (kk - d.idx.local)
	} else {
		d.idx.local -= kk
	}
	d.idx.avail += kk
}

// SyncIndex publishes the current local index to the atomic without
// ending detachment — a subsequent Advance still only touches the
// local state until Attach is called.
func (d *Detached[T, H]) SyncIndex() {
	d.idx.owner.Store(d.idx.local)
	d.idx.wakeTarget.wake()
}

// Attach publishes the local index and returns the original handle,
// ending detachment. Detached::SyncIndex then Detached::Attach is
// equivalent to Attach alone (spec.md §8's idempotence law): Attach
// always publishes regardless of whether SyncIndex already did.
func (d *Detached[T, H]) Attach() H {
	d.idx.detachedOff = false
	d.idx.owner.Store(d.idx.local)
	d.idx.wakeTarget.wake()
	return d.handle
}
