// consumer.go: the role that observes and removes items from the head
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import "time"

// Consumer is the single role that reads and removes items. Its
// availability formula reads the worker's index when the Buffer was
// opened via SplitMut, or the producer's index directly via Split —
// hasWorker records which, set once at construction and never mutated
// (the Go stand-in for spec.md §4.3's type-level has_worker flag; see
// DESIGN.md).
type Consumer[T any] struct {
	buf       *Buffer[T]
	idx       *cursor[T]
	hasWorker bool
}

// PeekAvailable returns the number of items currently available to
// read, refreshing from the upstream role's published index.
func (c *Consumer[T]) PeekAvailable() int { return int(c.idx.available()) }

// Index returns the consumer's current position in the ring.
func (c *Consumer[T]) Index() int { return int(c.idx.index()) }

// Advance moves the consumer forward by k slots without reading them.
// Unsafe: k must not exceed PeekAvailable().
func (c *Consumer[T]) Advance(k int) { c.idx.advance(uint64(k)) }

// PeekRef returns a pointer to the next pending slot without removing
// it. The caller must call Advance(1) to actually consume it.
func (c *Consumer[T]) PeekRef() (*T, error) {
	if !c.idx.check(1) {
		return nil, ErrEmpty
	}
	return c.buf.storage.Slot(int(c.idx.local)).Ref(), nil
}

// PeekSlice returns a view of the next k pending items without
// removing them. The caller must call Advance(k) to consume them.
func (c *Consumer[T]) PeekSlice(k int) (Span[T], error) {
	if !c.idx.check(uint64(k)) {
		return Span[T]{}, ErrEmpty
	}
	return c.idx.chunk(c.buf.storage, uint64(k)), nil
}

// Pop duplicates and removes the next item. ok is false, with state
// unchanged, if nothing is available.
func (c *Consumer[T]) Pop() (v T, ok bool) {
	if !c.idx.check(1) {
		return v, false
	}
	v = c.buf.storage.Slot(int(c.idx.local)).Duplicate()
	c.idx.advance(1)
	return v, true
}

// PopMove removes the next item by taking it, resetting the vacated
// slot to zero-reset. Unsafe precondition carried from spec.md: the
// producer must use a *_init push variant until this slot is
// re-initialized — PushInit/PushSliceInit are Push/PushSlice aliases
// in this Go port (see producer.go), so in practice this just means
// "push something" before the slot is read again.
func (c *Consumer[T]) PopMove() (v T, ok bool) {
	if !c.idx.check(1) {
		return v, false
	}
	v = c.buf.storage.Slot(int(c.idx.local)).Take()
	c.idx.advance(1)
	return v, true
}

// CopyItem writes the next pending item into *dst and advances.
// Reports false, with state unchanged, if nothing is available.
func (c *Consumer[T]) CopyItem(dst *T) bool {
	v, ok := c.Pop()
	if !ok {
		return false
	}
	*dst = v
	return true
}

// CloneItem is CopyItem but stores v.Clone() instead of v, for item
// types that want an independent deep copy (see Cloner).
func CloneItem[T Cloner[T]](c *Consumer[T], dst *T) bool {
	v, ok := c.Pop()
	if !ok {
		return false
	}
	*dst = v.Clone()
	return true
}

// CopySlice reads up to len(dst) pending items into dst and advances
// by the number read. Returns the count actually copied.
func (c *Consumer[T]) CopySlice(dst []T) int {
	k := uint64(len(dst))
	avail := c.idx.available()
	if k > avail {
		k = avail
	}
	if k == 0 {
		return 0
	}
	span := c.idx.chunk(c.buf.storage, k)
	n := copy(dst, span.First)
	if n < len(dst) {
		n += copy(dst[n:], span.Second)
	}
	c.idx.advance(k)
	return int(k)
}

// CloneSlice is CopySlice but stores dst[i] = item.Clone() for each
// item read, for item types that want independent deep copies.
func CloneSlice[T Cloner[T]](c *Consumer[T], dst []T) int {
	k := uint64(len(dst))
	avail := c.idx.available()
	if k > avail {
		k = avail
	}
	if k == 0 {
		return 0
	}
	span := c.idx.chunk(c.buf.storage, k)
	for i := 0; i < int(k); i++ {
		var v T
		if i < len(span.First) {
			v = span.First[i]
		} else {
			v = span.Second[i-len(span.First)]
		}
		dst[i] = v.Clone()
	}
	c.idx.advance(k)
	return int(k)
}

// ResetIndex skips the consumer forward to the upstream role's current
// position (worker if present, else producer), discarding any pending
// reads without consuming them, and publishes.
func (c *Consumer[T]) ResetIndex() { c.idx.resetIndex() }

// WaitFor busy-waits until at least k items are available to read or
// timeout elapses (timeout<=0 waits forever), returning whether k
// became available.
func (c *Consumer[T]) WaitFor(k int, timeout time.Duration) bool {
	return waitFor(func() bool { return c.idx.check(uint64(k)) }, timeout, c.buf.waitStep)
}

// Detach returns a Detached adapter wrapping this Consumer: subsequent
// Advance/GoBack calls mutate only the local index and cache until
// Attach or SyncIndex republishes. Intended for lookahead searches that
// may need to retract (spec.md §4.8).
func (c *Consumer[T]) Detach() *Detached[T, *Consumer[T]] {
	return newDetached[T](c.idx, c.buf.storage, c)
}

// IsProdAlive reports whether the producer role still holds a handle.
func (c *Consumer[T]) IsProdAlive() bool { return c.buf.isAlive(roleProducer) }

// IsWorkAlive reports whether the worker role still holds a handle.
func (c *Consumer[T]) IsWorkAlive() bool { return c.buf.isAlive(roleWorker) }

// IsConsAlive reports whether the consumer role still holds a handle.
func (c *Consumer[T]) IsConsAlive() bool { return c.buf.isAlive(roleConsumer) }

// WakeChannel returns the channel the async mirror parks on while
// waiting for more pending items to appear; nil unless the Buffer was
// built with WithAsync.
func (c *Consumer[T]) WakeChannel() <-chan struct{} { return c.buf.wakers[roleConsumer].C() }

// DownstreamAlive reports whether the producer still holds its handle
// — "downstream" here meaning the role this Consumer's own Advance
// wakes, per spec.md §4.9.
func (c *Consumer[T]) DownstreamAlive() bool { return c.buf.isAlive(roleProducer) }

// UpstreamAlive reports whether the role immediately upstream of the
// consumer (the worker, if the Buffer has one, else the producer)
// still holds its handle — the mirror of Producer.DownstreamAlive,
// used by the async mirror to tell "nothing more will ever become
// pending" apart from "the far role closed but the near one is still
// feeding me".
func (c *Consumer[T]) UpstreamAlive() bool {
	if c.hasWorker {
		return c.buf.isAlive(roleWorker)
	}
	return c.buf.isAlive(roleProducer)
}

// Close releases this role's handle.
func (c *Consumer[T]) Close() error {
	c.buf.closeRole(roleConsumer)
	return nil
}
