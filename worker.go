// worker.go: the optional role that mutates items in place, in order
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import "time"

// Worker is the optional role that mutates items in place between the
// producer and consumer. Obtained only from SplitMut. A Buffer opened
// via Split has no Worker.
type Worker[T any] struct {
	buf *Buffer[T]
	idx *cursor[T]
}

// Available returns the number of producer-written, not-yet-mutated
// slots the worker may act on.
func (w *Worker[T]) Available() int { return int(w.idx.available()) }

// Index returns the worker's current position in the ring.
func (w *Worker[T]) Index() int { return int(w.idx.index()) }

// Advance moves the worker forward by k slots, publishing the new
// index for the consumer to observe. Unsafe: k must not exceed
// Available().
func (w *Worker[T]) Advance(k int) { w.idx.advance(uint64(k)) }

// GetNextMut returns a pointer to the next worker-pending slot for
// in-place mutation. The caller must call Advance(1) afterward.
func (w *Worker[T]) GetNextMut() (*T, error) {
	if !w.idx.check(1) {
		return nil, ErrEmpty
	}
	return w.buf.storage.Slot(int(w.idx.local)).Ref(), nil
}

// GetSliceMutExact returns a writable view of exactly k pending slots,
// or ErrEmpty if fewer than k are available. The caller must call
// Advance(k) afterward.
func (w *Worker[T]) GetSliceMutExact(k int) (Span[T], error) {
	if !w.idx.check(uint64(k)) {
		return Span[T]{}, ErrEmpty
	}
	return w.idx.chunk(w.buf.storage, uint64(k)), nil
}

// GetSliceMutAvail returns a writable view of every currently pending
// slot (may be empty). The caller must Advance by the returned span's
// Len() afterward.
func (w *Worker[T]) GetSliceMutAvail() Span[T] {
	k := w.idx.available()
	return w.idx.chunk(w.buf.storage, k)
}

// GetSliceMutMultipleOf returns a writable view of the largest
// multiple of m that fits within the currently available pending
// slots (floor(avail/m)*m), or an empty Span if that is zero. Useful
// for workers that process fixed-size groups (e.g. stereo sample
// pairs, m=2).
func (w *Worker[T]) GetSliceMutMultipleOf(m int) Span[T] {
	if m <= 0 {
		return Span[T]{}
	}
	avail := w.idx.available()
	k := (avail / uint64(m)) * uint64(m)
	if k == 0 {
		return Span[T]{}
	}
	return w.idx.chunk(w.buf.storage, k)
}

// ResetIndex skips the worker's index forward to the producer's
// current position, discarding any pending mutations without applying
// them, and publishes.
func (w *Worker[T]) ResetIndex() { w.idx.resetIndex() }

// WaitFor busy-waits until at least k pending slots are available or
// timeout elapses (timeout<=0 waits forever), returning whether k
// became available.
func (w *Worker[T]) WaitFor(k int, timeout time.Duration) bool {
	return waitFor(func() bool { return w.idx.check(uint64(k)) }, timeout, w.buf.waitStep)
}

// Detach returns a Detached adapter wrapping this Worker: subsequent
// Advance/GoBack calls mutate only the local index and cache until
// Attach or SyncIndex republishes.
func (w *Worker[T]) Detach() *Detached[T, *Worker[T]] {
	return newDetached[T](w.idx, w.buf.storage, w)
}

// IsProdAlive reports whether the producer role still holds a handle.
func (w *Worker[T]) IsProdAlive() bool { return w.buf.isAlive(roleProducer) }

// IsWorkAlive reports whether the worker role still holds a handle.
func (w *Worker[T]) IsWorkAlive() bool { return w.buf.isAlive(roleWorker) }

// IsConsAlive reports whether the consumer role still holds a handle.
func (w *Worker[T]) IsConsAlive() bool { return w.buf.isAlive(roleConsumer) }

// WakeChannel returns the channel the async mirror parks on while
// waiting for the producer to publish more pending items; nil unless
// the Buffer was built with WithAsync.
func (w *Worker[T]) WakeChannel() <-chan struct{} { return w.buf.wakers[roleWorker].C() }

// DownstreamAlive reports whether the consumer still holds its handle.
func (w *Worker[T]) DownstreamAlive() bool { return w.buf.isAlive(roleConsumer) }

// Close releases this role's handle.
func (w *Worker[T]) Close() error {
	w.buf.closeRole(roleWorker)
	return nil
}
