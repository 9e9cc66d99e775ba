// producer.go: the role that appends items at the tail of the ring
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import (
	"time"
	"unsafe"
)

// Producer is the single role that appends items. Obtained from Split
// or SplitMut; never constructed directly. A Producer must be used
// from one goroutine at a time (spec.md §5 — handles are Send-like but
// never Sync).
type Producer[T any] struct {
	buf *Buffer[T]
	idx *cursor[T]
}

// IsProdAlive reports whether the producer role still holds a handle.
func (p *Producer[T]) IsProdAlive() bool { return p.buf.isAlive(roleProducer) }

// IsWorkAlive reports whether the worker role still holds a handle.
// Always false on a Buffer built via Split (no worker).
func (p *Producer[T]) IsWorkAlive() bool { return p.buf.isAlive(roleWorker) }

// IsConsAlive reports whether the consumer role still holds a handle.
func (p *Producer[T]) IsConsAlive() bool { return p.buf.isAlive(roleConsumer) }

// WakeChannel returns the channel the async mirror parks on while
// waiting for room to free up; nil unless the Buffer was built with
// WithAsync.
func (p *Producer[T]) WakeChannel() <-chan struct{} { return p.buf.wakers[roleProducer].C() }

// DownstreamAlive reports whether the role immediately downstream of
// the producer (the worker, if the Buffer has one, else the consumer)
// still holds its handle — used by the async mirror to stop waiting
// and surface ErrClosed instead of blocking forever.
func (p *Producer[T]) DownstreamAlive() bool {
	if p.buf.hasWorker {
		return p.buf.isAlive(roleWorker)
	}
	return p.buf.isAlive(roleConsumer)
}

// Available returns the number of free slots the producer may write
// to without violating the one-slot-empty convention (I3). Refreshes
// from the downstream role's published index.
func (p *Producer[T]) Available() int { return int(p.idx.available()) }

// Index returns the producer's current position in the ring.
func (p *Producer[T]) Index() int { return int(p.idx.index()) }

// Advance moves the producer forward by k slots without writing to
// them — callers that used NextSlotMut/NextSliceMut to construct items
// in place must call this afterward. Unsafe: k must not exceed
// Available(); advancing past it corrupts the ring (spec.md §7).
func (p *Producer[T]) Advance(k int) { p.idx.advance(uint64(k)) }

// Push writes v to the next slot and advances by one. Returns ErrFull
// without modifying any state if the ring has no free slot.
func (p *Producer[T]) Push(v T) error {
	if !p.idx.check(1) {
		return ErrFull
	}
	p.buf.storage.Slot(int(p.idx.local)).Set(v)
	p.idx.advance(1)
	return nil
}

// PushInit is Push's counterpart for the slot-just-vacated-by-PopMove
// case. In the original Rust core this avoids running a stale
// destructor on zero-reset bytes; Go has no destructors to avoid
// running, so PushInit and Push behave identically here (kept for API
// parity with spec.md's table and to mark call sites that are
// re-establishing the *_init discipline after a PopMove cycle).
func (p *Producer[T]) PushInit(v T) error { return p.Push(v) }

// NextSlotMut returns a pointer to the next writable slot for in-place
// construction. The caller must call Advance(1) afterward. Unsafe:
// the slot is only guaranteed free if a prior Available()/check
// succeeded.
func (p *Producer[T]) NextSlotMut() (*T, error) {
	if !p.idx.check(1) {
		return nil, ErrFull
	}
	return p.buf.storage.Slot(int(p.idx.local)).Ref(), nil
}

// NextSlotMutInit is NextSlotMut's *_init counterpart; identical in Go
// (see PushInit).
func (p *Producer[T]) NextSlotMutInit() (unsafe.Pointer, error) {
	if !p.idx.check(1) {
		return nil, ErrFull
	}
	return p.buf.storage.Slot(int(p.idx.local)).Ptr(), nil
}

// NextSliceMut returns a writable view of the next k slots for
// in-place construction. The caller must call Advance(k) afterward.
// Unsafe: k must not exceed Available().
func (p *Producer[T]) NextSliceMut(k int) (Span[T], error) {
	if !p.idx.check(uint64(k)) {
		return Span[T]{}, ErrFull
	}
	return p.idx.chunk(p.buf.storage, uint64(k)), nil
}

// PushSlice copies vals into the next len(vals) slots and advances, or
// returns ErrFull without writing anything if they do not all fit.
func (p *Producer[T]) PushSlice(vals []T) error {
	k := uint64(len(vals))
	if k == 0 {
		return nil
	}
	if !p.idx.check(k) {
		return ErrFull
	}
	span := p.idx.chunk(p.buf.storage, k)
	copySpan(span, vals)
	p.idx.advance(k)
	return nil
}

// PushSliceInit is PushSlice's *_init counterpart; identical in Go.
func (p *Producer[T]) PushSliceInit(vals []T) error { return p.PushSlice(vals) }

// PushSliceClone is PushSlice but stores vals[i].Clone() in each slot
// instead of vals[i] itself, for item types that want the buffer to
// own an independent copy (see Cloner). A free function, like
// CloneItem/CloneSlice: Go methods cannot add a type constraint beyond
// what the receiver's own type parameter already carries, so the
// T: Cloner[T] bound has to live on a standalone function.
func PushSliceClone[T Cloner[T]](p *Producer[T], vals []T) error {
	k := uint64(len(vals))
	if k == 0 {
		return nil
	}
	if !p.idx.check(k) {
		return ErrFull
	}
	span := p.idx.chunk(p.buf.storage, k)
	for i, v := range vals {
		writeSpan(span, i, v.Clone())
	}
	p.idx.advance(k)
	return nil
}

// PushSliceCloneInit is PushSliceClone's *_init counterpart; identical
// in Go.
func PushSliceCloneInit[T Cloner[T]](p *Producer[T], vals []T) error {
	return PushSliceClone(p, vals)
}

// WaitFor busy-waits until at least k slots are free or timeout
// elapses (timeout<=0 waits forever), returning whether k became
// available. The one blocking convenience outside the async package
// (spec.md §5, §6); every other Producer operation is non-blocking.
func (p *Producer[T]) WaitFor(k int, timeout time.Duration) bool {
	return waitFor(func() bool { return p.idx.check(uint64(k)) }, timeout, p.buf.waitStep)
}

// Close releases this role's handle. The shared Buffer is torn down
// once every role has closed (spec.md §4.10).
func (p *Producer[T]) Close() error {
	p.buf.closeRole(roleProducer)
	return nil
}

// copySpan copies src into dst, which must hold exactly len(src) items
// across its First/Second pieces.
func copySpan[T any](dst Span[T], src []T) {
	n := copy(dst.First, src)
	if n < len(src) {
		copy(dst.Second, src[n:])
	}
}

// writeSpan writes v at logical offset i within span (across the
// First/Second split).
func writeSpan[T any](span Span[T], i int, v T) {
	if i < len(span.First) {
		span.First[i] = v
		return
	}
	span.Second[i-len(span.First)] = v
}
