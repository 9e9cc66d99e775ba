// buffer.go: the shared ring state three role handles coordinate over
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import (
	"io"
	"sync/atomic"
	"time"
)

// waker is a single-slot, edge-coalesced wake channel: at most one
// outstanding notification is ever buffered, matching spec.md §4.9's
// "one waker slot per role is sufficient because there is at most one
// outstanding future per role". Grounded on other_examples' shmring
// readable/writable channel idiom (non-blocking send, always re-check
// state after a wake).
type waker struct {
	ch chan struct{}
}

func newWaker() *waker { return &waker{ch: make(chan struct{}, 1)} }

// wake is safe to call on a nil *waker (sync-only Buffers never
// allocate wakers) and never blocks.
func (w *waker) wake() {
	if w == nil {
		return
	}
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// C returns the notification channel, or nil if this role has no
// waker (sync-only construction).
func (w *waker) C() <-chan struct{} {
	if w == nil {
		return nil
	}
	return w.ch
}

// role indexes the three waker/alive slots in Buffer.
type role int

const (
	roleProducer role = iota
	roleWorker
	roleConsumer
)

// Buffer is the shared ring state a Producer, optional Worker, and
// Consumer coordinate over. It is never constructed directly by
// callers outside this package; Split/SplitMut build one and hand out
// role handles that share it through a *Buffer pointer (Go's GC stands
// in for the spec's reference-counted SharedHandle — see DESIGN.md).
type Buffer[T any] struct {
	storage   storageCells[T]
	n         uint64
	hasWorker bool

	prodIdx indexVar
	workIdx indexVar
	consIdx indexVar

	aliveIters atomic.Uint32
	alive      [3]atomic.Bool

	async    bool
	wakers   [3]*waker
	waitStep time.Duration
}

func newBuffer[T any](n int, opts Options) (*Buffer[T], error) {
	if n <= 0 {
		return nil, ErrInvalidCapacity
	}
	var storage storageCells[T]
	switch opts.kind {
	case storageHeap:
		storage = newHeapStorage[T](n)
	case storageDoubled:
		ds, err := newDoubledStorage[T](n)
		if err != nil {
			return nil, err
		}
		storage = ds
	default:
		storage = newStaticStorage[T](n)
	}
	return assembleBuffer[T](storage, n, opts), nil
}

func newBufferFrom[T any](seed []T, opts Options) (*Buffer[T], error) {
	n := len(seed)
	if n <= 0 {
		return nil, ErrInvalidCapacity
	}
	var storage storageCells[T]
	switch opts.kind {
	case storageHeap:
		storage = newHeapStorageFrom(seed)
	case storageDoubled:
		ds, err := newDoubledStorage[T](n)
		if err != nil {
			return nil, err
		}
		for i, v := range seed {
			ds.Slot(i).Set(v)
		}
		storage = ds
	default:
		storage = newStaticStorageFrom(seed)
	}
	return assembleBuffer[T](storage, n, opts), nil
}

func assembleBuffer[T any](storage storageCells[T], n int, opts Options) *Buffer[T] {
	b := &Buffer[T]{storage: storage, n: uint64(n), async: opts.async, waitStep: opts.waitStep}
	if opts.local {
		b.prodIdx = &plainIndex{}
		b.workIdx = &plainIndex{}
		b.consIdx = &plainIndex{}
	} else {
		b.prodIdx = &atomicIndex{}
		b.workIdx = &atomicIndex{}
		b.consIdx = &atomicIndex{}
	}
	if opts.async {
		b.wakers[roleProducer] = newWaker()
		b.wakers[roleWorker] = newWaker()
		b.wakers[roleConsumer] = newWaker()
	}
	return b
}

// Split builds a producer/consumer pair with no worker in between: the
// consumer's availability formula reads the producer's index directly.
// n is the total capacity; usable capacity is n-1 (spec.md §9 Open
// Question c).
func Split[T any](n int, opts ...Option) (*Producer[T], *Consumer[T], error) {
	o := newOptions(opts...)
	buf, err := newBuffer[T](n, o)
	if err != nil {
		return nil, nil, err
	}
	return wireSplit(buf)
}

// SplitFrom is Split, pre-populated from seed: the first len(seed)
// slots are already pending for the consumer to read. The caller
// must leave at least one free slot (len(seed) < n) per I3; longer
// seeds are truncated to n-1.
func SplitFrom[T any](n int, seed []T, opts ...Option) (*Producer[T], *Consumer[T], error) {
	if n <= 0 {
		return nil, nil, ErrInvalidCapacity
	}
	o := newOptions(opts...)
	padded := padSeed(seed, n)
	buf, err := newBufferFrom[T](padded, o)
	if err != nil {
		return nil, nil, err
	}
	p, c, err := wireSplit(buf)
	if err != nil {
		return nil, nil, err
	}
	seedLen := len(seed)
	if seedLen > n-1 {
		seedLen = n - 1
	}
	initSeedIndices(buf, p.idx, c.idx, seedLen)
	return p, c, nil
}

func padSeed[T any](seed []T, n int) []T {
	if len(seed) >= n {
		seed = seed[:n-1]
	}
	out := make([]T, n)
	copy(out, seed)
	return out
}

func initSeedIndices[T any](buf *Buffer[T], prod, cons *cursor[T], seedLen int) {
	cons.local, cons.avail = 0, 0
	prod.local = uint64(seedLen) % buf.n
	buf.prodIdx.Store(prod.local)
}

func wireSplit[T any](buf *Buffer[T]) (*Producer[T], *Consumer[T], error) {
	buf.hasWorker = false
	buf.aliveIters.Store(2)
	buf.alive[roleProducer].Store(true)
	buf.alive[roleConsumer].Store(true)

	p := &Producer[T]{buf: buf, idx: &cursor[T]{
		n: buf.n, owner: buf.prodIdx, succ: buf.consIdx,
		isProducer: true, wakeTarget: buf.wakers[roleConsumer],
	}}
	c := &Consumer[T]{buf: buf, hasWorker: false, idx: &cursor[T]{
		n: buf.n, owner: buf.consIdx, succ: buf.prodIdx,
		wakeTarget: buf.wakers[roleProducer],
	}}
	return p, c, nil
}

// SplitMut builds a producer/worker/consumer triple: the worker mutates
// items in place between the producer's and consumer's view of the
// ring, and the consumer's availability formula reads the worker's
// index instead of the producer's.
func SplitMut[T any](n int, opts ...Option) (*Producer[T], *Worker[T], *Consumer[T], error) {
	o := newOptions(opts...)
	buf, err := newBuffer[T](n, o)
	if err != nil {
		return nil, nil, nil, err
	}
	return wireSplitMut(buf)
}

func wireSplitMut[T any](buf *Buffer[T]) (*Producer[T], *Worker[T], *Consumer[T], error) {
	buf.hasWorker = true
	buf.aliveIters.Store(3)
	buf.alive[roleProducer].Store(true)
	buf.alive[roleWorker].Store(true)
	buf.alive[roleConsumer].Store(true)

	p := &Producer[T]{buf: buf, idx: &cursor[T]{
		n: buf.n, owner: buf.prodIdx, succ: buf.consIdx,
		isProducer: true, wakeTarget: buf.wakers[roleWorker],
	}}
	w := &Worker[T]{buf: buf, idx: &cursor[T]{
		n: buf.n, owner: buf.workIdx, succ: buf.prodIdx,
		wakeTarget: buf.wakers[roleConsumer],
	}}
	c := &Consumer[T]{buf: buf, hasWorker: true, idx: &cursor[T]{
		n: buf.n, owner: buf.consIdx, succ: buf.workIdx,
		wakeTarget: buf.wakers[roleProducer],
	}}
	return p, w, c, nil
}

// storageCloser is implemented by doubledStorage; static/heap storage
// is plain Go memory and needs no explicit release.
type storageCloser interface {
	io.Closer
}

// closeRole decrements aliveIters with release ordering and, if this
// drop is the one that brings it to zero, tears down the storage. See
// handle.go for the liveness-query side of this state.
func (b *Buffer[T]) closeRole(r role) {
	if !b.alive[r].CompareAndSwap(true, false) {
		return
	}
	// Wake the direct downstream role, same target Advance notifies,
	// so a parked async future observes the liveness change instead of
	// blocking forever (spec.md §4.10).
	b.downstreamWaker(r).wake()
	if b.aliveIters.Add(^uint32(0)) == 0 {
		if closer, ok := b.storage.(storageCloser); ok {
			_ = closer.Close()
		}
	}
}

func (b *Buffer[T]) downstreamWaker(r role) *waker {
	switch r {
	case roleProducer:
		if b.hasWorker {
			return b.wakers[roleWorker]
		}
		return b.wakers[roleConsumer]
	case roleWorker:
		return b.wakers[roleConsumer]
	default: // roleConsumer
		return b.wakers[roleProducer]
	}
}

func (b *Buffer[T]) isAlive(r role) bool { return b.alive[r].Load() }
