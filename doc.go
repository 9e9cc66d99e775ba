// Package mutring provides a lock-free, single-producer /
// single-worker / single-consumer (SPSWC) mutable ring buffer.
//
// A Producer appends items at the tail. An optional Worker mutates
// pending items in place, in FIFO order, behind the producer. A
// Consumer observes and removes items behind the worker — or directly
// behind the producer when the Buffer has no worker. All three roles
// share one fixed-capacity Buffer and coordinate purely through three
// published indices; there are no locks anywhere on the hot path.
//
// # Basic pipeline, no worker
//
//	p, c, err := mutring.Split[int](8)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//	defer c.Close()
//
//	if err := p.Push(42); err != nil {
//		log.Fatal(err)
//	}
//	v, ok := c.Pop()
//
// # Worker pipeline
//
//	p, w, c, err := mutring.SplitMut[int](8)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//	defer w.Close()
//	defer c.Close()
//
//	_ = p.Push(41)
//	if v, err := w.GetNextMut(); err == nil {
//		*v++
//		w.Advance(1)
//	}
//	v, _ := c.Pop() // 42
//
// # Capacity
//
// A Buffer of capacity n holds at most n-1 items at once — the slot at
// the producer's index is never simultaneously occupied, which is how
// full and empty are told apart without a separate counter. Requesting
// n<1 returns ErrInvalidCapacity.
//
// # Storage strategies
//
// By default a Buffer allocates one Go slice of Cell[T] once at
// construction (WithHeap is functionally identical in this port — see
// storage.go). WithDoubledHeap maps the same physical pages twice back
// to back so every wrap-around slice view collapses to a single linear
// slice instead of a two-piece pair; it requires capacity*sizeof(T) to
// be a multiple of the platform page size and is only available on
// linux (see the vmem subpackage).
//
// # Async mirror
//
// The async subpackage wraps the sync Producer/Worker/Consumer with
// context-cancellable blocking operations, built on Go channels
// instead of Rust's Future/Poll — see that package's doc comment.
//
// # Detached lookahead
//
// Worker.Detach and Consumer.Detach return a Detached adapter whose
// Advance/GoBack mutate only a local index and cache, useful for
// speculative lookahead that may need to retract before publishing.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package mutring
