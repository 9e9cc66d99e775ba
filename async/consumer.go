// consumer.go: async mirror of mutring.Consumer
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package async

import (
	"context"
	"time"

	"github.com/agilira/mutring"
)

// Consumer wraps a *mutring.Consumer, adding context-cancellable
// blocking variants of its availability-dependent operations.
type Consumer[T any] struct {
	c *mutring.Consumer[T]
}

// NewConsumer wraps c.
func NewConsumer[T any](c *mutring.Consumer[T]) *Consumer[T] { return &Consumer[T]{c: c} }

// Sync returns the underlying synchronous handle.
func (a *Consumer[T]) Sync() *mutring.Consumer[T] { return a.c }

// Pop blocks until an item is available or ctx is done / the upstream
// role closes with nothing left pending.
func (a *Consumer[T]) Pop(ctx context.Context) (T, error) {
	for {
		v, ok := a.c.Pop()
		if ok {
			return v, nil
		}
		if err := a.wait(ctx); err != nil {
			var zero T
			return zero, err
		}
	}
}

// PopMove is Pop's move-out counterpart; see mutring.Consumer.PopMove.
func (a *Consumer[T]) PopMove(ctx context.Context) (T, error) {
	for {
		v, ok := a.c.PopMove()
		if ok {
			return v, nil
		}
		if err := a.wait(ctx); err != nil {
			var zero T
			return zero, err
		}
	}
}

// PeekSlice blocks until k items are available to peek without
// removing them.
func (a *Consumer[T]) PeekSlice(ctx context.Context, k int) (mutring.Span[T], error) {
	for {
		s, err := a.c.PeekSlice(k)
		if err == nil {
			return s, nil
		}
		if err != mutring.ErrEmpty {
			return mutring.Span[T]{}, err
		}
		if waitErr := a.wait(ctx); waitErr != nil {
			return mutring.Span[T]{}, waitErr
		}
	}
}

// wait parks until a wake arrives, ctx is cancelled, or the immediate
// upstream role (worker if the Buffer has one, else producer) has
// closed with nothing left to read.
func (a *Consumer[T]) wait(ctx context.Context) error {
	if !a.c.UpstreamAlive() {
		return mutring.ErrClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-a.c.WakeChannel():
		return nil
	case <-time.After(jitteredFallback(defaultFallback)):
		return nil
	}
}
