// producer.go: async mirror of mutring.Producer
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package async

import (
	"context"
	"errors"
	"time"

	"github.com/agilira/mutring"
)

// Producer wraps a *mutring.Producer, adding context-cancellable
// blocking variants of its availability-dependent operations.
type Producer[T any] struct {
	p *mutring.Producer[T]
}

// NewProducer wraps p. p's Buffer must have been built with
// mutring.WithAsync for WakeChannel to carry real notifications;
// without it, every wait degrades to the fallback poll tick only.
func NewProducer[T any](p *mutring.Producer[T]) *Producer[T] { return &Producer[T]{p: p} }

// Sync returns the underlying synchronous handle.
func (a *Producer[T]) Sync() *mutring.Producer[T] { return a.p }

// Push blocks until v is written, ctx is done, or the downstream role
// closes. A cancelled ctx returns ctx.Err() without having written
// anything — no partial mutation on a dropped wait, matching spec.md
// §9's "a single cancellation drops the future without mutation".
func (a *Producer[T]) Push(ctx context.Context, v T) error {
	for {
		err := a.p.Push(v)
		if err == nil {
			return nil
		}
		if !errors.Is(err, mutring.ErrFull) {
			return err
		}
		if waitErr := a.wait(ctx); waitErr != nil {
			return waitErr
		}
	}
}

// PushSlice blocks until all of vals is written as one contiguous
// operation, ctx is done, or the downstream role closes.
func (a *Producer[T]) PushSlice(ctx context.Context, vals []T) error {
	for {
		err := a.p.PushSlice(vals)
		if err == nil {
			return nil
		}
		if !errors.Is(err, mutring.ErrFull) {
			return err
		}
		if waitErr := a.wait(ctx); waitErr != nil {
			return waitErr
		}
	}
}

func (a *Producer[T]) wait(ctx context.Context) error {
	if !a.p.DownstreamAlive() {
		return mutring.ErrClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-a.p.WakeChannel():
		return nil
	case <-time.After(jitteredFallback(defaultFallback)):
		return nil
	}
}
