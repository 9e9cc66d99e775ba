// worker.go: async mirror of mutring.Worker
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

// Worker wraps a *mutring.Worker, adding context-cancellable blocking
// variants of its availability-dependent operations.
type Worker[T any] struct {
	w *mutring.Worker[T]
}

// NewWorker wraps w.
func NewWorker[T any](w *mutring.Worker[T]) *Worker[T] { return &Worker[T]{w: w} }

// Sync returns the underlying synchronous handle.
func (a *Worker[T]) Sync() *mutring.Worker[T] { return a.w }

// GetNextMut blocks until at least one producer-pending slot is
// available, returning a pointer for in-place mutation; the caller
// must still call Sync().Advance(1) afterward. Blocks until ctx is
// done or the producer closes with nothing left pending.
func (a *Worker[T]) GetNextMut(ctx context.Context) (*T, error) {
	for {
		v, err := a.w.GetNextMut()
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, mutring.ErrEmpty) {
			return nil, err
		}
		if waitErr := a.wait(ctx); waitErr != nil {
			return nil, waitErr
		}
	}
}

// GetSliceMutExact blocks until at least k pending slots are available
// and returns a view of exactly k of them.
func (a *Worker[T]) GetSliceMutExact(ctx context.Context, k int) (mutring.Span[T], error) {
	for {
		s, err := a.w.GetSliceMutExact(k)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, mutring.ErrEmpty) {
			return mutring.Span[T]{}, err
		}
		if waitErr := a.wait(ctx); waitErr != nil {
			return mutring.Span[T]{}, waitErr
		}
	}
}

func (a *Worker[T]) wait(ctx context.Context) error {
	if !a.w.IsProdAlive() {
		return mutring.ErrClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-a.w.WakeChannel():
		return nil
	case <-time.After(jitteredFallback(defaultFallback)):
		return nil
	}
}
