// errors.go: sentinel errors for the ring buffer core
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import "errors"

// Pre-allocated errors to avoid allocations in hot paths.
var (
	// ErrFull is returned by a push operation when the producer has no
	// available slot. Nothing is written; the caller still holds the
	// value and no state is modified.
	ErrFull = errors.New("mutring: buffer full")

	// ErrEmpty is returned by a read (PeekRef, PeekSlice, GetNextMut,
	// GetSliceMutExact) when fewer items than requested are available.
	// No state is modified.
	ErrEmpty = errors.New("mutring: buffer empty")

	// ErrClosed is returned by the async subpackage's blocking
	// operations when the role they wait on has closed its handle. The
	// sync operations do not check liveness and never return it.
	ErrClosed = errors.New("mutring: handle closed")

	// ErrDetached names an operation that needs an attached index being
	// invoked through a Detached adapter. No operation in this package
	// returns it.
	ErrDetached = errors.New("mutring: operation invalid while detached")

	// ErrInvalidCapacity is returned when a requested capacity is zero
	// or negative.
	ErrInvalidCapacity = errors.New("mutring: capacity must be >= 1")

	// ErrUnsupportedPlatform is returned when the doubled virtual-memory
	// mapping is requested on a platform or capacity that cannot support
	// it (non-linux build, or capacity not a multiple of the page size).
	ErrUnsupportedPlatform = errors.New("mutring: doubled-heap mapping unsupported on this platform")
)
