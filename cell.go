// cell.go: interior-mutability storage slot
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import "unsafe"

// Cell is a single storage slot that may hold a valid T, a zero-reset
// (logically empty) value, or a value the holder has promised to treat
// as a duplicate source. It is the leaf abstraction every other layer
// in this package builds on.
//
// Cell has no synchronization of its own; callers reach it only through
// the index-protocol-guarded Producer/Worker/Consumer/Detached handles,
// which establish that at most one role writes a given slot and that
// readers never observe a slot a writer still owns.
type Cell[T any] struct {
	value T
}

// NewCell constructs an initialized cell holding v.
func NewCell[T any](v T) Cell[T] {
	return Cell[T]{value: v}
}

// NewZeroedCell constructs a zero-reset cell. Its byte pattern is the
// language zero value for T.
func NewZeroedCell[T any]() Cell[T] {
	return Cell[T]{}
}

// Take swaps the cell's contents with the zero value and returns what
// was there. Precondition: the slot is initialized; calling Take twice
// in a row without an intervening write returns the zero value both
// times, which is almost never what a caller wants (see PopMove).
func (c *Cell[T]) Take() T {
	old := c.value
	var zero T
	c.value = zero
	return old
}

// Duplicate returns a bitwise copy of the cell's current value without
// changing its state. Precondition: T is safe to read twice — the
// caller is attesting uniqueness of use, not the cell.
func (c *Cell[T]) Duplicate() T {
	return c.value
}

// Set overwrites the cell's contents with v, returning the cell to the
// initialized state regardless of what it held before.
func (c *Cell[T]) Set(v T) {
	c.value = v
}

// Ref returns a pointer to the cell's current value. Precondition: the
// slot is initialized.
func (c *Cell[T]) Ref() *T {
	return &c.value
}

// Ptr returns a raw, untyped pointer to the cell's storage. Always safe
// to obtain; unsafe to dereference unless the slot is initialized.
func (c *Cell[T]) Ptr() unsafe.Pointer {
	return unsafe.Pointer(&c.value)
}

// IsZeroBytes reports whether the cell's byte representation is all
// zero. This is a heuristic proxy for "uninitialized since the last
// Take", not a semantic initialization tag. No code in this package
// branches on it: the *_init family on Producer behaves exactly like
// the plain variants in Go (see PushInit). A T whose
// valid, meaningful value happens to be the all-zero bit pattern will
// be indistinguishable from a zero-reset slot; that is an accepted
// precondition of the *_init discipline (spec Open Question (a)).
func (c *Cell[T]) IsZeroBytes() bool {
	size := int(unsafe.Sizeof(c.value))
	if size == 0 {
		return true
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&c.value)), size)
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
