// storage.go: contiguous Cell array backing a Buffer
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/agilira/mutring/vmem"
)

// Storage is a fixed-length, random-access sequence of Cells. A Buffer
// owns exactly one Storage for its entire lifetime; N is fixed at
// construction and never changes (spec Non-goal: dynamic resizing).
type Storage[T any] interface {
	// Slot returns the cell at index i, i in [0, Len()).
	Slot(i int) *Cell[T]

	// Len returns N, the number of logical cells.
	Len() int

	// Ptr returns a raw pointer to the first cell of the backing
	// region. For the doubled variant the addressed region is 2*Len()
	// cells long with the mirror property documented on doubledStorage.
	Ptr() unsafe.Pointer

	// Doubled reports whether this storage maps its region twice so
	// that any window of up to Len() cells starting at any offset in
	// [0, Len()) is a single contiguous slice.
	Doubled() bool
}

// storageCells is the internal counterpart Storage implementations also
// satisfy: a flat view of the addressable cell range (N cells, or 2N for
// the doubled variant) that chunk/chunk_mut slice directly instead of
// indexing cell-by-cell.
type storageCells[T any] interface {
	Storage[T]
	cellSlice() []Cell[T]
}

// Span is a view of k contiguous-in-logical-order items starting at a
// role's current index. First always holds at least one element when
// k>0; Second is non-nil only when the view wraps around the end of a
// non-doubled storage's backing array.
type Span[T any] struct {
	First  []T
	Second []T
}

// Len returns the total number of items spanned.
func (s Span[T]) Len() int { return len(s.First) + len(s.Second) }

// cellsToT reinterprets a contiguous []Cell[T] window as []T. Valid
// because Cell[T] is a single-field struct holding value T directly, so
// its size and alignment are identical to T's — the same "wrapper
// struct, zero layout overhead" assumption other_examples' shm seqlock
// code relies on for its cache-line-sized message structs.
func cellsToT[T any](cells []Cell[T]) []T {
	if len(cells) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&cells[0])), len(cells))
}

// spanAt builds the view for k items starting at local index owner
// within an n-cell logical ring backed by storage (which may expose a
// doubled 2n-cell region).
func spanAt[T any](storage storageCells[T], n, owner, k uint64) Span[T] {
	if k == 0 {
		return Span[T]{}
	}
	full := storage.cellSlice()
	if storage.Doubled() {
		return Span[T]{First: cellsToT(full[owner : owner+k])}
	}
	if owner+k <= n {
		return Span[T]{First: cellsToT(full[owner : owner+k])}
	}
	tail := n - owner
	return Span[T]{
		First:  cellsToT(full[owner:n]),
		Second: cellsToT(full[0 : k-tail]),
	}
}

// staticStorage is a plain, pre-sized Cell slice allocated once at
// construction. It stands in for the spec's inline/stack strategy: Go
// has no const-generic array length, so there is no way to express a
// compile-time-sized inline array as a type parameter, and a Go slice
// is heap-backed regardless of whether it is declared "inline" or not.
// See DESIGN.md's Open Question resolution for the full rationale.
// "Static" captures the property that actually matters here: no
// allocation occurs after construction.
type staticStorage[T any] struct {
	cells []Cell[T]
}

func newStaticStorage[T any](n int) *staticStorage[T] {
	return &staticStorage[T]{cells: make([]Cell[T], n)}
}

func newStaticStorageFrom[T any](seed []T) *staticStorage[T] {
	cells := make([]Cell[T], len(seed))
	for i, v := range seed {
		cells[i] = NewCell(v)
	}
	return &staticStorage[T]{cells: cells}
}

func (s *staticStorage[T]) Slot(i int) *Cell[T] { return &s.cells[i] }
func (s *staticStorage[T]) Len() int            { return len(s.cells) }
func (s *staticStorage[T]) Doubled() bool       { return false }
func (s *staticStorage[T]) cellSlice() []Cell[T] { return s.cells }
func (s *staticStorage[T]) Ptr() unsafe.Pointer {
	if len(s.cells) == 0 {
		return nil
	}
	return unsafe.Pointer(&s.cells[0])
}

// heapStorage is the spec's "Heap, normal" strategy: functionally
// identical to staticStorage in Go (both are a single heap-allocated
// []Cell[T]), kept as a distinct type so storage-kind selection in
// config.go documents the spec's three strategies explicitly rather
// than collapsing two of them silently into one.
type heapStorage[T any] struct {
	cells []Cell[T]
}

func newHeapStorage[T any](n int) *heapStorage[T] {
	return &heapStorage[T]{cells: make([]Cell[T], n)}
}

func newHeapStorageFrom[T any](seed []T) *heapStorage[T] {
	cells := make([]Cell[T], len(seed))
	for i, v := range seed {
		cells[i] = NewCell(v)
	}
	return &heapStorage[T]{cells: cells}
}

func (s *heapStorage[T]) Slot(i int) *Cell[T]    { return &s.cells[i] }
func (s *heapStorage[T]) Len() int               { return len(s.cells) }
func (s *heapStorage[T]) Doubled() bool          { return false }
func (s *heapStorage[T]) cellSlice() []Cell[T]   { return s.cells }
func (s *heapStorage[T]) Ptr() unsafe.Pointer {
	if len(s.cells) == 0 {
		return nil
	}
	return unsafe.Pointer(&s.cells[0])
}

// doubledStorage maps an n-cell region twice back to back via the vmem
// platform facility, so any k<=n window starting at any offset in
// [0,n) is a single linear slice — no wrap-around pair ever needed.
// Implements io.Closer so the teardown path (Buffer.closeRole in
// buffer.go) can munmap it when the last role drops.
type doubledStorage[T any] struct {
	region   vmem.Region
	n        int
	elemSize int
}

func newDoubledStorage[T any](n int) (*doubledStorage[T], error) {
	if n <= 0 {
		return nil, ErrInvalidCapacity
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		elemSize = 1
	}
	region, err := vmem.NewDoubled(n * elemSize)
	if err != nil {
		if errors.Is(err, vmem.ErrUnsupported) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedPlatform, err)
		}
		return nil, fmt.Errorf("mutring: doubled storage: %w", err)
	}
	return &doubledStorage[T]{region: region, n: n, elemSize: elemSize}, nil
}

func (d *doubledStorage[T]) cellSlice() []Cell[T] {
	return unsafe.Slice((*Cell[T])(d.region.Base()), 2*d.n)
}
func (d *doubledStorage[T]) Slot(i int) *Cell[T]  { return &d.cellSlice()[i%d.n] }
func (d *doubledStorage[T]) Len() int             { return d.n }
func (d *doubledStorage[T]) Doubled() bool        { return true }
func (d *doubledStorage[T]) Ptr() unsafe.Pointer  { return d.region.Base() }
func (d *doubledStorage[T]) Close() error         { return d.region.Close() }
