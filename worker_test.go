// worker_test.go: in-place mutation and scenario 3's partial-advance case
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import "testing"

// TestBoundaryScenario3 is spec.md §8 scenario 3: capacity 5 with a
// worker, push 5 (4 usable), worker applies x->x+1 on 3 elements and
// advances 3; consumer reads 3 elements equal to x+1 and reports 0
// available further; worker reports 1 remaining (4 pushed total, 3
// consumed by the worker).
func TestBoundaryScenario3(t *testing.T) {
	p, w, c, err := SplitMut[int](5)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer w.Close()
	defer c.Close()

	for i := 1; i <= 4; i++ {
		if err := p.Push(i); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	span, err := w.GetSliceMutExact(3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range span.First {
		span.First[i]++
	}
	for i := range span.Second {
		span.Second[i]++
	}
	w.Advance(3)

	if got := w.Available(); got != 1 {
		t.Fatalf("worker available after partial advance: got %d, want 1", got)
	}
	for i, want := range []int{2, 3, 4} {
		v, ok := c.Pop()
		if !ok || v != want {
			t.Fatalf("item %d: got (%d,%v), want (%d,true)", i, v, ok, want)
		}
	}
	if got := c.PeekAvailable(); got != 0 {
		t.Fatalf("consumer available after drain: got %d, want 0", got)
	}
}

func TestGetSliceMutMultipleOf(t *testing.T) {
	p, w, c, err := SplitMut[int](9)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer w.Close()
	defer c.Close()

	for i := 0; i < 7; i++ {
		if err := p.Push(i); err != nil {
			t.Fatal(err)
		}
	}
	span := w.GetSliceMutMultipleOf(2)
	if span.Len() != 6 {
		t.Fatalf("GetSliceMutMultipleOf(2) on 7 pending: got %d, want 6", span.Len())
	}
	w.Advance(span.Len())
	if w.Available() != 1 {
		t.Fatalf("worker available after multiple-of advance: got %d, want 1", w.Available())
	}
}

func TestGetSliceMutAvail_EmptyWhenNothingPending(t *testing.T) {
	p, w, c, err := SplitMut[int](4)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer w.Close()
	defer c.Close()

	span := w.GetSliceMutAvail()
	if span.Len() != 0 {
		t.Fatalf("GetSliceMutAvail on empty ring: got len %d, want 0", span.Len())
	}
}

func TestWorkerResetIndex_DiscardsPending(t *testing.T) {
	p, w, c, err := SplitMut[int](5)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer w.Close()
	defer c.Close()

	mustPush(t, p, 1, 2, 3)
	w.ResetIndex()
	if w.Available() != 0 {
		t.Fatalf("worker available after ResetIndex: got %d, want 0", w.Available())
	}
	// The worker's index skipped past these items without mutating
	// them; they remain in the ring, unmutated, and now readable by
	// the consumer (spec.md §4.4's reset_index "skip to the front").
	if got := c.PeekAvailable(); got != 3 {
		t.Fatalf("consumer available after worker ResetIndex: got %d, want 3 (items survive, unmutated)", got)
	}
	v, ok := c.Pop()
	if !ok || v != 1 {
		t.Fatalf("first item after worker skip: got (%d,%v), want (1,true)", v, ok)
	}
}
