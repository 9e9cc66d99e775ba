// producer_test.go: push variants and scenario 2's wrap-around slice view
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import "testing"

func TestPush_FullReturnsErrFullWithoutMutating(t *testing.T) {
	p, c, err := Split[int](3)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	if err := p.Push(1); err != nil {
		t.Fatal(err)
	}
	if err := p.Push(2); err != nil {
		t.Fatal(err)
	}
	before := p.Index()
	if err := p.Push(3); err != ErrFull {
		t.Fatalf("push into full ring: got %v, want ErrFull", err)
	}
	if p.Index() != before {
		t.Fatalf("index moved on failed push: %d -> %d", before, p.Index())
	}
}

func TestPushSlice_AllOrNothing(t *testing.T) {
	p, c, err := Split[int](4)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	if err := p.PushSlice([]int{1, 2, 3, 4, 5}); err != ErrFull {
		t.Fatalf("oversized PushSlice: got %v, want ErrFull", err)
	}
	if p.Available() != 3 {
		t.Fatalf("Available after rejected PushSlice: got %d, want 3 (unmodified)", p.Available())
	}

	if err := p.PushSlice([]int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	got := make([]int, 3)
	if n := c.CopySlice(got); n != 3 {
		t.Fatalf("CopySlice: got %d items", n)
	}
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

// TestBoundaryScenario2 is spec.md §8 scenario 2: capacity 5, with both
// indices first moved to 3, push 2, pop 1, push 3 -> consumer peeks a
// wrap-around pair of length 1 and tail length 3 over plain storage,
// and a single contiguous slice of length 4 over doubled storage.
func TestBoundaryScenario2_Plain(t *testing.T) {
	p, c, err := Split[int](5)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	// Move both indices to 3 so the four pending items straddle the
	// end of the backing array.
	mustPush(t, p, 0, 0, 0)
	for i := 0; i < 3; i++ {
		if _, ok := c.Pop(); !ok {
			t.Fatal("expected pop to succeed")
		}
	}

	mustPush(t, p, 1, 2)
	if _, ok := c.Pop(); !ok {
		t.Fatal("expected pop to succeed")
	}
	mustPush(t, p, 3, 4, 5)

	span, err := c.PeekSlice(4)
	if err != nil {
		t.Fatal(err)
	}
	if len(span.First) != 1 || len(span.Second) != 3 {
		t.Fatalf("wrap split: got First=%d Second=%d, want 1/3", len(span.First), len(span.Second))
	}
	all := append(append([]int{}, span.First...), span.Second...)
	want := []int{2, 3, 4, 5}
	for i := range want {
		if all[i] != want[i] {
			t.Fatalf("item %d: got %d, want %d", i, all[i], want[i])
		}
	}
}

func TestBoundaryScenario2_DoubledHeap(t *testing.T) {
	n := pageAlignedCapacityForTest(t)
	p, c, err := Split[int](n, WithDoubledHeap())
	if err != nil {
		t.Skipf("doubled heap unsupported on this platform: %v", err)
	}
	defer p.Close()
	defer c.Close()

	// Push to force the index near the end, then wrap.
	for i := 0; i < n-1; i++ {
		mustPush(t, p, i)
	}
	for i := 0; i < n-2; i++ {
		c.Pop()
	}
	mustPush(t, p, 1000, 1001, 1002)

	span, err := c.PeekSlice(4)
	if err != nil {
		t.Fatal(err)
	}
	if span.Second != nil {
		t.Fatalf("doubled-heap view should never split: got Second len %d", len(span.Second))
	}
	if len(span.First) != 4 {
		t.Fatalf("doubled-heap view length: got %d, want 4", len(span.First))
	}
}

func mustPush(t *testing.T, p *Producer[int], vs ...int) {
	t.Helper()
	for _, v := range vs {
		if err := p.Push(v); err != nil {
			t.Fatalf("push %d: %v", v, err)
		}
	}
}
