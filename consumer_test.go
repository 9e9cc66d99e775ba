// consumer_test.go: pop variants and scenario 6's move/reinit cycle
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import "testing"

func TestPop_EmptyReturnsFalseWithoutMutating(t *testing.T) {
	p, c, err := Split[int](3)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	before := c.Index()
	if _, ok := c.Pop(); ok {
		t.Fatal("pop on empty ring should fail")
	}
	if c.Index() != before {
		t.Fatalf("index moved on failed pop: %d -> %d", before, c.Index())
	}
}

func TestPop_PreservesOrder(t *testing.T) {
	p, c, err := Split[int](8)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	for i := 0; i < 100; i++ {
		if err := p.Push(i); err != nil {
			t.Fatal(err)
		}
		if i%2 == 1 {
			for j := i - 1; j <= i; j++ {
				v, ok := c.Pop()
				if !ok || v != j {
					t.Fatalf("pop: got (%d,%v), want (%d,true)", v, ok, j)
				}
			}
		}
	}
}

// TestBoundaryScenario6 is spec.md §8 scenario 6: after PopMove on all
// items then PushSliceInit with fresh data, the consumer reads exactly
// the fresh data.
func TestBoundaryScenario6(t *testing.T) {
	p, c, err := Split[int](5)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	mustPush(t, p, 1, 2, 3, 4)
	for i := 0; i < 4; i++ {
		if _, ok := c.PopMove(); !ok {
			t.Fatalf("PopMove %d failed", i)
		}
	}
	if err := p.PushSliceInit([]int{10, 20, 30, 40}); err != nil {
		t.Fatal(err)
	}
	got := make([]int, 4)
	if n := c.CopySlice(got); n != 4 {
		t.Fatalf("CopySlice after reinit: got %d items", n)
	}
	want := []int{10, 20, 30, 40}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

type clonable struct{ n int }

func (c clonable) Clone() clonable { return clonable{n: c.n} }

func TestCloneItem_And_CloneSlice(t *testing.T) {
	p, c, err := Split[clonable](8)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	if err := PushSliceClone(p, []clonable{{1}, {2}, {3}}); err != nil {
		t.Fatal(err)
	}

	var first clonable
	if !CloneItem(c, &first) {
		t.Fatal("CloneItem failed")
	}
	if first.n != 1 {
		t.Fatalf("CloneItem: got %d, want 1", first.n)
	}

	rest := make([]clonable, 2)
	if n := CloneSlice(c, rest); n != 2 {
		t.Fatalf("CloneSlice: got %d items", n)
	}
	if rest[0].n != 2 || rest[1].n != 3 {
		t.Fatalf("CloneSlice contents: got %+v", rest)
	}
}

func TestCopyItem(t *testing.T) {
	p, c, err := Split[int](4)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	mustPush(t, p, 7)
	var dst int
	if !c.CopyItem(&dst) {
		t.Fatal("CopyItem failed")
	}
	if dst != 7 {
		t.Fatalf("CopyItem: got %d, want 7", dst)
	}
	if c.CopyItem(&dst) {
		t.Fatal("CopyItem on empty ring should fail")
	}
}
