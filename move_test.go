// move_test.go: PopMove's zero-reset semantics, as distinct from Pop's
// duplicate-without-clearing (spec.md §4.7/§8 scenario 6 covers the
// reinit cycle end-to-end from consumer_test.go; this file isolates the
// slot-level byte-pattern guarantee that makes that cycle safe).
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import "testing"

// TestPopMove_ZeroesTheSlot verifies that PopMove, unlike Pop, leaves
// the vacated cell at its zero byte pattern rather than a stale copy of
// the item that was just removed.
func TestPopMove_ZeroesTheSlot(t *testing.T) {
	p, c, err := Split[int](4)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	mustPush(t, p, 42)
	slotBefore := c.idx.local
	v, ok := c.PopMove()
	if !ok || v != 42 {
		t.Fatalf("PopMove: got (%d,%v), want (42,true)", v, ok)
	}
	if !c.buf.storage.Slot(int(slotBefore)).IsZeroBytes() {
		t.Fatal("slot not zero-reset after PopMove")
	}
}

// TestPop_LeavesSlotUntouched is Pop's counterpart: a duplicate read
// does not clear the slot, since spec.md only requires PopMove to
// establish the *_init precondition for the next producer write.
func TestPop_LeavesSlotUntouched(t *testing.T) {
	p, c, err := Split[int](4)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	mustPush(t, p, 7)
	slotBefore := c.idx.local
	v, ok := c.Pop()
	if !ok || v != 7 {
		t.Fatalf("Pop: got (%d,%v), want (7,true)", v, ok)
	}
	if c.buf.storage.Slot(int(slotBefore)).IsZeroBytes() {
		t.Fatal("Pop should not zero-reset the slot")
	}
}

// TestMoveThenReinit_FullCycle drains an entire ring via PopMove,
// confirms every vacated slot reads as zero-reset, then reinitializes
// the whole ring via PushSliceInit and confirms the fresh data reads
// back untouched by the prior occupants.
func TestMoveThenReinit_FullCycle(t *testing.T) {
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
	for i := 0; i < 4; i++ {
		if !c.buf.storage.Slot(i).IsZeroBytes() {
			t.Fatalf("slot %d not zero-reset after full PopMove drain", i)
		}
	}

	if err := p.PushSliceInit([]int{10, 20, 30, 40}); err != nil {
		t.Fatal(err)
	}
	got := make([]int, 4)
	if n := c.CopySlice(got); n != 4 {
		t.Fatalf("CopySlice after reinit: got %d items", n)
	}
	for i, want := range []int{10, 20, 30, 40} {
		if got[i] != want {
			t.Fatalf("item %d: got %d, want %d", i, got[i], want)
		}
	}
}
