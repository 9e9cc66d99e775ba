// fibonacci_test.go: a producer/worker/consumer pipeline computing
// Fibonacci numbers in place, demonstrating the worker's stateless
// design (spec.md §9 Open Question b — the accumulator lives in the
// caller's own loop, never inside Worker).
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import "testing"

// TestFibonacciPipeline is spec.md §8 scenario 5: a producer emits
// integers 1..20, a worker with a caller-owned two-element accumulator
// resets whenever it sees input 1 and writes the running Fibonacci
// value, shifting its accumulator; the consumer collects fib(input)
// for every pushed input, where fib(1)=fib(2)=1, fib(3)=2, ...
func TestFibonacciPipeline(t *testing.T) {
	p, w, c, err := SplitMut[int](8)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	defer c.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer w.Close()

		var prev, curr uint64
		for n := 0; n < 20; n++ {
			v, err := w.GetNextMut()
			for err == ErrEmpty {
				v, err = w.GetNextMut()
			}
			if *v == 1 {
				prev, curr = 0, 1
			}
			fib := curr
			prev, curr = curr, prev+curr
			*v = int(fib)
			w.Advance(1)
		}
	}()

	for i := 1; i <= 20; i++ {
		for p.Push(i) == ErrFull {
		}
	}

	want := fibSequence(20)
	for i := 0; i < 20; i++ {
		v, ok := c.Pop()
		for !ok {
			v, ok = c.Pop()
		}
		if uint64(v) != want[i] {
			t.Fatalf("fib(%d): got %d, want %d", i+1, v, want[i])
		}
	}
	<-done
}

func fibSequence(n int) []uint64 {
	out := make([]uint64, n)
	var prev, curr uint64 = 0, 1
	for i := 0; i < n; i++ {
		fib := curr
		prev, curr = curr, prev+curr
		out[i] = fib
	}
	return out
}
