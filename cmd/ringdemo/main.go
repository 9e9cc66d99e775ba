// Command ringdemo demonstrates the mutring pipeline end to end: a
// producer goroutine emitting integers, an optional worker goroutine
// mutating them in place, and a consumer goroutine printing what
// arrives.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"log"
	"os"
	"sync"

	"github.com/agilira/flash-flags"
	"github.com/agilira/mutring"
)

func main() {
	fs := flashflags.New("ringdemo")
	capacity := fs.Int("capacity", 8, "ring buffer capacity (usable slots = capacity-1)")
	withWorker := fs.Bool("worker", true, "enable the mutating worker role (doubles each item)")
	count := fs.Int("count", 20, "number of items the producer emits")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("ringdemo: %v", err)
	}

	if withWorker.Value() {
		runWithWorker(capacity.Value(), count.Value())
		return
	}
	runPlain(capacity.Value(), count.Value())
}

func runPlain(capacity, count int) {
	p, c, err := mutring.Split[int](capacity)
	if err != nil {
		log.Fatalf("ringdemo: split: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer p.Close()
		for i := 1; i <= count; i++ {
			for p.Push(i) == mutring.ErrFull {
			}
		}
	}()
	go func() {
		defer wg.Done()
		defer c.Close()
		for n := 0; n < count; n++ {
			v, ok := c.Pop()
			for !ok {
				v, ok = c.Pop()
			}
			log.Printf("consumed %d", v)
		}
	}()
	wg.Wait()
}

func runWithWorker(capacity, count int) {
	p, w, c, err := mutring.SplitMut[int](capacity)
	if err != nil {
		log.Fatalf("ringdemo: split: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		defer p.Close()
		for i := 1; i <= count; i++ {
			for p.Push(i) == mutring.ErrFull {
			}
		}
	}()
	go func() {
		defer wg.Done()
		defer w.Close()
		for n := 0; n < count; n++ {
			v, err := w.GetNextMut()
			for err == mutring.ErrEmpty {
				v, err = w.GetNextMut()
			}
			*v *= 2
			w.Advance(1)
		}
	}()
	go func() {
		defer wg.Done()
		defer c.Close()
		for n := 0; n < count; n++ {
			v, ok := c.Pop()
			for !ok {
				v, ok = c.Pop()
			}
			log.Printf("consumed %d", v)
		}
	}()
	wg.Wait()
}
