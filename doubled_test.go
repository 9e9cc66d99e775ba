// doubled_test.go: shared helper for doubled-heap-backed tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

import (
	"testing"
	"unsafe"

	"github.com/agilira/mutring/vmem"
)

// pageAlignedCapacityForTest returns a capacity n such that
// n*sizeof(int) is exactly one platform page, satisfying
// WithDoubledHeap's alignment precondition.
func pageAlignedCapacityForTest(t *testing.T) int {
	t.Helper()
	elemSize := int(unsafe.Sizeof(int(0)))
	ps := vmem.PageSize()
	if ps%elemSize != 0 {
		t.Skipf("page size %d not a multiple of int size %d", ps, elemSize)
	}
	return ps / elemSize
}
