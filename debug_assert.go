// debug_assert.go: panicking precondition checks for -tags mutring_debug
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

//go:build mutring_debug

package mutring

import "fmt"

// debugAssertf panics with a formatted message when cond is false.
// Only compiled in with -tags mutring_debug; see debug.go for the
// default no-op.
func debugAssertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
