//go:build !linux

// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package vmem

// PageSize returns a conservative default on platforms without a
// wired page-size query. NewDoubled is unsupported here regardless, so
// this value only affects RoundUpToPageSize's rounding suggestion.
func PageSize() int { return 4096 }

// NewDoubled always fails on non-linux builds — the double-mmap
// technique in vmem_linux.go is linux-specific (memfd_create, a raw
// MAP_FIXED mmap(2) syscall). Callers get a clean error instead of a
// build failure, the same file_unix/non-unix split convention the
// 210041258 pack's file_unix.go/cpu_windows.go use for OS-specific
// facilities.
func NewDoubled(size int) (Region, error) {
	return nil, ErrUnsupported
}
