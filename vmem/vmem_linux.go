//go:build linux

// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package vmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// PageSize returns the platform page size in bytes.
func PageSize() int {
	return unix.Getpagesize()
}

// region is the linux Region implementation: one memfd-backed anonymous
// file, truncated to size, mapped twice back to back with the second
// mapping MAP_FIXED at base+size. The standard unix.Mmap wrapper has no
// way to request a fixed address, so the two real mappings are made
// with a raw mmap(2) syscall; unix.Mmap is used only once, to reserve
// 2*size bytes of address space we know the kernel considers free.
type region struct {
	addr uintptr
	size int
	fd   int
}

// NewDoubled creates a doubled mapping of size bytes. size must be a
// multiple of the page size and greater than zero; use
// RoundUpToPageSize to normalize an arbitrary request first.
func NewDoubled(size int) (Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("vmem: size must be > 0: %w", ErrUnsupported)
	}
	ps := PageSize()
	if size%ps != 0 {
		return nil, fmt.Errorf("vmem: size %d not a multiple of page size %d: %w", size, ps, ErrUnsupported)
	}

	fd, err := unix.MemfdCreate("mutring-doubled", 0)
	if err != nil {
		return nil, fmt.Errorf("vmem: memfd_create: %w", err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("vmem: ftruncate: %w", err)
	}

	// Reserve 2*size of address space with a throwaway anonymous
	// mapping, so the base address we pick below is guaranteed free.
	reserve, err := unix.Mmap(-1, 0, 2*size, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("vmem: reserve mmap: %w", err)
	}
	base := uintptr(unsafe.Pointer(&reserve[0]))

	if err := mmapFixed(base, size, fd); err != nil {
		_ = unix.Munmap(reserve)
		_ = unix.Close(fd)
		return nil, fmt.Errorf("vmem: first mmap: %w", err)
	}
	if err := mmapFixed(base+uintptr(size), size, fd); err != nil {
		_ = unix.Munmap(reserve)
		_ = unix.Close(fd)
		return nil, fmt.Errorf("vmem: second mmap: %w", err)
	}

	return &region{addr: base, size: size, fd: fd}, nil
}

// mmapFixed maps size bytes of fd (offset 0) at the exact address addr,
// which must already be reserved (or previously mapped) address space.
func mmapFixed(addr uintptr, size int, fd int) error {
	_, _, errno := unix.Syscall6(
		unix.SYS_MMAP,
		addr,
		uintptr(size),
		uintptr(unix.PROT_READ|unix.PROT_WRITE),
		uintptr(unix.MAP_SHARED|unix.MAP_FIXED),
		uintptr(fd),
		0,
	)
	if errno != 0 {
		return errno
	}
	return nil
}

func (r *region) Base() unsafe.Pointer { return unsafe.Pointer(r.addr) }
func (r *region) Size() int            { return r.size }

func (r *region) Close() error {
	if r.addr == 0 {
		return nil
	}
	full := unsafe.Slice((*byte)(unsafe.Pointer(r.addr)), 2*r.size)
	err := unix.Munmap(full)
	_ = unix.Close(r.fd)
	r.addr = 0
	return err
}
