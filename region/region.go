// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

// Package region hands out OS-backed, page-aligned []byte buffers for
// callers of neomalloc that do not already have a region of their own — a
// static buffer and a sub-range of another allocator are the other two
// ways a caller can obtain one. The core allocator never imports this
// package; acquiring backing memory is deliberately kept outside of it,
// matching neomalloc's "no OS memory acquisition" scope.
//
// mmap/unmap are backed by golang.org/x/sys/unix and golang.org/x/sys/windows
// rather than raw syscall calls.
package region

import "os"

// PageSize is the OS page size in bytes. New rounds every reservation up to
// a whole multiple of it.
var PageSize = os.Getpagesize()

// New reserves an anonymous, zero-filled region of at least size bytes,
// rounded up to a whole number of pages. The returned Region must be
// Closed once the caller is done with it.
func New(size int) (*Region, error) {
	if size <= 0 {
		size = PageSize
	}
	rounded := (size + PageSize - 1) &^ (PageSize - 1)
	b, err := mmap(rounded)
	if err != nil {
		return nil, err
	}
	return &Region{buf: b}, nil
}

// Region is a single OS-backed mapping.
type Region struct {
	buf []byte
}

// Bytes returns the mapping's backing slice.
func (r *Region) Bytes() []byte { return r.buf }

// Close releases the mapping. The Region must not be used afterwards.
func (r *Region) Close() error {
	if r.buf == nil {
		return nil
	}
	b := r.buf
	r.buf = nil
	return unmap(b)
}
