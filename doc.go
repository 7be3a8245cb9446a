// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

// Package neomalloc implements a segregated free-list heap allocator over a
// caller-supplied contiguous []byte region.
//
// The caller obtains a region by any means (a static buffer, a page-aligned
// mapping from the region subpackage, a sub-range of another allocator) and
// hands it to Create. The allocator then services Alloc, Free, Realloc and
// Extend requests entirely inside that region: it never asks the OS for
// memory on its own.
//
// The region is laid out as a header (total payload size and size-class
// table width), a fixed-width table of free-list head offsets, and a
// payload of boundary-tagged chunks that tile the region exactly.
//
// Changelog
//
// 2026-08-01 Initial Go port of the neomalloc C heap allocator.
package neomalloc
