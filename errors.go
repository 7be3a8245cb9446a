// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

import "errors"

// Sentinel errors returned by the allocator's public operations. They wrap
// the same three failure modes the C original signals by returning a null
// pointer: malformed input, a request bigger than the heap could ever hold,
// and ordinary out-of-memory.
var (
	// ErrNilRegion is returned by Create when the backing region is nil.
	ErrNilRegion = errors.New("neomalloc: region is nil")

	// ErrInvalidArgument is returned for malformed input: a zero-width
	// size-class table, a region too small to hold the header, table and
	// one minimal chunk, or an Extend delta below the minimum chunk size.
	ErrInvalidArgument = errors.New("neomalloc: invalid argument")

	// ErrTooLarge is returned when the aligned request has a longer bit
	// length than the heap's payload size, regardless of current
	// fragmentation.
	ErrTooLarge = errors.New("neomalloc: requested size exceeds heap capacity")

	// ErrOutOfMemory is returned when the free-list search finds no free
	// chunk large enough. This includes requests larger than the payload
	// whose bit length does not exceed the payload size's.
	ErrOutOfMemory = errors.New("neomalloc: no chunk large enough is free")
)
