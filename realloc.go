// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

import (
	"fmt"
	"os"
)

// Realloc resizes the chunk behind b to size usable bytes, returning a
// slice that may or may not alias b. A nil b behaves as Alloc(size). On
// failure the original chunk is left valid and b remains usable.
//
// Shrinking splits the chunk in place. Growing first tries to
// forward-coalesce with contiguous free chunks; if that still falls short,
// Realloc allocates a fresh chunk, copies min(old body size, new body
// size) bytes — the full extent of readable old data, not just one word —
// and releases the original chunk.
func (h *Heap) Realloc(b []byte, size int) (r []byte, err error) {
	if trace {
		var p0 *byte
		if len(b) != 0 {
			p0 = &b[0]
		}
		defer func() {
			var p *byte
			if len(r) != 0 {
				p = &r[0]
			}
			fmt.Fprintf(os.Stderr, "neomalloc.Heap.Realloc(%p, %#x) %p, %v\n", p0, size, p, err)
		}()
	}

	if size < 0 {
		panic("neomalloc: negative realloc size")
	}

	bodyOffset, ok := h.bodyOffsetOf(b)
	if !ok {
		return h.Alloc(size)
	}

	needed := alignUp(size)
	if needed == 0 {
		needed = align
	}
	if _, ok := h.classIndex(needed); !ok {
		return nil, ErrTooLarge
	}

	current := h.bodySize(bodyOffset)

	switch {
	case needed < current:
		return h.reallocShrink(bodyOffset, size, needed, current), nil
	case needed == current:
		return h.sliceFor(bodyOffset, size, current), nil
	default:
		return h.reallocGrow(bodyOffset, size, needed, current)
	}
}

// reallocShrink splits the chunk in place when there is enough spare body
// to carve a new, independently freeable chunk out of the remainder; when
// there isn't, it leaves the chunk oversized rather than violate the
// minimum chunk size invariant. The split-off remainder is forward-
// coalesced with whatever follows it: bodyOffset was in use, so unlike a
// chunk split out of the free-list during Alloc, its trailing neighbour is
// not guaranteed to already be non-free, and leaving two free chunks
// adjacent would violate the no-adjacent-free invariant.
func (h *Heap) reallocShrink(bodyOffset, size, needed, current int) []byte {
	if current-needed < minChunkSize {
		return h.sliceFor(bodyOffset, size, current)
	}

	h.setTags(bodyOffset, needed, false)
	remainderOffset := bodyOffset + needed + 2*wordSize
	remainderSize := alignDown(current - needed - 2*wordSize)
	rightEdge := h.forwardCoalesce(remainderOffset, remainderSize)
	h.putChunk(remainderOffset, rightEdge-remainderOffset-wordSize)
	return h.sliceFor(bodyOffset, size, needed)
}

// reallocGrow forward-coalesces free neighbours into the chunk; if that
// reaches the target it keeps the (possibly larger) merged chunk in place
// without splitting the surplus, same as the reference implementation.
// Otherwise it falls back to Alloc and copies the old contents forward.
func (h *Heap) reallocGrow(bodyOffset, size, needed, current int) ([]byte, error) {
	rightEdge := h.forwardCoalesce(bodyOffset, current)
	merged := rightEdge - bodyOffset - wordSize
	if merged != current {
		h.setTags(bodyOffset, merged, false)
	}

	if merged >= needed {
		return h.sliceFor(bodyOffset, size, merged), nil
	}

	fresh, err := h.Alloc(size)
	if err != nil {
		return nil, err
	}

	copy(fresh, h.region[bodyOffset:bodyOffset+merged])
	h.free(bodyOffset)
	return fresh, nil
}
