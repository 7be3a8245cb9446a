// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

import (
	"fmt"
	"os"
)

// Free releases a chunk previously returned by Alloc or Realloc back to the
// heap, coalescing it with any free neighbours. Freeing a nil slice is a
// no-op.
func (h *Heap) Free(b []byte) (err error) {
	if trace {
		var p *byte
		if len(b) != 0 {
			p = &b[0]
		}
		defer func() {
			fmt.Fprintf(os.Stderr, "neomalloc.Heap.Free(%p) %v\n", p, err)
		}()
	}

	bodyOffset, ok := h.bodyOffsetOf(b)
	if !ok {
		return nil
	}

	h.free(bodyOffset)
	return nil
}

// free coalesces the chunk at bodyOffset with any free neighbours on
// either side and reinserts the merged chunk into its size class.
func (h *Heap) free(bodyOffset int) {
	firstBodyOffset := h.firstBodyOffset()

	left := bodyOffset
	for left != firstBodyOffset {
		prevOffset := h.prevChunkOffset(left)
		if !h.isFree(prevOffset) {
			break
		}
		h.unlinkChunk(prevOffset)
		left = prevOffset
	}

	rightEdge := h.forwardCoalesce(bodyOffset, h.bodySize(bodyOffset))
	mergedSize := rightEdge - left - wordSize
	h.putChunk(left, mergedSize)
}

// forwardCoalesce absorbs any run of free chunks immediately following the
// chunk at bodyOffset (given its current body size), unlinking each one
// from its size class, and returns the offset one past the merged run's
// foot tag. It does not touch bodyOffset's own tags or free-list linkage.
func (h *Heap) forwardCoalesce(bodyOffset, size int) int {
	payloadEnd := h.payloadEnd()
	rightEdge := bodyOffset + size + wordSize
	for rightEdge < payloadEnd {
		nextOffset := rightEdge + wordSize
		if !h.isFree(nextOffset) {
			break
		}
		nextSize := h.bodySize(nextOffset)
		h.unlinkChunk(nextOffset)
		rightEdge = nextOffset + nextSize + wordSize
	}
	return rightEdge
}
