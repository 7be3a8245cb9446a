// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

import (
	"fmt"
	"os"
)

// Alloc returns a slice of at least size usable bytes carved out of the
// heap, or an error if none is available. A size of zero is treated as a
// request for align bytes, the smallest chunk the table can ever hand
// back. Alloc panics for a negative size.
func (h *Heap) Alloc(size int) (r []byte, err error) {
	if trace {
		defer func() {
			var p *byte
			if len(r) != 0 {
				p = &r[0]
			}
			fmt.Fprintf(os.Stderr, "neomalloc.Heap.Alloc(%#x) %p, %v\n", size, p, err)
		}()
	}

	if size < 0 {
		panic("neomalloc: negative alloc size")
	}

	usable := size
	if usable == 0 {
		usable = align
	}
	needed := alignUp(usable)

	idx, ok := h.classIndex(needed)
	if !ok {
		return nil, ErrTooLarge
	}

	entrance := 0
	for j := idx; ; j-- {
		if entrance = h.slot(j); entrance != 0 {
			break
		}
		if j == 0 {
			break
		}
	}
	if entrance == 0 {
		return nil, ErrOutOfMemory
	}

	candidate := entrance
	for h.bodySize(candidate) < needed {
		candidate = h.linkNext(candidate)
		if candidate == entrance {
			return nil, ErrOutOfMemory
		}
	}

	body := h.bodySize(candidate)
	h.unlinkChunk(candidate)

	if body == needed || body-needed < minChunkSize {
		h.setTags(candidate, body, false)
		return h.sliceFor(candidate, usable, body), nil
	}

	h.setTags(candidate, needed, false)
	remainderOffset := candidate + needed + 2*wordSize
	remainderSize := alignDown(body - needed - 2*wordSize)
	h.putChunk(remainderOffset, remainderSize)
	return h.sliceFor(candidate, usable, needed), nil
}
