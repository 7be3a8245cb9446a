// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

// restoreEntrance splices a self-linked free chunk into the circular
// doubly-linked list at slot idx, making it the slot's new entrance. An
// empty slot simply adopts the chunk as a singleton list.
func (h *Heap) restoreEntrance(idx, bodyOffset int) {
	h.setLinkPrev(bodyOffset, bodyOffset)
	h.setLinkNext(bodyOffset, bodyOffset)

	entrance := h.slot(idx)
	if entrance == 0 {
		h.setSlot(idx, bodyOffset)
		return
	}

	tail := h.linkPrev(entrance)
	h.setLinkNext(bodyOffset, entrance)
	h.setLinkPrev(entrance, bodyOffset)
	h.setLinkPrev(bodyOffset, tail)
	h.setLinkNext(tail, bodyOffset)
	h.setSlot(idx, bodyOffset)
}

// putChunk marks the chunk at bodyOffset free (unconditionally, fixing the
// C original's ordering hazard between its oversize and binnable insertion
// paths) and inserts it into its size class. Because classIndex always
// clamps to a valid slot, every free chunk ends up reachable from the
// table; there is no unlinked "too big to bin" regime to leak chunks into.
func (h *Heap) putChunk(bodyOffset, size int) {
	h.setTags(bodyOffset, size, true)
	idx, _ := h.classIndex(size)
	h.restoreEntrance(idx, bodyOffset)
}

// unlinkChunk detaches a free chunk from its size class's circular list.
// When the removed chunk was the slot's entrance, the entrance advances to
// a surviving neighbour instead of the table slot going null — the C
// original's _nmUnlinkChunk nulls the slot even when other members remain,
// leaking the rest of that class until something else repopulates the
// slot; this is one of the corrected behaviours among the design's
// documented open questions.
func (h *Heap) unlinkChunk(bodyOffset int) {
	idx, ok := h.classIndex(h.bodySize(bodyOffset))
	if !ok {
		return
	}

	prev := h.linkPrev(bodyOffset)
	next := h.linkNext(bodyOffset)

	if prev == bodyOffset && next == bodyOffset {
		h.setSlot(idx, 0)
		return
	}

	h.setLinkNext(prev, next)
	h.setLinkPrev(next, prev)

	if h.slot(idx) == bodyOffset {
		h.setSlot(idx, next)
	}
}
