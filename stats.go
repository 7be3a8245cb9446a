// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

import "github.com/cznic/sortutil"

// ChunkInfo describes one tiled chunk, as reported by Walk. It is read-only
// introspection, not a new allocator feature: no fill patterns, canaries or
// leak tracking are recorded, only what is already encoded in the chunk's
// own boundary tags.
type ChunkInfo struct {
	BodyOffset int
	BodySize   int
	Free       bool
}

// Walk visits every chunk tiling the payload, from the first to the last,
// calling fn with each one's boundary-tag contents. It stops early if fn
// returns false.
func (h *Heap) Walk(fn func(ChunkInfo) bool) {
	end := h.payloadEnd()
	for c := h.firstBodyOffset(); c < end; c = c + h.bodySize(c) + 2*wordSize {
		info := ChunkInfo{BodyOffset: c, BodySize: h.bodySize(c), Free: h.isFree(c)}
		if !fn(info) {
			return
		}
	}
}

// Stats summarizes the current state of the heap, derived entirely from a
// single Walk.
type Stats struct {
	PayloadSize int
	Chunks      int
	FreeChunks  int
	FreeBytes   int
	UsedBytes   int
}

// Stats computes a Stats snapshot by walking the payload once.
func (h *Heap) Stats() Stats {
	st := Stats{PayloadSize: h.payloadSize()}
	h.Walk(func(c ChunkInfo) bool {
		st.Chunks++
		if c.Free {
			st.FreeChunks++
			st.FreeBytes += c.BodySize
		} else {
			st.UsedBytes += c.BodySize
		}
		return true
	})
	return st
}

// ClassHistogram reports, for each size-class slot, the number of free
// chunks currently linked into it, sorted ascending by population.
func (h *Heap) ClassHistogram() []int {
	n := h.slotCount()
	counts := make([]int, n)
	for i := 0; i < n; i++ {
		entrance := h.slot(i)
		if entrance == 0 {
			continue
		}
		count := 1
		for c := h.linkNext(entrance); c != entrance; c = h.linkNext(c) {
			count++
		}
		counts[i] = count
	}

	ordered := append([]int(nil), counts...)
	sortutil.IntSlice(ordered).Sort()
	return ordered
}
