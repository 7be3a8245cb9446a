// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

import (
	"encoding/binary"
	"unsafe"
)

const (
	// wordSize is W: the width of a tag word, a table slot and a free-list
	// link, in bytes.
	wordSize = 8

	// align is A = 2*W, the granularity every chunk body size is rounded
	// up (or down) to. Its low bits double as tag metadata.
	align = 2 * wordSize

	// alignMask isolates the metadata bits packed into the low end of a
	// tag word.
	alignMask = align - 1

	// freeBit is the single metadata bit the allocator defines: set when
	// a chunk is free, clear when it is in use.
	freeBit = 1

	// headerSize is the size of the on-region heap header: two words
	// holding the payload size and the size-class table width.
	headerSize = 2 * wordSize

	// minBodySize is the smallest body a chunk can have: room for the
	// two free-list link offsets.
	minBodySize = 2 * wordSize

	// minChunkSize is MIN from the design: head + foot + the smallest
	// possible body. Create and Extend reject anything smaller.
	minChunkSize = 2*wordSize + minBodySize
)

// alignUp rounds n up to the next multiple of align.
func alignUp(n int) int { return (n + alignMask) &^ alignMask }

// alignDown rounds n down to the previous multiple of align.
func alignDown(n int) int { return n &^ alignMask }

// Heap is a segregated free-list allocator bound to a caller-supplied
// region. Every byte of mutable state lives inside region; Heap itself is
// just a thin, stateless view over it, so copying region bytes elsewhere
// (with the same base address) reproduces the same heap.
type Heap struct {
	region []byte
}

// Region returns the backing region of the heap, for example so callers can
// implement their own persistence strategy. The package has no constructor
// that attaches a Heap to an existing region: Create always initializes a
// fresh heap. Mutating it outside of the allocator's own operations is
// undefined behaviour.
func (h *Heap) Region() []byte { return h.region }

// --- header accessors ---

func (h *Heap) payloadSize() int {
	return int(binary.LittleEndian.Uint64(h.region[0:wordSize]))
}

func (h *Heap) setPayloadSize(v int) {
	binary.LittleEndian.PutUint64(h.region[0:wordSize], uint64(v))
}

func (h *Heap) slotCount() int {
	return int(binary.LittleEndian.Uint64(h.region[wordSize : 2*wordSize]))
}

func (h *Heap) setSlotCount(v int) {
	binary.LittleEndian.PutUint64(h.region[wordSize:2*wordSize], uint64(v))
}

// payloadBegin is the offset of the first chunk's head tag: right after the
// header and the size-class table.
func (h *Heap) payloadBegin() int {
	return headerSize + h.slotCount()*wordSize
}

// payloadEnd is one byte past the last chunk's foot tag.
func (h *Heap) payloadEnd() int {
	return h.payloadBegin() + h.payloadSize()
}

// firstBodyOffset is the body offset of the chunk tiling the very start of
// the payload.
func (h *Heap) firstBodyOffset() int {
	return h.payloadBegin() + wordSize
}

// --- size-class table accessors ---

func (h *Heap) slotWordOffset(i int) int { return headerSize + i*wordSize }

// slot returns the body offset stored in table slot i, or 0 if empty.
func (h *Heap) slot(i int) int {
	o := h.slotWordOffset(i)
	return int(binary.LittleEndian.Uint64(h.region[o : o+wordSize]))
}

func (h *Heap) setSlot(i, bodyOffset int) {
	o := h.slotWordOffset(i)
	binary.LittleEndian.PutUint64(h.region[o:o+wordSize], uint64(bodyOffset))
}

// classIndex computes the size-class table slot for a chunk body size,
// clamped to [0, slotCount-1]. The bool result is false when size has a
// longer bit length than the payload size (the equivalent of the C
// implementation's unsigned-subtraction overflow, computed here with
// explicit signed comparisons per the design notes, to avoid relying on
// wraparound semantics). A size larger than the payload but of the same bit
// length is reported as ok and gets slot 0.
func (h *Heap) classIndex(size int) (int, bool) {
	idx := clz(size) - clz(h.payloadSize())
	if idx < 0 {
		return 0, false
	}
	if n := h.slotCount(); idx >= n {
		idx = n - 1
	}
	return idx, true
}

// --- chunk tag accessors ---
//
// A chunk is identified by its body offset: the byte offset, within region,
// of the first byte after its head tag. head(c) lives at [c-W, c); the tag
// encodes size|freeBit. foot(c) mirrors head(c) and lives at
// [c+bodySize(c), c+bodySize(c)+W).

func (h *Heap) headWord(bodyOffset int) uint64 {
	return binary.LittleEndian.Uint64(h.region[bodyOffset-wordSize : bodyOffset])
}

func (h *Heap) bodySize(bodyOffset int) int {
	return int(h.headWord(bodyOffset) &^ alignMask)
}

func (h *Heap) isFree(bodyOffset int) bool {
	return h.headWord(bodyOffset)&freeBit != 0
}

// setTags writes matching head and foot tags for a chunk of the given body
// size at bodyOffset, setting or clearing the free bit unconditionally.
// Writing both tags from an explicit size (rather than reading one back
// from the other) avoids the ordering hazard the C original has, where
// _nmPutChunk's oversize path sets the free bit but its binnable path
// relies on the caller having already done so.
func (h *Heap) setTags(bodyOffset, size int, free bool) {
	v := uint64(size)
	if free {
		v |= freeBit
	}
	binary.LittleEndian.PutUint64(h.region[bodyOffset-wordSize:bodyOffset], v)
	foot := bodyOffset + size
	binary.LittleEndian.PutUint64(h.region[foot:foot+wordSize], v)
}

// prevChunkOffset returns the body offset of the chunk immediately before
// bodyOffset, read from that chunk's foot tag. Only valid when bodyOffset
// is not the first chunk in the payload.
func (h *Heap) prevChunkOffset(bodyOffset int) int {
	foot := binary.LittleEndian.Uint64(h.region[bodyOffset-2*wordSize : bodyOffset-wordSize])
	return bodyOffset - 2*wordSize - int(foot&^alignMask)
}

// --- free-list link accessors ---
//
// A free chunk's body opens with two link words: prev then next, holding
// the body offsets of its neighbours in a circular doubly-linked list.

func (h *Heap) linkPrev(bodyOffset int) int {
	return int(binary.LittleEndian.Uint64(h.region[bodyOffset : bodyOffset+wordSize]))
}

func (h *Heap) linkNext(bodyOffset int) int {
	return int(binary.LittleEndian.Uint64(h.region[bodyOffset+wordSize : bodyOffset+2*wordSize]))
}

func (h *Heap) setLinkPrev(bodyOffset, v int) {
	binary.LittleEndian.PutUint64(h.region[bodyOffset:bodyOffset+wordSize], uint64(v))
}

func (h *Heap) setLinkNext(bodyOffset, v int) {
	binary.LittleEndian.PutUint64(h.region[bodyOffset+wordSize:bodyOffset+2*wordSize], uint64(v))
}

// sliceFor returns the caller-visible slice for a chunk: length usable (the
// size actually requested, before alignment), capacity fullBody (the
// chunk's true, aligned body size).
func (h *Heap) sliceFor(bodyOffset, usable, fullBody int) []byte {
	return h.region[bodyOffset : bodyOffset+usable : bodyOffset+fullBody]
}

// bodyOffsetOf recovers the body offset of a chunk from a slice previously
// returned by Alloc or Realloc. It reports false for a nil slice (the
// null-pointer case every operation treats as a deliberate no-op or an
// Alloc passthrough).
func (h *Heap) bodyOffsetOf(b []byte) (int, bool) {
	ptr := unsafe.SliceData(b)
	if ptr == nil {
		return 0, false
	}
	base := unsafe.SliceData(h.region)
	return int(uintptr(unsafe.Pointer(ptr)) - uintptr(unsafe.Pointer(base))), true
}
