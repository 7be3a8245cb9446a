// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

import (
	"encoding/binary"
	"testing"
)

// checkInvariants re-derives every property listed for the allocator's
// boundary-tag layout by walking the payload and the size-class table
// directly, the same way the allocator's own Walk does it, but
// independently so a bug in Walk itself cannot hide a violation.
func checkInvariants(t *testing.T, h *Heap) {
	t.Helper()

	begin := h.firstBodyOffset()
	end := h.payloadEnd()

	prevFree := false
	seen := 0
	c := begin
	for c < end {
		headWord := h.headWord(c)
		footVal := binary.LittleEndian.Uint64(h.region[c+h.bodySize(c) : c+h.bodySize(c)+wordSize])
		if headWord != footVal {
			t.Fatalf("chunk at %d: head %#x != foot %#x", c, headWord, footVal)
		}

		size := h.bodySize(c)
		if size%align != 0 {
			t.Fatalf("chunk at %d: body size %d is not %d-aligned", c, size, align)
		}
		if size < minBodySize {
			t.Fatalf("chunk at %d: body size %d below minimum %d", c, size, minBodySize)
		}
		if (c+size)%align != 0 {
			t.Fatalf("chunk at %d: end offset not %d-aligned", c, align)
		}

		free := h.isFree(c)
		if free && prevFree {
			t.Fatalf("chunk at %d: adjacent free chunks", c)
		}
		prevFree = free

		seen++
		c = c + size + 2*wordSize
	}
	if got := c - wordSize; got != end {
		t.Fatalf("walk overran payload: ended at %d, want %d", got, end)
	}

	n := h.slotCount()
	for i := 0; i < n; i++ {
		entrance := h.slot(i)
		if entrance == 0 {
			continue
		}
		idx, ok := h.classIndex(h.bodySize(entrance))
		if !ok || idx != i {
			t.Fatalf("slot %d entrance %d classifies to %d", i, entrance, idx)
		}
		if !h.isFree(entrance) {
			t.Fatalf("slot %d entrance %d is not marked free", i, entrance)
		}

		c := h.linkNext(entrance)
		for steps := 0; c != entrance; c = h.linkNext(c) {
			steps++
			if steps > n*1000+seen*4 {
				t.Fatalf("slot %d: circular list does not close", i)
			}
			if !h.isFree(c) {
				t.Fatalf("slot %d: list member %d is not marked free", i, c)
			}
			if idx2, ok := h.classIndex(h.bodySize(c)); !ok || idx2 != i {
				t.Fatalf("slot %d: list member %d classifies to %d", i, c, idx2)
			}
			if h.linkNext(h.linkPrev(c)) != c {
				t.Fatalf("slot %d: list member %d has inconsistent prev/next", i, c)
			}
		}
	}
}

func newTestHeap(t *testing.T, size, slots int) (*Heap, []byte) {
	t.Helper()
	buf := make([]byte, size)
	h, err := Create(buf, slots)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return h, buf
}

func TestInvariantsHoldAfterCreate(t *testing.T) {
	h, _ := newTestHeap(t, 256, 7)
	checkInvariants(t, h)
}

func TestInvariantsHoldAfterAllocFree(t *testing.T) {
	h, _ := newTestHeap(t, 1024, 7)
	var live [][]byte
	for _, size := range []int{8, 16, 32, 64, 1, 0, 200} {
		b, err := h.Alloc(size)
		if err != nil {
			t.Fatalf("Alloc(%d): %v", size, err)
		}
		live = append(live, b)
		checkInvariants(t, h)
	}
	for _, b := range live {
		if err := h.Free(b); err != nil {
			t.Fatalf("Free: %v", err)
		}
		checkInvariants(t, h)
	}
}

func TestRoundTripReturnsSingleFreeChunk(t *testing.T) {
	h, _ := newTestHeap(t, 1024, 7)

	order := [][]byte{}
	for i := 0; i < 10; i++ {
		b, err := h.Alloc(8 * (i + 1))
		if err != nil {
			t.Fatalf("Alloc: %v", err)
		}
		order = append(order, b)
	}
	// Free in reverse order so every neighbour coalesce has something to
	// merge with.
	for i := len(order) - 1; i >= 0; i-- {
		if err := h.Free(order[i]); err != nil {
			t.Fatalf("Free: %v", err)
		}
	}
	checkInvariants(t, h)

	st := h.Stats()
	if st.Chunks != 1 || st.FreeChunks != 1 {
		t.Fatalf("Stats after round trip = %+v, want exactly one free chunk", st)
	}
	if st.FreeBytes != st.PayloadSize-2*wordSize {
		t.Fatalf("round-trip free chunk body = %d, want %d", st.FreeBytes, st.PayloadSize-2*wordSize)
	}
}

func TestAlignmentOfReturnedSlices(t *testing.T) {
	h, _ := newTestHeap(t, 512, 7)
	for _, size := range []int{1, 7, 8, 9, 15, 16, 17, 100} {
		b, err := h.Alloc(size)
		if err != nil {
			t.Fatalf("Alloc(%d): %v", size, err)
		}
		offset, ok := h.bodyOffsetOf(b)
		if !ok {
			t.Fatalf("bodyOffsetOf returned false for a live allocation")
		}
		if offset%align != 0 {
			t.Fatalf("Alloc(%d) returned body offset %d, not %d-aligned", size, offset, align)
		}
		if len(b) != size && !(size == 0 && len(b) == align) {
			t.Fatalf("Alloc(%d) returned len %d", size, len(b))
		}
	}
}

func TestOOMReturnsErrorWithoutPerturbingHeap(t *testing.T) {
	h, buf := newTestHeap(t, 256, 7)
	before := append([]byte(nil), buf...)

	_, err := h.Alloc(1_000_000)
	if err == nil {
		t.Fatalf("Alloc(1_000_000) succeeded, want an error")
	}

	for i := range buf {
		if buf[i] != before[i] {
			t.Fatalf("heap bytes changed at offset %d after a failed Alloc", i)
		}
	}
	checkInvariants(t, h)
}
