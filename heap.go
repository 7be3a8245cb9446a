// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Create initializes a heap inside region, with slots entries in its
// size-class table. It returns an error if region is nil, slots is zero,
// or region is too small to hold the header, the table and one minimal
// chunk — the three malformed-input cases the C original rejects by
// returning a null heap pointer.
func Create(region []byte, slots int) (*Heap, error) {
	if trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "neomalloc.Create(len=%#x, slots=%d)\n", len(region), slots)
		}()
	}

	if region == nil {
		return nil, ErrNilRegion
	}
	if slots <= 0 {
		return nil, fmt.Errorf("%w: slots must be positive, got %d", ErrInvalidArgument, slots)
	}

	need := headerSize + slots*wordSize + minChunkSize
	if len(region) < need {
		return nil, fmt.Errorf("%w: region of %d bytes is smaller than the minimum %d", ErrInvalidArgument, len(region), need)
	}

	h := &Heap{region: region}

	payloadBegin := headerSize + slots*wordSize
	payloadSize := alignDown(len(region) - payloadBegin)
	h.setPayloadSize(payloadSize)
	h.setSlotCount(slots)

	for i := 0; i < slots; i++ {
		h.setSlot(i, 0)
	}

	bodyOffset := payloadBegin + wordSize
	bodySize := alignDown(payloadSize - 2*wordSize)
	h.putChunk(bodyOffset, bodySize)

	return h, nil
}

// Extend grows the heap by delta bytes. grown must be the same backing
// array as the heap's current region, resliced to cover at least delta
// additional bytes immediately past the current payload — the Go-native
// equivalent of the C original trusting the caller to have already made
// those bytes valid, since a Go slice (unlike a raw pointer) carries its
// own length and Extend has no other way to see the new bytes. delta must
// be at least the minimum chunk size.
//
// If the trailing chunk is in use, Extend appends a new free chunk spanning
// the grown bytes. If the trailing chunk is already free, the grown bytes
// are merged into it in place.
func (h *Heap) Extend(grown []byte, delta int) error {
	if trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "neomalloc.Heap.Extend(delta=%#x)\n", delta)
		}()
	}

	if delta < minChunkSize {
		return fmt.Errorf("%w: extend delta %d is below the minimum chunk size %d", ErrInvalidArgument, delta, minChunkSize)
	}
	if len(grown) < len(h.region)+delta {
		return fmt.Errorf("%w: grown region of %d bytes does not cover the requested extend", ErrInvalidArgument, len(grown))
	}

	h.region = grown
	added := alignDown(delta)
	payloadEnd := h.payloadEnd()
	lastFootWord := binary.LittleEndian.Uint64(h.region[payloadEnd-wordSize : payloadEnd])
	lastFree := lastFootWord&freeBit != 0

	if !lastFree {
		newBodyOffset := payloadEnd + wordSize
		newBodySize := alignDown(added - 2*wordSize)
		h.setPayloadSize(h.payloadSize() + added)
		h.putChunk(newBodyOffset, newBodySize)
		return nil
	}

	lastBodyOffset := h.prevChunkOffset(payloadEnd + wordSize)
	lastBodySize := h.bodySize(lastBodyOffset)
	h.unlinkChunk(lastBodyOffset)
	h.setPayloadSize(h.payloadSize() + added)
	h.putChunk(lastBodyOffset, alignDown(lastBodySize+added))
	return nil
}
