// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScenarioCreateThenAllocSmall(t *testing.T) {
	buf := make([]byte, 256)
	h, err := Create(buf, 7)
	require.NoError(t, err)

	p1, err := h.Alloc(8)
	require.NoError(t, err)
	require.NotNil(t, p1)

	var infos []ChunkInfo
	h.Walk(func(c ChunkInfo) bool {
		infos = append(infos, c)
		return true
	})

	require.Len(t, infos, 2)
	require.False(t, infos[0].Free)
	require.Equal(t, 16, infos[0].BodySize)
	require.True(t, infos[1].Free)
}

func TestScenarioAllocFreeRoundtrip(t *testing.T) {
	buf := make([]byte, 256)
	h, err := Create(buf, 7)
	require.NoError(t, err)

	before := h.Stats()

	p1, err := h.Alloc(8)
	require.NoError(t, err)
	require.NoError(t, h.Free(p1))

	after := h.Stats()
	require.Equal(t, 1, after.Chunks)
	require.Equal(t, before.FreeBytes, after.FreeBytes)
}

func TestScenarioExtendCoalescesLastFree(t *testing.T) {
	buf := make([]byte, 256)
	h, err := Create(buf[:128], 7)
	require.NoError(t, err)

	require.NoError(t, h.Extend(buf[:256], 128))

	st := h.Stats()
	require.Equal(t, 1, st.Chunks)
	require.Equal(t, st.PayloadSize-2*wordSize, st.FreeBytes)
}

func TestScenarioSplitThenReallocShrink(t *testing.T) {
	h, _ := newTestHeap(t, 256, 7)

	p, err := h.Alloc(64)
	require.NoError(t, err)

	bodyBefore, ok := h.bodyOffsetOf(p)
	require.True(t, ok)
	require.Equal(t, 64, h.bodySize(bodyBefore))

	p2, err := h.Realloc(p, 16)
	require.NoError(t, err)

	bodyAfter, ok := h.bodyOffsetOf(p2)
	require.True(t, ok)
	require.Equal(t, bodyBefore, bodyAfter)
	require.Equal(t, 16, h.bodySize(bodyAfter))

	// The freshly split-off remainder directly abuts the chunk that was
	// already free at the tail of the payload, so it is forward-coalesced
	// with it rather than left sitting next to another free chunk.
	followingOffset := bodyAfter + 16 + 2*wordSize
	require.True(t, h.isFree(followingOffset))
	require.Equal(t, 128, h.bodySize(followingOffset))

	checkInvariants(t, h)
}

func TestScenarioReallocGrowInplace(t *testing.T) {
	h, _ := newTestHeap(t, 256, 7)

	p, err := h.Alloc(16)
	require.NoError(t, err)
	q, err := h.Alloc(16)
	require.NoError(t, err)

	require.NoError(t, h.Free(q))

	pBody, ok := h.bodyOffsetOf(p)
	require.True(t, ok)

	grown, err := h.Realloc(p, 48)
	require.NoError(t, err)

	grownBody, ok := h.bodyOffsetOf(grown)
	require.True(t, ok)
	require.Equal(t, pBody, grownBody, "realloc grow should coalesce forward in place")

	checkInvariants(t, h)
}

func TestScenarioOOMReturnsError(t *testing.T) {
	buf := make([]byte, 256)
	h, err := Create(buf, 7)
	require.NoError(t, err)

	before := append([]byte(nil), buf...)

	_, err = h.Alloc(1_000_000)
	require.ErrorIs(t, err, ErrTooLarge)
	require.Equal(t, before, buf)
}
