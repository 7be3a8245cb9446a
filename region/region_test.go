// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package region

import "testing"

func TestNewRoundsUpToPageSize(t *testing.T) {
	r, err := New(1)
	if err != nil {
		t.Fatalf("New(1): %v", err)
	}
	defer r.Close()

	if got := len(r.Bytes()); got != PageSize {
		t.Fatalf("New(1) returned %d bytes, want one page (%d)", got, PageSize)
	}
}

func TestNewZeroFillsAndIsWritable(t *testing.T) {
	r, err := New(PageSize * 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	b := r.Bytes()
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d is %#x, want zero-filled region", i, v)
		}
	}

	b[0] = 0xff
	b[len(b)-1] = 0xff
	if b[0] != 0xff || b[len(b)-1] != 0xff {
		t.Fatal("region is not writable at its boundaries")
	}
}

func TestCloseIsIdempotentOnZeroValue(t *testing.T) {
	r := &Region{}
	if err := r.Close(); err != nil {
		t.Fatalf("Close on zero-value Region: %v", err)
	}
}
