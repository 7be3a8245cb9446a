// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

import "github.com/cznic/mathutil"

// wordBits is the bit width of the word used for tags, offsets and the
// size-class arithmetic (W in the design, fixed at 64 bits).
const wordBits = 64

// clz returns the number of leading zero bits of n in a 64-bit word. By
// convention clz(0) is the word width; callers here never pass zero for a
// live chunk size.
//
// Built on mathutil.BitLen rather than math/bits, the same way a size-class
// log can be derived from mathutil.BitLen(roundup(size, align) - 1).
func clz(n int) int {
	if n == 0 {
		return wordBits
	}
	return wordBits - mathutil.BitLen(n)
}
