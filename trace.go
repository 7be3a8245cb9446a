// Copyright 2025 The Neomalloc Authors. All rights reserved.
// Use of this source code is governed by an LGPLv3-compatible
// license that can be found in the LICENSE file.

package neomalloc

// trace gates the debug logging in Create, Extend, Alloc, Free and Realloc.
// Flip it on locally when chasing a heap corruption; it is never turned on
// in committed code.
const trace = false
