// Command neomallocdemo is the Go-native equivalent of the original C
// library's nmtest.c smoke test: create a heap, extend it, allocate,
// reallocate and free. It reports the first step that fails, or a summary
// of the final heap state when every step succeeds. It exercises
// the public API only; it is not part of the allocator itself.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/coshcage/neomalloc"
)

func main() {
	var (
		size  = flag.Int("size", 128, "initial region size in bytes")
		grow  = flag.Int("grow", 128, "bytes to extend the heap by after creation")
		slots = flag.Int("slots", 7, "number of size-class table slots")
	)
	flag.Parse()

	os.Exit(run(*size, *grow, *slots))
}

func run(size, grow, slots int) int {
	buf := make([]byte, size+grow)
	for i := range buf {
		buf[i] = 0xff
	}

	h, err := neomalloc.Create(buf[:size], slots)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create:", err)
		return 1
	}

	if grow > 0 {
		if err := h.Extend(buf[:size+grow], grow); err != nil {
			fmt.Fprintln(os.Stderr, "extend:", err)
			return 2
		}
	}

	p1, err := h.Alloc(8)
	if err != nil {
		fmt.Fprintln(os.Stderr, "alloc:", err)
		return 3
	}

	p1, err = h.Realloc(p1, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "realloc:", err)
		return 4
	}

	if err := h.Free(p1); err != nil {
		fmt.Fprintln(os.Stderr, "free:", err)
		return 5
	}

	st := h.Stats()
	fmt.Printf("ok: chunks=%d free=%d used=%d payload=%d\n", st.Chunks, st.FreeBytes, st.UsedBytes, st.PayloadSize)
	return 0
}
