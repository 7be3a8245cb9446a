// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2025 The Neomalloc Authors.

//go:build windows

package region

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// handles maps a mapping's base address back to the Windows handles needed
// to release it, since Close only gets the []byte back.
var handles = map[uintptr]struct {
	mapping windows.Handle
}{}

func mmap(size int) ([]byte, error) {
	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, 0, uint32(size), nil)
	if err != nil {
		return nil, err
	}

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)
		return nil, err
	}

	handles[addr] = struct{ mapping windows.Handle }{mapping: h}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func unmap(b []byte) error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if err := windows.UnmapViewOfFile(addr); err != nil {
		return err
	}
	h, ok := handles[addr]
	if !ok {
		return nil
	}
	delete(handles, addr)
	return windows.CloseHandle(h.mapping)
}
