// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors, 2026 the ftmalloc authors.

package ftmalloc

import (
	"errors"
	"os"
	"reflect"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	handleMapMu sync.Mutex
	handleMap   = map[uintptr]windows.Handle{}
)

// mmapAnon on Windows is a two-step process: CreateFileMapping gets a
// handle backed by the system paging file, then MapViewOfFile gets an
// actual pointer into the process address space.
func mmapAnon(size int) ([]byte, error) {
	maxSizeHigh := uint32(uint64(size) >> 32)
	maxSizeLow := uint32(uint64(size) & 0xFFFFFFFF)

	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, maxSizeHigh, maxSizeLow, nil)
	if err != nil {
		return nil, os.NewSyscallError("CreateFileMapping", err)
	}

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)
		return nil, os.NewSyscallError("MapViewOfFile", err)
	}

	if addr&uintptr(osPageMask()) != 0 {
		panic("ftmalloc: mmap returned a non-page-aligned address")
	}

	handleMapMu.Lock()
	handleMap[addr] = h
	handleMapMu.Unlock()

	var b []byte
	sh := (*reflect.SliceHeader)(unsafe.Pointer(&b))
	sh.Data = addr
	sh.Len = size
	sh.Cap = size
	return b, nil
}

func munmapAnon(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&b[0]))

	if err := windows.UnmapViewOfFile(addr); err != nil {
		return err
	}

	handleMapMu.Lock()
	h, ok := handleMap[addr]
	delete(handleMap, addr)
	handleMapMu.Unlock()
	if !ok {
		return errors.New("ftmalloc: unknown base address")
	}

	return os.NewSyscallError("CloseHandle", windows.CloseHandle(h))
}

func osPageMask() int {
	si := windows.SystemInfo{}
	windows.GetSystemInfo(&si)
	return int(si.PageSize) - 1
}

func writeStdout(b []byte) error {
	h := windows.Handle(os.Stdout.Fd())
	for len(b) > 0 {
		var n uint32
		if err := windows.WriteFile(h, b, &n, nil); err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
