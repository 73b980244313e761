// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors, 2026 the ftmalloc authors.

//go:build darwin || dragonfly || freebsd || linux || openbsd || netbsd || solaris

package ftmalloc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func mmapAnon(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}

	if uintptr(unsafe.Pointer(&b[0]))&uintptr(osPageMask()) != 0 {
		panic("ftmalloc: mmap returned a non-page-aligned address")
	}

	return b, nil
}

func munmapAnon(b []byte) error {
	return unix.Munmap(b)
}

func osPageMask() int {
	return unix.Getpagesize() - 1
}

func writeStdout(b []byte) error {
	for len(b) > 0 {
		n, err := unix.Write(1, b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
