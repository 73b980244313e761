// Copyright 2026 the ftmalloc authors.
//
// This is the C-ABI symbol shim that re-exports malloc/free/realloc/
// show_alloc_mem and forwards each to the core entry points below. It is
// deliberately as thin as original_source/src/c/shim.c: one line of
// forwarding per symbol, no allocator logic of its own. Build with:
//
//	go build -buildmode=c-shared -o libftmalloc.so ./cmd/ftmallocso
//
// and load the resulting shared object via LD_PRELOAD (or the platform
// equivalent) to interpose it over the host process's own malloc/free.
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"unsafe"

	"github.com/weakless-one/ftmalloc"
)

// Every allocation this shim ever hands out lives in raw mmap'd memory
// the Go garbage collector does not own and never moves, so round-tripping
// through uintptr across these calls (as the host, not Go, holds the
// pointer between them) does not run afoul of the usual unsafe.Pointer/
// uintptr lifetime rules.

// malloc forwards to the allocator core's Allocate.
//
//export malloc
func malloc(size C.size_t) unsafe.Pointer {
	return unsafe.Pointer(ftmalloc.Malloc(int(size))) //nolint:govet
}

// free forwards to the allocator core's Release.
//
//export free
func free(ptr unsafe.Pointer) {
	ftmalloc.Free(uintptr(ptr))
}

// realloc forwards to the allocator core's Reallocate.
//
//export realloc
func realloc(ptr unsafe.Pointer, size C.size_t) unsafe.Pointer {
	return unsafe.Pointer(ftmalloc.Realloc(uintptr(ptr), int(size))) //nolint:govet
}

// show_alloc_mem forwards to the allocator core's Dump.
//
//export show_alloc_mem
func show_alloc_mem() {
	ftmalloc.ShowAllocMem()
}

func main() {}
