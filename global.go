package ftmalloc

import "sync"

// defaultAllocator is the single process-global instance backing the
// package-level Malloc/Free/Realloc/ShowAllocMem functions that
// cmd/ftmallocso's cgo shim forwards to. The arena is modeled as a
// single process-global instance; everything above this file (Allocator,
// arena, zone, block) is deliberately instantiable multiple times so
// tests can exercise isolated allocators, but production use always goes
// through this one.
var (
	defaultOnce  sync.Once
	defaultAlloc *Allocator
)

func global() *Allocator {
	defaultOnce.Do(func() {
		defaultAlloc = newAllocator()
	})
	return defaultAlloc
}

// Malloc is the Go entry point the C-ABI shim's malloc() forwards to.
func Malloc(size int) uintptr {
	return global().Allocate(size)
}

// Free is the Go entry point the C-ABI shim's free() forwards to.
func Free(ptr uintptr) {
	global().Release(ptr)
}

// Realloc is the Go entry point the C-ABI shim's realloc() forwards to.
func Realloc(ptr uintptr, size int) uintptr {
	return global().Reallocate(ptr, size)
}

// ShowAllocMem is the Go entry point the C-ABI shim's show_alloc_mem()
// forwards to.
func ShowAllocMem() {
	global().Dump()
}
