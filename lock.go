// Copyright 2026 the ftmalloc authors.
//
// Grounded in original_source/src/c/mutex.c: a process-global mutex that
// serializes every allocator operation. A zero-value sync.Mutex is
// already safe to lock without a separate init step, unlike the C
// mutex's "if (!g_inited) { ... }" guard, so no explicit lazy-init
// machinery is needed here.
package ftmalloc

import "sync"

// globalLock is the single process-wide mutex every public operation
// acquires on entry and releases on every exit path. It is non-reentrant:
// the core must never call back into itself while holding it.
type globalLock struct {
	mu sync.Mutex
}

func (g *globalLock) Lock() {
	g.mu.Lock()
}

func (g *globalLock) Unlock() {
	g.mu.Unlock()
}
