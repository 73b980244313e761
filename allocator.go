package ftmalloc

import (
	"fmt"
	"unsafe"
)

// Allocator is the allocator core: the entry-point logic for Allocate,
// Release, Reallocate and Dump. All exported methods serialize through a
// single non-reentrant lock, modeling a process-global mutex, even though,
// unlike a real libc replacement, a test may construct more than one
// Allocator value (each with its own lock and arena) for isolation.
type Allocator struct {
	lock  globalLock
	pager *pager
	a     arena

	lastMapErr error
}

func newAllocator() *Allocator {
	return &Allocator{pager: newPager()}
}

func (al *Allocator) ensurePager() *pager {
	if al.pager == nil {
		al.pager = newPager()
	}
	return al.pager
}

// LastMapError returns the most recent OS mapping error observed by this
// allocator, or nil. It exists for tests and trace diagnostics only: the
// public Allocate/Reallocate API never surfaces it directly, since a
// null pointer is the only signal that crosses the C-ABI boundary.
func (al *Allocator) LastMapError() error {
	al.lock.Lock()
	defer al.lock.Unlock()
	return al.lastMapErr
}

// Allocate implements malloc(n). It returns 0 (the null reference) for
// n == 0 or when the OS mapping call fails; it never panics or aborts the
// process for those cases.
func (al *Allocator) Allocate(n int) (r uintptr) {
	tracef("Allocate(%d)", n)
	defer func() { tracef("Allocate(%d) -> %#x", n, r) }()

	if n == 0 {
		return 0
	}

	al.lock.Lock()
	defer al.lock.Unlock()
	return al.allocateLocked(n)
}

func (al *Allocator) allocateLocked(n int) uintptr {
	p := al.ensurePager()
	c := classify(n)

	if c == classLarge {
		size := mappingSize(n, p.pageSize)
		region, err := p.mapRegion(size)
		if err != nil {
			al.lastMapErr = fmt.Errorf("ftmalloc: mmap %d bytes: %w", size, err)
			return 0
		}
		base := uintptr(unsafe.Pointer(&region[0]))
		b := initBlock(base, alignUp(n, payloadAlignment), nil)
		b.isFree = false
		al.a.appendLarge(b)
		return b.payload()
	}

	padded := alignUp(n, payloadAlignment)
	head := *al.a.zoneListHead(c)
	for z := head; z != nil; z = z.nextZone {
		if b := z.allocateFrom(padded); b != nil {
			return b.payload()
		}
	}

	z, err := newZone(p, c)
	if err != nil {
		al.lastMapErr = fmt.Errorf("ftmalloc: mmap zone (%s): %w", c, err)
		return 0
	}
	al.a.appendZone(c, z)

	b := z.allocateFrom(padded)
	if b == nil {
		// A fresh zone is sized to hold at least blocksPerZone
		// maximum-class blocks, so this cannot happen for a
		// well-formed request; treat it as a mapping failure rather
		// than panicking in a release build.
		return 0
	}
	return b.payload()
}

// Release implements free(p). A null pointer, a pointer this allocator
// never handed out, or a pointer to an already-free block are all
// accepted as no-ops: Release must never crash on a foreign or
// misaligned pointer.
func (al *Allocator) Release(p uintptr) {
	tracef("Release(%#x)", p)
	defer tracef("Release(%#x) done", p)

	if p == 0 {
		return
	}

	al.lock.Lock()
	defer al.lock.Unlock()
	al.releaseLocked(p)
}

func (al *Allocator) releaseLocked(p uintptr) {
	if b := al.a.findLarge(p); b != nil {
		al.a.removeLarge(b)
		// The mapping was sized by mappingSize at allocation time; the
		// page size hasn't changed since, so recomputing it here
		// reconstructs the exact original mapping length without an
		// extra bookkeeping field on blockHeader.
		mapped := ceilToPages(blockHeaderSize+b.payloadSize, al.ensurePager().pageSize)
		region := unsafe.Slice((*byte)(unsafe.Pointer(b.addr())), mapped)
		_ = al.ensurePager().unmapRegion(region)
		return
	}

	b, z := al.a.findTinySmall(p)
	if b == nil {
		return // foreign or misaligned pointer: no-op
	}
	if b.isFree {
		return // double free: no-op
	}

	b.isFree = true
	z.usedCount--
	coalesceForward(b)

	if z.usedCount == 0 && al.a.zoneCount(z.class) > 1 {
		al.a.removeZone(z.class, z)
		_ = al.ensurePager().unmapRegion(z.region())
	}
}

// Reallocate implements realloc(p, n).
func (al *Allocator) Reallocate(p uintptr, n int) (r uintptr) {
	tracef("Reallocate(%#x, %d)", p, n)
	defer func() { tracef("Reallocate(%#x, %d) -> %#x", p, n, r) }()

	if p == 0 {
		return al.Allocate(n)
	}
	if n == 0 {
		al.Release(p)
		return 0
	}

	al.lock.Lock()

	var (
		old   int
		found bool
	)

	if b := al.a.findLarge(p); b != nil {
		old, found = b.payloadSize, true
	} else if b, _ := al.a.findTinySmall(p); b != nil {
		old, found = b.payloadSize, true
	}

	if !found {
		al.lock.Unlock()
		return 0
	}

	padded := alignUp(n, payloadAlignment)
	if padded <= old {
		al.lock.Unlock()
		return p
	}
	al.lock.Unlock()

	q := al.Allocate(n)
	if q == 0 {
		return 0
	}

	copySize := old
	if n < copySize {
		copySize = n
	}
	copy(blockAt(q-uintptr(blockHeaderSize)).payloadBytes()[:copySize], blockAt(p-uintptr(blockHeaderSize)).payloadBytes()[:copySize])

	al.Release(p)
	return q
}
