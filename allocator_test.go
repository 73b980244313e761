package ftmalloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// TestMallocZeroIsNullAndFreeNullIsNoop covers end-to-end scenario 1.
func TestMallocZeroIsNullAndFreeNullIsNoop(t *testing.T) {
	al := newAllocator()

	p := al.Allocate(0)
	require.Zero(t, p)

	require.NotPanics(t, func() { al.Release(0) })
}

// TestMallocIsPayloadAligned covers end-to-end scenario 2 and property P1.
func TestMallocIsPayloadAligned(t *testing.T) {
	al := newAllocator()

	p := al.Allocate(64)
	require.NotZero(t, p)
	require.Zero(t, p%uintptr(payloadAlignment))

	al.Release(p)
}

// TestReallocGrowPreservesBytesThenShrinkThenFree covers end-to-end
// scenario 3 and property P5.
func TestReallocGrowPreservesBytesThenShrinkThenFree(t *testing.T) {
	al := newAllocator()

	p := al.Allocate(100)
	require.NotZero(t, p)

	buf := unsafe.Slice((*byte)(unsafe.Pointer(p)), 100)
	for i := range buf {
		buf[i] = 0xAB
	}

	q := al.Reallocate(p, 3000)
	require.NotZero(t, q)

	grown := unsafe.Slice((*byte)(unsafe.Pointer(q)), 100)
	for i, v := range grown {
		require.Equalf(t, byte(0xAB), v, "byte %d not preserved across growth", i)
	}

	r := al.Reallocate(q, 32)
	require.NotZero(t, r)

	s := al.Reallocate(r, 0)
	require.Zero(t, s)
}

// TestLargeAllocRoundTrip covers end-to-end scenario 4: the LARGE path is
// 16-aligned, frees successfully, and the mapping is returned to the OS
// immediately rather than retained.
func TestLargeAllocRoundTrip(t *testing.T) {
	al := newAllocator()

	p := al.Allocate(5_000_000)
	require.NotZero(t, p)
	require.Zero(t, p%uintptr(payloadAlignment))
	require.Zero(t, al.a.zoneCount(classTiny), "a LARGE request must not touch the TINY/SMALL zone lists")
	require.Zero(t, al.a.zoneCount(classSmall))
	require.NotNil(t, al.a.largeBlocks)

	al.Release(p)
	require.Nil(t, al.a.largeBlocks, "the mapping must be returned to the OS immediately on release")
}

// TestReleaseMisalignedPointer covers end-to-end scenario 5 and property
// P3: a pointer offset from a valid allocation, and a foreign pointer,
// are both no-ops, and the original allocation can still be freed
// afterward.
func TestReleaseMisalignedPointer(t *testing.T) {
	al := newAllocator()

	p := al.Allocate(128)
	require.NotZero(t, p)

	require.NotPanics(t, func() { al.Release(p + 10) })
	require.NotPanics(t, func() { al.Release(0xDEADBEEF) })

	require.NotPanics(t, func() { al.Release(p) })
}

// TestDoubleFreeIsNoop exercises the no-op-on-double-free contract:
// releasing the same pointer twice never crashes or corrupts state.
func TestDoubleFreeIsNoop(t *testing.T) {
	al := newAllocator()

	p := al.Allocate(64)
	require.NotZero(t, p)

	al.Release(p)
	require.NotPanics(t, func() { al.Release(p) })
}

// TestArenaRetainsOneZonePerClassAfterFullRelease covers property P6.
func TestArenaRetainsOneZonePerClassAfterFullRelease(t *testing.T) {
	al := newAllocator()

	var tinyPtrs, smallPtrs []uintptr
	for i := 0; i < 300; i++ {
		p := al.Allocate(32)
		require.NotZero(t, p)
		tinyPtrs = append(tinyPtrs, p)
	}
	for i := 0; i < 300; i++ {
		p := al.Allocate(512)
		require.NotZero(t, p)
		smallPtrs = append(smallPtrs, p)
	}

	require.Greater(t, al.a.zoneCount(classTiny), 1, "300 32-byte allocs should overflow one zone")
	require.Greater(t, al.a.zoneCount(classSmall), 1, "300 512-byte allocs should overflow one zone")

	for _, p := range tinyPtrs {
		al.Release(p)
	}
	for _, p := range smallPtrs {
		al.Release(p)
	}

	require.Equal(t, 1, al.a.zoneCount(classTiny))
	require.Equal(t, 1, al.a.zoneCount(classSmall))
	require.Zero(t, func() int {
		n := 0
		for b := al.a.largeBlocks; b != nil; b = b.next {
			n++
		}
		return n
	}())
}

// TestAllocationsDoNotAlias covers property P2: two live allocations
// never share any byte of their payload range.
func TestAllocationsDoNotAlias(t *testing.T) {
	al := newAllocator()

	sizes := []int{8, 64, 200, 900, 2_000_000}
	var ptrs []uintptr
	for _, n := range sizes {
		p := al.Allocate(n)
		require.NotZero(t, p)
		ptrs = append(ptrs, p)
	}

	for i, p := range ptrs {
		end := p + uintptr(alignUp(sizes[i], payloadAlignment))
		for j, q := range ptrs {
			if i == j {
				continue
			}
			qEnd := q + uintptr(alignUp(sizes[j], payloadAlignment))
			overlap := p < qEnd && q < end
			require.False(t, overlap, "allocation %d overlaps allocation %d", i, j)
		}
	}

	for _, p := range ptrs {
		al.Release(p)
	}
}

// TestReallocFromNullIsMalloc and TestReallocToZeroIsFree exercise
// realloc's null-pointer and zero-size edge cases.
func TestReallocFromNullIsMalloc(t *testing.T) {
	al := newAllocator()
	p := al.Reallocate(0, 48)
	require.NotZero(t, p)
	al.Release(p)
}

func TestReallocToZeroIsFree(t *testing.T) {
	al := newAllocator()
	p := al.Allocate(48)
	require.NotZero(t, p)
	q := al.Reallocate(p, 0)
	require.Zero(t, q)
}
