package ftmalloc

import "unsafe"

// zoneHeader sits at the start of every TINY/SMALL mmap region, followed
// immediately by the region's first block. Like blockHeader, it is never
// a Go-heap allocation: it is placed directly onto raw mmap'd memory via
// unsafe.Pointer, so the garbage collector never needs to trace it.
type zoneHeader struct {
	class      blockClass
	regionSize int
	usedCount  int // live blocks; zone is reclaimable once this hits 0
	firstBlock *blockHeader
	nextZone   *zoneHeader
}

var zoneHeaderSize = alignUp(int(unsafe.Sizeof(zoneHeader{})), payloadAlignment)

func zoneAt(addr uintptr) *zoneHeader {
	return (*zoneHeader)(unsafe.Pointer(addr))
}

// newZone maps a fresh region for class c, places the zone header at its
// head and a single free block spanning the remaining payload area.
func newZone(p *pager, c blockClass) (*zoneHeader, error) {
	size := zoneSize(c, p.pageSize)
	region, err := p.mapRegion(size)
	if err != nil {
		return nil, err
	}

	base := uintptr(unsafe.Pointer(&region[0]))
	z := zoneAt(base)
	z.class = c
	z.regionSize = len(region)
	z.usedCount = 0
	z.nextZone = nil

	payloadSpace := len(region) - zoneHeaderSize - blockHeaderSize
	z.firstBlock = initBlock(base+uintptr(zoneHeaderSize), payloadSpace, z)
	return z, nil
}

// baseAddr returns the first address of the zone's backing region.
func (z *zoneHeader) baseAddr() uintptr {
	return uintptr(unsafe.Pointer(z))
}

// region reconstructs the []byte originally returned by the pager for
// this zone, so it can be handed back via unmapRegion.
func (z *zoneHeader) region() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(z.baseAddr())), z.regionSize)
}

// contains reports whether addr falls within this zone's mapped region.
func (z *zoneHeader) contains(addr uintptr) bool {
	base := z.baseAddr()
	return addr >= base && addr < base+uintptr(z.regionSize)
}

// findBlockByPayload walks the zone's block list looking for a block whose
// payload address equals addr. Returns nil if none matches.
func (z *zoneHeader) findBlockByPayload(addr uintptr) *blockHeader {
	for b := z.firstBlock; b != nil; b = b.next {
		if b.payload() == addr {
			return b
		}
	}
	return nil
}

// allocateFrom searches this zone's block list for the first free block
// able to hold a payload of paddedSize bytes (first-fit, address-ordered
// since the list is built and maintained in address order). On success it
// marks the block used, splitting off a trailing free remainder when the
// leftover is large enough to host another header plus a minimal payload.
func (z *zoneHeader) allocateFrom(paddedSize int) *blockHeader {
	for b := z.firstBlock; b != nil; b = b.next {
		if !b.isFree || b.payloadSize < paddedSize {
			continue
		}

		remainder := b.payloadSize - paddedSize
		if remainder >= blockHeaderSize+payloadAlignment {
			splitAddr := b.payload() + uintptr(paddedSize)
			tail := initBlock(splitAddr, remainder-blockHeaderSize, z)
			tail.next = b.next
			b.next = tail
			b.payloadSize = paddedSize
		}

		b.isFree = false
		z.usedCount++
		return b
	}
	return nil
}

// coalesceForward merges b with its immediate successor if that successor
// is free, growing b's payload to absorb the successor's header and
// payload. Only a single forward step is taken; the caller's own release
// pass is what performs any further merging as predecessors are freed.
func coalesceForward(b *blockHeader) {
	next := b.next
	if next == nil || !next.isFree {
		return
	}
	b.payloadSize += blockHeaderSize + next.payloadSize
	b.next = next.next
}
