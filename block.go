package ftmalloc

import "unsafe"

// blockHeader precedes every allocation's payload, whether it lives inside
// a TINY/SMALL zone's block list or is the sole block of a LARGE mapping.
// It is never allocated by the Go runtime: it is overlaid, via
// unsafe.Pointer, directly onto mmap'd memory the garbage collector never
// sees.
type blockHeader struct {
	payloadSize int
	isFree      bool
	next        *blockHeader
	zone        *zoneHeader // nil for LARGE blocks
}

// blockHeaderSize is the header footprint rounded up so the payload that
// immediately follows a header is always 16-byte aligned.
var blockHeaderSize = alignUp(int(unsafe.Sizeof(blockHeader{})), payloadAlignment)

func blockAt(addr uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(addr))
}

func (b *blockHeader) addr() uintptr {
	return uintptr(unsafe.Pointer(b))
}

// payload returns the address of the byte immediately following the
// header, which is where the caller's data lives.
func (b *blockHeader) payload() uintptr {
	return b.addr() + uintptr(blockHeaderSize)
}

// payloadBytes exposes the block's payload as a Go byte slice for the
// duration the block stays allocated. The slice must never be retained
// past a Release/Reallocate call on the same pointer.
func (b *blockHeader) payloadBytes() []byte {
	if b.payloadSize == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(b.payload())), b.payloadSize)
}

// end returns the address one past the end of the block's padded payload
// area, i.e. where the next block (if any) begins.
func (b *blockHeader) end() uintptr {
	return b.payload() + uintptr(b.payloadSize)
}

// initBlock writes a fresh block header at addr with the given padded
// payload size, marking it free and detached.
func initBlock(addr uintptr, payloadSize int, zone *zoneHeader) *blockHeader {
	b := blockAt(addr)
	b.payloadSize = payloadSize
	b.isFree = true
	b.next = nil
	b.zone = zone
	return b
}
