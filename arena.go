package ftmalloc

// arena is the process-global registry of live zones and LARGE blocks. It
// owns the zones (each zone owns its blocks); a block's back-reference to
// its zone is non-owning.
type arena struct {
	tinyZones   *zoneHeader
	smallZones  *zoneHeader
	largeBlocks *blockHeader
}

func (a *arena) zoneListHead(c blockClass) **zoneHeader {
	switch c {
	case classTiny:
		return &a.tinyZones
	case classSmall:
		return &a.smallZones
	default:
		panic("ftmalloc: zoneListHead called with classLarge")
	}
}

// appendZone links z onto the end of the class c zone list, preserving
// arena order (the order zones were created in).
func (a *arena) appendZone(c blockClass, z *zoneHeader) {
	head := a.zoneListHead(c)
	if *head == nil {
		*head = z
		return
	}
	cur := *head
	for cur.nextZone != nil {
		cur = cur.nextZone
	}
	cur.nextZone = z
}

// removeZone unlinks z from its class's zone list.
func (a *arena) removeZone(c blockClass, z *zoneHeader) {
	head := a.zoneListHead(c)
	if *head == z {
		*head = z.nextZone
		return
	}
	for cur := *head; cur != nil; cur = cur.nextZone {
		if cur.nextZone == z {
			cur.nextZone = z.nextZone
			return
		}
	}
}

// zoneCount reports how many zones of class c currently exist.
func (a *arena) zoneCount(c blockClass) int {
	n := 0
	for z := *a.zoneListHead(c); z != nil; z = z.nextZone {
		n++
	}
	return n
}

// findTinySmall scans the TINY and SMALL zone lists for the block whose
// payload address equals addr, returning it along with its owning zone.
func (a *arena) findTinySmall(addr uintptr) (*blockHeader, *zoneHeader) {
	for _, head := range [2]*zoneHeader{a.tinyZones, a.smallZones} {
		for z := head; z != nil; z = z.nextZone {
			if !z.contains(addr) {
				continue
			}
			if b := z.findBlockByPayload(addr); b != nil {
				return b, z
			}
			return nil, nil
		}
	}
	return nil, nil
}

// findLarge scans large_blocks for the block whose payload address equals
// addr.
func (a *arena) findLarge(addr uintptr) *blockHeader {
	for b := a.largeBlocks; b != nil; b = b.next {
		if b.payload() == addr {
			return b
		}
	}
	return nil
}

// appendLarge links b onto the end of large_blocks, preserving arena
// order.
func (a *arena) appendLarge(b *blockHeader) {
	if a.largeBlocks == nil {
		a.largeBlocks = b
		return
	}
	cur := a.largeBlocks
	for cur.next != nil {
		cur = cur.next
	}
	cur.next = b
}

// removeLarge unlinks b from large_blocks.
func (a *arena) removeLarge(b *blockHeader) {
	if a.largeBlocks == b {
		a.largeBlocks = b.next
		return
	}
	for cur := a.largeBlocks; cur != nil; cur = cur.next {
		if cur.next == b {
			cur.next = b.next
			return
		}
	}
}
