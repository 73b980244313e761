package ftmalloc

// Dump implements show_alloc_mem(): it acquires the lock, walks TINY
// zones, then SMALL zones, then LARGE blocks, in that fixed arena order,
// and writes the listing of used blocks plus a grand total to standard
// output in one syscall write.
func (al *Allocator) Dump() {
	tracef("Dump()")
	defer tracef("Dump() done")

	al.lock.Lock()
	defer al.lock.Unlock()

	var w dumpWriter
	total := 0

	for z := al.a.tinyZones; z != nil; z = z.nextZone {
		w.label("TINY", z.baseAddr())
		total += dumpZoneBlocks(&w, z)
	}
	for z := al.a.smallZones; z != nil; z = z.nextZone {
		w.label("SMALL", z.baseAddr())
		total += dumpZoneBlocks(&w, z)
	}
	for b := al.a.largeBlocks; b != nil; b = b.next {
		w.label("LARGE", b.addr())
		w.blockRange(b.payload(), b.end(), b.payloadSize)
		total += b.payloadSize
	}

	w.total(total)
	_ = w.flush()
}

func dumpZoneBlocks(w *dumpWriter, z *zoneHeader) int {
	used := 0
	for b := z.firstBlock; b != nil; b = b.next {
		if b.isFree {
			continue
		}
		w.blockRange(b.payload(), b.end(), b.payloadSize)
		used += b.payloadSize
	}
	return used
}
