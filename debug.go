//go:build ftmalloc_debug

package ftmalloc

// Test-only exports: constants and helpers for white-box tests without
// altering production behavior. Only compiled under the ftmalloc_debug
// build tag so release binaries never carry them.

// DebugPageSize reports the OS page size used by a freshly constructed
// Allocator.
func DebugPageSize() int {
	return newPager().pageSize
}

// DebugAlignUp exposes alignUp for white-box tests.
func DebugAlignUp(x, a int) int { return alignUp(x, a) }

// DebugCeilToPages exposes ceilToPages for white-box tests.
func DebugCeilToPages(x, pageSize int) int { return ceilToPages(x, pageSize) }

// DebugZoneHeaderSize reports sizeof(zoneHeader) rounded to the alignment
// unit.
func DebugZoneHeaderSize() int { return zoneHeaderSize }

// DebugBlockHeaderSize reports sizeof(blockHeader) rounded to the
// alignment unit.
func DebugBlockHeaderSize() int { return blockHeaderSize }

// DebugAlignment reports the payload alignment constant.
func DebugAlignment() int { return payloadAlignment }

// DebugThresholds reports the TINY/SMALL/LARGE classification
// thresholds.
func DebugThresholds() (tiny, small int) { return tinyMax, smallMax }

// DebugMinBlocksPerZone reports N, the minimum maximum-class blocks a
// fresh zone must accommodate.
func DebugMinBlocksPerZone() int { return blocksPerZone }

// DebugCountZones reports how many zones of the given class currently
// exist in al's arena. class must be "TINY" or "SMALL".
func (al *Allocator) DebugCountZones(class string) int {
	al.lock.Lock()
	defer al.lock.Unlock()

	switch class {
	case "TINY":
		return al.a.zoneCount(classTiny)
	case "SMALL":
		return al.a.zoneCount(classSmall)
	default:
		panic("ftmalloc: DebugCountZones: unknown class " + class)
	}
}

// DebugCountLarge reports how many LARGE blocks currently exist in al's
// arena.
func (al *Allocator) DebugCountLarge() int {
	al.lock.Lock()
	defer al.lock.Unlock()

	n := 0
	for b := al.a.largeBlocks; b != nil; b = b.next {
		n++
	}
	return n
}

// DebugZoneRoundtrip maps a single zone of the given class, immediately
// unmaps it, and reports whether the round trip succeeded. It exists to
// let white-box tests exercise the pager without going through the
// public allocation API.
func DebugZoneRoundtrip(class string) error {
	p := newPager()
	var c blockClass
	switch class {
	case "TINY":
		c = classTiny
	case "SMALL":
		c = classSmall
	default:
		panic("ftmalloc: DebugZoneRoundtrip: unknown class " + class)
	}

	z, err := newZone(p, c)
	if err != nil {
		return err
	}
	return p.unmapRegion(z.region())
}
