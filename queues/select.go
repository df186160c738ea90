// Package queues picks the queue families a compute workload should run on.
//
// All decisions are made on masked flags: transfer and sparse-binding bits are
// ignored, so a family advertising compute|transfer counts as a dedicated
// compute family.
package queues

func isDedicatedCompute(f Flags) bool {
	m := f.Masked()
	return m&Compute != 0 && m&Graphics == 0
}

func isCompute(f Flags) bool {
	return f.Masked()&Compute != 0
}

func isGraphics(f Flags) bool {
	return f.Masked()&Graphics != 0
}

func firstMatch(families []Family, match func(Flags) bool) int {
	for pos, family := range families {
		if match(family.Flags) {
			return pos
		}
	}
	return -1
}

func lastMatch(families []Family, match func(Flags) bool) int {
	for pos := len(families) - 1; pos >= 0; pos-- {
		if match(families[pos].Flags) {
			return pos
		}
	}
	return -1
}

func indexAt(families []Family, pos int) FamilyIndex {
	if pos < 0 {
		return NotFound
	}
	return Found(families[pos].Index)
}

// FindDedicatedCompute returns the first family with compute but without
// graphics.
func FindDedicatedCompute(families []Family) FamilyIndex {
	return indexAt(families, firstMatch(families, isDedicatedCompute))
}

// FindAnyCompute returns the first compute-capable family.
func FindAnyCompute(families []Family) FamilyIndex {
	return indexAt(families, firstMatch(families, isCompute))
}

// FindGraphics returns the last graphics-capable family.
func FindGraphics(families []Family) FamilyIndex {
	return indexAt(families, lastMatch(families, isGraphics))
}

// Select chooses a compute family, preferring one without graphics, and the
// graphics family seen by the dedicated scan.
//
// The dedicated scan stops at the first family by which both a dedicated
// compute family and a graphics family have been seen, so graphics families
// past that point are never considered. Only when no dedicated compute
// family exists does the first compute-capable family of any kind win.
func Select(families []Family) Selection {
	dedicated := firstMatch(families, isDedicatedCompute)
	firstGraphics := firstMatch(families, isGraphics)

	window := families
	if dedicated >= 0 && firstGraphics >= 0 {
		window = families[:max(dedicated, firstGraphics)+1]
	}

	s := Selection{
		compute:  FindDedicatedCompute(families),
		graphics: FindGraphics(window),
	}
	if !s.compute.HasValue() {
		s.compute = FindAnyCompute(families)
	}
	return s
}
