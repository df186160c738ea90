package queues

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrNoComputeFamily is returned when a device exposes no compute-capable
// queue family.
var ErrNoComputeFamily = errors.New("no compute-capable queue family")

// Family describes one queue family of a physical device.
type Family struct {
	// Index is the family's position in the driver's enumeration.
	Index int
	Flags Flags
}

func (f Family) String() string {
	return fmt.Sprintf("{ Index: %d Flags: %s }", f.Index, f.Flags)
}

// FamiliesFromFlags builds family descriptors indexed by position.
func FamiliesFromFlags(flags ...Flags) []Family {
	families := make([]Family, 0, len(flags))
	for idx, f := range flags {
		families = append(families, Family{Index: idx, Flags: f})
	}
	return families
}

// FamilyIndex is either a found queue family index or NotFound.
type FamilyIndex struct {
	index int
	found bool
}

// NotFound is the FamilyIndex of a family that was never selected.
var NotFound = FamilyIndex{}

// Found wraps a selected queue family index.
func Found(index int) FamilyIndex {
	return FamilyIndex{index: index, found: true}
}

// HasValue reports whether the family was selected.
func (i FamilyIndex) HasValue() bool {
	return i.found
}

// Get returns the index and whether it was selected.
func (i FamilyIndex) Get() (int, bool) {
	return i.index, i.found
}

func (i FamilyIndex) String() string {
	if !i.found {
		return "none"
	}
	return fmt.Sprintf("%d", i.index)
}

// Selection holds the queue families chosen for a physical device. It is
// produced once by Select and never changes afterwards.
type Selection struct {
	compute  FamilyIndex
	graphics FamilyIndex
	present  FamilyIndex
}

// Compute returns the family compute work is submitted to.
func (s Selection) Compute() FamilyIndex { return s.compute }

// Graphics returns the graphics family seen by the dedicated scan.
func (s Selection) Graphics() FamilyIndex { return s.graphics }

// Present is never populated by Select: presentation support is a property of
// a surface, and this program never creates one.
func (s Selection) Present() FamilyIndex { return s.present }

// IsComplete returns true if a compute family has been selected.
func (s Selection) IsComplete() bool {
	return s.compute.HasValue()
}

// IsCompleteForUI returns true if both graphics and present families have
// been selected.
func (s Selection) IsCompleteForUI() bool {
	return s.graphics.HasValue() && s.present.HasValue()
}

// ComputeFamily returns the selected compute family, or ErrNoComputeFamily.
func (s Selection) ComputeFamily() (int, error) {
	idx, ok := s.compute.Get()
	if !ok {
		return 0, ErrNoComputeFamily
	}
	return idx, nil
}

// UniqueFamilies returns every selected family index once, ascending.
func (s Selection) UniqueFamilies() []int {
	seen := make(map[int]struct{})
	var unique []int
	for _, fi := range []FamilyIndex{s.compute, s.graphics, s.present} {
		idx, ok := fi.Get()
		if !ok {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		unique = append(unique, idx)
	}
	sort.Ints(unique)
	return unique
}

func (s Selection) String() string {
	return fmt.Sprintf("{ Compute: %s Graphics: %s Present: %s }", s.compute, s.graphics, s.present)
}
