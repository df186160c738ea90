package queues

import "strings"

// Flags is the capability set a queue family advertises. The bit values match
// VkQueueFlagBits so driver flags convert without translation.
type Flags uint32

const (
	Graphics      Flags = 0x00000001
	Compute       Flags = 0x00000002
	Transfer      Flags = 0x00000004
	SparseBinding Flags = 0x00000008
	Protected     Flags = 0x00000010
)

// incidental bits are advertised by most families alongside their real
// capability and never decide whether a family is dedicated.
const incidental = Transfer | SparseBinding

var flagNames = []struct {
	flag Flags
	name string
}{
	{Graphics, "graphics"},
	{Compute, "compute"},
	{Transfer, "transfer"},
	{SparseBinding, "sparse_binding"},
	{Protected, "protected"},
}

// Masked returns the flags with transfer and sparse-binding stripped.
func (f Flags) Masked() Flags {
	return f &^ incidental
}

// Has reports whether every bit in other is set.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}

	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
			f &^= fn.flag
		}
	}
	if f != 0 {
		names = append(names, "unknown")
	}
	return strings.Join(names, "|")
}
