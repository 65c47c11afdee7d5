package memspace

import "fmt"

// MemoryBlock describes a single contiguous range of addresses within an arena,
// covering the half-open interval [BaseAddress, BaseAddress+Length). A block
// belongs to exactly one of a MemorySpace's free or allocated lists at a time,
// and its fields are adjusted in place when a free block is partially consumed
// by an allocation.
type MemoryBlock struct {
	BaseAddress int
	Length      int
}

// End returns the first address past the end of the block.
func (b *MemoryBlock) End() int {
	return b.BaseAddress + b.Length
}

// String renders the block in the arena's "(base , length)" textual form.
func (b *MemoryBlock) String() string {
	return fmt.Sprintf("(%d , %d)", b.BaseAddress, b.Length)
}
