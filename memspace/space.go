package memspace

import (
	"sort"
	"strings"

	cerrors "github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/memarena/memspace/memutils"
)

// FailedAllocation is the address returned from Malloc and MallocAligned when no
// free block is large enough to satisfy the request.
const FailedAllocation = -1

// MemorySpace simulates a single fixed-size memory arena. It tracks two ordered
// lists of MemoryBlock records- one for free ranges and one for allocated
// ranges- whose union always covers exactly [0, Size()) with no overlap.
//
// Allocation is first-fit: Malloc scans the free list in its current order,
// which is insertion order rather than address order, and carves the request
// from the low end of the first block that can hold it. Freed blocks are
// appended to the free list as-is; adjacent free ranges are only merged by an
// explicit Defrag call.
//
// A MemorySpace performs no internal locking. Callers embedding one in a
// concurrent system must serialize access themselves.
type MemorySpace struct {
	maxSize   int
	free      []*MemoryBlock
	allocated []*MemoryBlock

	// addressKey maps the base address of every live allocation to its block,
	// so Free does not pay for a list scan on the hot path
	addressKey *swiss.Map[int, *MemoryBlock]

	callbacks memoryCallbacks
}

// New creates a MemorySpace managing the address range [0, maxSize). The arena
// begins as a single free block spanning the entire range. maxSize must be at
// least 1.
func New(maxSize int) (*MemorySpace, error) {
	return NewWithCallbacks(maxSize, nil)
}

// NewWithCallbacks behaves as New, but also registers a MemoryCallbackOptions
// whose hooks fire after every successful allocation and release. A nil
// callbackOptions is equivalent to calling New.
func NewWithCallbacks(maxSize int, callbackOptions *MemoryCallbackOptions) (*MemorySpace, error) {
	if maxSize < 1 {
		return nil, cerrors.Newf("attempted to create a memory space of size %d- the arena requires at least one address", maxSize)
	}

	space := &MemorySpace{
		maxSize: maxSize,
		free: []*MemoryBlock{
			{BaseAddress: 0, Length: maxSize},
		},
		addressKey: swiss.NewMap[int, *MemoryBlock](42),
	}
	space.callbacks.Callbacks = callbackOptions
	space.callbacks.Space = space

	return space, nil
}

// Size returns the total number of addresses managed by the arena.
func (s *MemorySpace) Size() int { return s.maxSize }

// Malloc allocates a block of the requested length using a first-fit scan of
// the free list and returns its base address. The matching free block is
// consumed from its low end- shrunk in place, or removed outright when the
// request takes all of it. When no single free block is large enough, Malloc
// returns FailedAllocation and the arena is left untouched, even if the free
// list's total capacity could have covered the request.
//
// Length is expected to be positive. Non-positive lengths are not rejected; they
// trivially first-fit the front of the free list, which is a caller error
// rather than something this method diagnoses.
func (s *MemorySpace) Malloc(length int) int {
	for blockIndex, freeBlock := range s.free {
		if freeBlock.Length < length {
			continue
		}

		address := freeBlock.BaseAddress
		allocBlock := &MemoryBlock{BaseAddress: address, Length: length}
		s.allocated = append(s.allocated, allocBlock)
		s.addressKey.Put(address, allocBlock)

		// Carve from the low end of the matching block
		freeBlock.BaseAddress += length
		freeBlock.Length -= length
		if freeBlock.Length == 0 {
			s.free = append(s.free[:blockIndex], s.free[blockIndex+1:]...)
		}

		memutils.DebugValidate(s)
		s.callbacks.Allocate(address, length)
		return address
	}

	return FailedAllocation
}

// MallocAligned allocates a block of the requested length whose base address is
// a multiple of alignment, which must be a power of two. The scan is still
// first-fit over the free list in its current order, but the carve point within
// the matching block is rounded up to the alignment: any skipped prefix remains
// with the original free block, and a leftover suffix is appended to the free
// list as a new block. Returns FailedAllocation when no free block can hold an
// aligned request, and an error only when the alignment itself is invalid.
func (s *MemorySpace) MallocAligned(length int, alignment uint) (int, error) {
	err := memutils.CheckPow2(alignment, "alignment")
	if err != nil {
		return FailedAllocation, err
	}

	for blockIndex, freeBlock := range s.free {
		address := memutils.AlignUp(freeBlock.BaseAddress, alignment)
		if address+length > freeBlock.End() {
			continue
		}

		allocBlock := &MemoryBlock{BaseAddress: address, Length: length}

		if address == freeBlock.BaseAddress {
			freeBlock.BaseAddress += length
			freeBlock.Length -= length
			if freeBlock.Length == 0 {
				s.free = append(s.free[:blockIndex], s.free[blockIndex+1:]...)
			}
		} else {
			suffix := freeBlock.End() - allocBlock.End()
			freeBlock.Length = address - freeBlock.BaseAddress
			if suffix > 0 {
				s.free = append(s.free, &MemoryBlock{BaseAddress: allocBlock.End(), Length: suffix})
			}
		}

		s.allocated = append(s.allocated, allocBlock)
		s.addressKey.Put(address, allocBlock)

		memutils.DebugValidate(s)
		s.callbacks.Allocate(address, length)
		return address, nil
	}

	return FailedAllocation, nil
}

// Free releases the allocated block whose base address equals address, moving
// its range to the end of the free list. No merging with adjacent free blocks
// happens here- that is Defrag's job.
//
// When the arena has no outstanding allocations at all, Free returns
// ErrNoAllocations regardless of the address argument. When allocations are
// outstanding but none begins at address, Free is a silent no-op.
func (s *MemorySpace) Free(address int) error {
	if len(s.allocated) == 0 {
		return cerrors.Wrapf(ErrNoAllocations, "failed to free address %d", address)
	}

	block, ok := s.addressKey.Get(address)
	if !ok {
		return nil
	}

	for blockIndex, candidate := range s.allocated {
		if candidate == block {
			s.allocated = append(s.allocated[:blockIndex], s.allocated[blockIndex+1:]...)
			break
		}
	}
	s.addressKey.Delete(address)
	s.free = append(s.free, &MemoryBlock{BaseAddress: block.BaseAddress, Length: block.Length})

	memutils.DebugValidate(s)
	s.callbacks.Free(block.BaseAddress, block.Length)
	return nil
}

// Defrag sorts the free list by base address and merges every pair of adjacent
// free blocks into one. Afterward the free list is in address order and no two
// free blocks touch. Does nothing when the free list holds fewer than two
// blocks.
func (s *MemorySpace) Defrag() {
	if len(s.free) < 2 {
		return
	}

	blocks := make([]*MemoryBlock, len(s.free))
	copy(blocks, s.free)
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].BaseAddress < blocks[j].BaseAddress
	})
	s.free = blocks

	// Single left-to-right pass. After a merge, the grown block is re-examined
	// at the same index- the list is sorted and non-overlapping, so one sweep
	// is enough.
	blockIndex := 0
	for blockIndex < len(s.free)-1 {
		curr := s.free[blockIndex]
		next := s.free[blockIndex+1]

		if curr.End() == next.BaseAddress {
			curr.Length += next.Length
			s.free = append(s.free[:blockIndex+1], s.free[blockIndex+2:]...)
		} else {
			blockIndex++
		}
	}

	memutils.DebugValidate(s)
}

// Clear instantly releases every allocation, returning the arena to a single
// free block spanning [0, Size()).
func (s *MemorySpace) Clear() {
	s.allocated = nil
	s.addressKey = swiss.NewMap[int, *MemoryBlock](42)
	s.free = []*MemoryBlock{
		{BaseAddress: 0, Length: s.maxSize},
	}
}

// String renders the arena as two lines separated by a newline: the free list
// followed by the allocated list, each as a sequence of "(base , length) "
// entries in current list order. Either half may be empty.
func (s *MemorySpace) String() string {
	var builder strings.Builder

	for _, block := range s.free {
		builder.WriteString(block.String())
		builder.WriteString(" ")
	}
	builder.WriteString("\n")
	for _, block := range s.allocated {
		builder.WriteString(block.String())
		builder.WriteString(" ")
	}

	return builder.String()
}
