package memspace

import (
	"sort"

	"github.com/pkg/errors"
)

// Validate performs internal consistency checks on the arena: block bounds,
// block lengths, the address index, and full non-overlapping coverage of
// [0, Size()) by the free and allocated lists combined. When the arena is
// functioning correctly it should not be possible for this method to return an
// error, but it may assist in diagnosing issues with the implementation or with
// a misbehaving caller.
func (s *MemorySpace) Validate() error {
	for blockIndex, block := range s.free {
		if block.Length < 1 {
			return errors.Errorf("free block at index %d has length %d- zero-length blocks must be removed immediately", blockIndex, block.Length)
		}
		if block.BaseAddress < 0 || block.End() > s.maxSize {
			return errors.Errorf("free block at index %d covers [%d, %d), which escapes the arena [0, %d)", blockIndex, block.BaseAddress, block.End(), s.maxSize)
		}
	}

	for blockIndex, block := range s.allocated {
		if block.Length < 1 {
			return errors.Errorf("allocated block at index %d has length %d", blockIndex, block.Length)
		}
		if block.BaseAddress < 0 || block.End() > s.maxSize {
			return errors.Errorf("allocated block at index %d covers [%d, %d), which escapes the arena [0, %d)", blockIndex, block.BaseAddress, block.End(), s.maxSize)
		}

		indexed, ok := s.addressKey.Get(block.BaseAddress)
		if !ok {
			return errors.Errorf("allocated block at address %d is missing from the address index", block.BaseAddress)
		}
		if indexed != block {
			return errors.Errorf("the address index maps %d to a different block than the allocated list", block.BaseAddress)
		}
	}

	if s.addressKey.Count() != len(s.allocated) {
		return errors.Errorf("the address index holds %d entries, but there are %d allocated blocks", s.addressKey.Count(), len(s.allocated))
	}

	combined := make([]*MemoryBlock, 0, len(s.free)+len(s.allocated))
	combined = append(combined, s.free...)
	combined = append(combined, s.allocated...)
	sort.Slice(combined, func(i, j int) bool {
		return combined[i].BaseAddress < combined[j].BaseAddress
	})

	expectedBase := 0
	for _, block := range combined {
		if block.BaseAddress < expectedBase {
			return errors.Errorf("the block at [%d, %d) overlaps the block before it, which ends at %d", block.BaseAddress, block.End(), expectedBase)
		}
		if block.BaseAddress > expectedBase {
			return errors.Errorf("the addresses [%d, %d) belong to neither the free list nor the allocated list", expectedBase, block.BaseAddress)
		}
		expectedBase = block.End()
	}

	if expectedBase != s.maxSize {
		return errors.Errorf("the tracked blocks end at %d, but the arena is %d addresses long", expectedBase, s.maxSize)
	}

	return nil
}
