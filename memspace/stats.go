package memspace

import "github.com/memarena/memspace/memutils"

// AllocationCount returns the number of live allocations in the arena.
func (s *MemorySpace) AllocationCount() int {
	return len(s.allocated)
}

// FreeRegionsCount returns the number of blocks currently on the free list.
// Adjacent free blocks are counted separately until a Defrag merges them.
func (s *MemorySpace) FreeRegionsCount() int {
	return len(s.free)
}

// SumFreeSize returns the total number of free addresses in the arena.
func (s *MemorySpace) SumFreeSize() int {
	var total int
	for _, block := range s.free {
		total += block.Length
	}
	return total
}

// IsEmpty returns true when the arena has no live allocations.
func (s *MemorySpace) IsEmpty() bool {
	return len(s.allocated) == 0
}

// AddStatistics sums this arena's allocation statistics into the statistics
// currently present in the provided memutils.Statistics object.
func (s *MemorySpace) AddStatistics(stats *memutils.Statistics) {
	stats.AllocationCount += len(s.allocated)
	stats.FreeRegionCount += len(s.free)

	for _, block := range s.allocated {
		stats.AllocationBytes += block.Length
	}
	for _, block := range s.free {
		stats.FreeBytes += block.Length
	}
}

// AddDetailedStatistics sums this arena's allocation statistics into the
// statistics currently present in the provided memutils.DetailedStatistics
// object.
func (s *MemorySpace) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	for _, block := range s.allocated {
		stats.AddAllocation(block.Length)
	}
	for _, block := range s.free {
		stats.AddFreeRegion(block.Length)
	}
}
