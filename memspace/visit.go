package memspace

import "sort"

type arenaRegion struct {
	offset int
	size   int
	free   bool
}

// VisitAllRegions calls the provided callback once for each allocated and free
// region in the arena, in ascending address order regardless of the lists'
// current insertion order. Together the visited regions cover [0, Size())
// exactly. Iteration stops at the first error returned by the callback, which
// is passed through.
func (s *MemorySpace) VisitAllRegions(handleRegion func(offset int, size int, free bool) error) error {
	regions := make([]arenaRegion, 0, len(s.free)+len(s.allocated))

	for _, block := range s.allocated {
		regions = append(regions, arenaRegion{offset: block.BaseAddress, size: block.Length})
	}
	for _, block := range s.free {
		regions = append(regions, arenaRegion{offset: block.BaseAddress, size: block.Length, free: true})
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].offset < regions[j].offset
	})

	for _, region := range regions {
		err := handleRegion(region.offset, region.size, region.free)
		if err != nil {
			return err
		}
	}

	return nil
}
