package memspace

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// BuildStatsString writes a JSON summary of the arena to the provided writer:
// overall totals followed by every region in address order. The output is
// intended for diagnostics and stat dumps rather than machine round-tripping.
func (s *MemorySpace) BuildStatsString(writer *jwriter.Writer) {
	objState := writer.Object()
	defer objState.End()

	objState.Name("TotalBytes").Int(s.maxSize)
	objState.Name("UnusedBytes").Int(s.SumFreeSize())
	objState.Name("Allocations").Int(len(s.allocated))
	objState.Name("FreeRegions").Int(len(s.free))

	s.printDetailedMapRegions(objState)
}

func (s *MemorySpace) printDetailedMapRegions(json jwriter.ObjectState) {
	arrayState := json.Name("Regions").Array()
	defer arrayState.End()

	_ = s.VisitAllRegions(
		func(offset int, size int, free bool) error {
			obj := arrayState.Object()
			defer obj.End()

			obj.Name("Offset").Int(offset)
			obj.Name("Size").Int(size)
			if free {
				obj.Name("Type").String("FREE")
			} else {
				obj.Name("Type").String("ALLOCATED")
			}

			return nil
		})
}
