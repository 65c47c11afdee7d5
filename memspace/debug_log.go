package memspace

import "golang.org/x/exp/slog"

// DebugLogAllAllocations logs one entry per live allocation, in allocation
// order, using the provided logFunc. Intended for diagnostic purposes.
func (s *MemorySpace) DebugLogAllAllocations(logger *slog.Logger, logFunc func(log *slog.Logger, offset int, size int)) {
	for _, block := range s.allocated {
		logFunc(logger, block.BaseAddress, block.Length)
	}
}
