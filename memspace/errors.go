package memspace

import "github.com/pkg/errors"

// ErrNoAllocations is returned from MemorySpace.Free when the arena has no
// outstanding allocations at all. An address that simply is not allocated does
// not produce this error- Free ignores unknown addresses as long as at least
// one allocation is live.
var ErrNoAllocations error = errors.New("no allocations are outstanding")
