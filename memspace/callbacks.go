package memspace

// AllocateBlockCallback is fired after a successful Malloc or MallocAligned
// carves a new block out of the free list.
type AllocateBlockCallback func(
	space *MemorySpace,
	address int,
	size int,
	userData interface{},
)

// FreeBlockCallback is fired after a successful Free returns a block to the
// free list. It does not fire when Free ignores an unknown address.
type FreeBlockCallback func(
	space *MemorySpace,
	address int,
	size int,
	userData interface{},
)

// MemoryCallbackOptions carries optional hooks observing the arena's
// allocation traffic. Either hook may be nil.
type MemoryCallbackOptions struct {
	Allocate AllocateBlockCallback
	Free     FreeBlockCallback
	UserData interface{}
}

type memoryCallbacks struct {
	Callbacks *MemoryCallbackOptions
	Space     *MemorySpace
}

func (c *memoryCallbacks) Allocate(address, size int) {
	if c.Callbacks != nil && c.Callbacks.Allocate != nil {
		c.Callbacks.Allocate(c.Space, address, size, c.Callbacks.UserData)
	}
}

func (c *memoryCallbacks) Free(address, size int) {
	if c.Callbacks != nil && c.Callbacks.Free != nil {
		c.Callbacks.Free(c.Space, address, size, c.Callbacks.UserData)
	}
}
