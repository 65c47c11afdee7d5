package memspace_test

import (
	"testing"

	"github.com/memarena/memspace/memspace"
	"github.com/stretchr/testify/require"
)

func TestMallocSplitsTheFirstFreeBlock(t *testing.T) {
	space, err := memspace.New(20)
	require.NoError(t, err)

	require.Equal(t, 0, space.Malloc(8))
	require.Equal(t, "(8 , 12) \n(0 , 8) ", space.String())
	require.NoError(t, space.Validate())
}

func TestMallocConsumesExactFitsEntirely(t *testing.T) {
	space, err := memspace.New(30)
	require.NoError(t, err)

	require.Equal(t, 0, space.Malloc(30))
	require.Equal(t, 0, space.FreeRegionsCount())
	require.Equal(t, "\n(0 , 30) ", space.String())
	require.NoError(t, space.Validate())
}

func TestMallocFirstFitFollowsListOrder(t *testing.T) {
	space, err := memspace.New(15)
	require.NoError(t, err)

	require.Equal(t, 0, space.Malloc(5))
	require.Equal(t, 5, space.Malloc(5))
	require.Equal(t, 10, space.Malloc(5))
	require.NoError(t, space.Free(0))
	require.NoError(t, space.Free(10))

	// The free list is in release order, so the low-address block is scanned first
	require.Equal(t, "(0 , 5) (10 , 5) \n(5 , 5) ", space.String())

	require.Equal(t, 0, space.Malloc(5))
	require.NoError(t, space.Validate())
}

func TestMallocFailsWithoutASingleLargeEnoughBlock(t *testing.T) {
	space, err := memspace.New(30)
	require.NoError(t, err)

	require.Equal(t, 0, space.Malloc(10))
	require.Equal(t, 10, space.Malloc(10))
	require.Equal(t, 20, space.Malloc(10))
	require.NoError(t, space.Free(0))
	require.NoError(t, space.Free(20))

	// 20 addresses are free in total, but no single block can hold 15
	before := space.String()
	require.Equal(t, memspace.FailedAllocation, space.Malloc(15))
	require.Equal(t, before, space.String())
	require.NoError(t, space.Validate())
}

func TestFreeWithNoOutstandingAllocations(t *testing.T) {
	space, err := memspace.New(50)
	require.NoError(t, err)

	require.ErrorIs(t, space.Free(0), memspace.ErrNoAllocations)

	// The error keys off the allocated list being empty, not the address
	require.ErrorIs(t, space.Free(12345), memspace.ErrNoAllocations)
	require.Equal(t, "(0 , 50) \n", space.String())
}

func TestFreeIgnoresUnknownAddresses(t *testing.T) {
	space, err := memspace.New(40)
	require.NoError(t, err)

	require.Equal(t, 0, space.Malloc(10))
	before := space.String()

	require.NoError(t, space.Free(5))
	require.Equal(t, before, space.String())
	require.NoError(t, space.Validate())
}

func TestFreeDoesNotMergeAdjacentBlocks(t *testing.T) {
	space, err := memspace.New(20)
	require.NoError(t, err)

	require.Equal(t, 0, space.Malloc(10))
	require.Equal(t, 10, space.Malloc(10))
	require.NoError(t, space.Free(0))
	require.NoError(t, space.Free(10))

	// Both halves touch, but only Defrag coalesces
	require.Equal(t, 2, space.FreeRegionsCount())
	require.Equal(t, "(0 , 10) (10 , 10) \n", space.String())
}

func TestMallocFreeDefragRoundTrip(t *testing.T) {
	space, err := memspace.New(30)
	require.NoError(t, err)

	require.Equal(t, 0, space.Malloc(30))
	require.NoError(t, space.Free(0))
	require.Equal(t, "(0 , 30) \n", space.String())

	space.Defrag()
	require.Equal(t, "(0 , 30) \n", space.String())
	require.True(t, space.IsEmpty())
	require.NoError(t, space.Validate())
}

func TestDefragMergesOutOfOrderBlocks(t *testing.T) {
	space, err := memspace.New(30)
	require.NoError(t, err)

	require.Equal(t, 0, space.Malloc(10))
	require.Equal(t, 10, space.Malloc(10))
	require.Equal(t, 20, space.Malloc(10))
	require.NoError(t, space.Free(20))
	require.NoError(t, space.Free(0))
	require.NoError(t, space.Free(10))

	require.Equal(t, "(20 , 10) (0 , 10) (10 , 10) \n", space.String())

	space.Defrag()
	require.Equal(t, "(0 , 30) \n", space.String())
	require.Equal(t, 1, space.FreeRegionsCount())
	require.NoError(t, space.Validate())
}

func TestDefragSortsWithoutMergingAcrossAllocations(t *testing.T) {
	space, err := memspace.New(30)
	require.NoError(t, err)

	require.Equal(t, 0, space.Malloc(10))
	require.Equal(t, 10, space.Malloc(10))
	require.Equal(t, 20, space.Malloc(10))
	require.NoError(t, space.Free(20))
	require.NoError(t, space.Free(0))

	space.Defrag()

	// The live block at (10 , 10) keeps the free halves apart
	require.Equal(t, "(0 , 10) (20 , 10) \n(10 , 10) ", space.String())
	require.NoError(t, space.Validate())
}

func TestClearRestoresThePristineArena(t *testing.T) {
	space, err := memspace.New(100)
	require.NoError(t, err)

	require.Equal(t, 0, space.Malloc(25))
	require.Equal(t, 25, space.Malloc(25))
	require.NoError(t, space.Free(0))

	space.Clear()
	require.True(t, space.IsEmpty())
	require.Equal(t, "(0 , 100) \n", space.String())
	require.NoError(t, space.Validate())

	// The arena is fully usable again
	require.Equal(t, 0, space.Malloc(100))
}

func TestNewRejectsNonPositiveSizes(t *testing.T) {
	_, err := memspace.New(0)
	require.Error(t, err)

	_, err = memspace.New(-5)
	require.Error(t, err)
}
