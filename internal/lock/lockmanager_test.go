package locking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireSharedSharedCompatible(t *testing.T) {
	lm := NewLockManager()
	require.True(t, lm.Acquire(1, "t1/pagerange_0", Shared))
	require.True(t, lm.Acquire(2, "t1/pagerange_0", Shared))

	mode, ok := lm.HeldBy(1, "t1/pagerange_0")
	require.True(t, ok)
	assert.Equal(t, Shared, mode)
}

func TestAcquireExclusiveConflictsWithShared(t *testing.T) {
	lm := NewLockManager()
	require.True(t, lm.Acquire(1, "t1/pagerange_0", Shared))
	assert.False(t, lm.Acquire(2, "t1/pagerange_0", Exclusive))
}

func TestAcquireExclusiveConflictsWithExclusive(t *testing.T) {
	lm := NewLockManager()
	require.True(t, lm.Acquire(1, "t1/pagerange_0", Exclusive))
	assert.False(t, lm.Acquire(2, "t1/pagerange_0", Exclusive))
}

func TestSameTxUpgradesSharedToExclusive(t *testing.T) {
	lm := NewLockManager()
	require.True(t, lm.Acquire(1, "t1/pagerange_0", Shared))
	require.True(t, lm.Acquire(1, "t1/pagerange_0", Exclusive))

	mode, ok := lm.HeldBy(1, "t1/pagerange_0")
	require.True(t, ok)
	assert.Equal(t, Exclusive, mode)
}

func TestUpgradeFailsWithOtherSharedHolders(t *testing.T) {
	lm := NewLockManager()
	require.True(t, lm.Acquire(1, "t1/pagerange_0", Shared))
	require.True(t, lm.Acquire(2, "t1/pagerange_0", Shared))
	assert.False(t, lm.Acquire(1, "t1/pagerange_0", Exclusive))
}

func TestReleaseDropsRowWhenEmpty(t *testing.T) {
	lm := NewLockManager()
	require.True(t, lm.Acquire(1, "t1/pagerange_0", Exclusive))
	lm.Release(1, "t1/pagerange_0")

	_, ok := lm.HeldBy(1, "t1/pagerange_0")
	assert.False(t, ok)

	// Row gone, a fresh acquire should succeed cleanly.
	assert.True(t, lm.Acquire(2, "t1/pagerange_0", Exclusive))
}

func TestReentrantSharedIsNoop(t *testing.T) {
	lm := NewLockManager()
	require.True(t, lm.Acquire(1, "row", Shared))
	require.True(t, lm.Acquire(1, "row", Shared))
	lm.Release(1, "row")
	_, ok := lm.HeldBy(1, "row")
	assert.False(t, ok, "single release should fully drop the re-entrant holder")
}

func TestHierarchicalGranularityIsJustDistinctIDs(t *testing.T) {
	lm := NewLockManager()
	// TABLE, PAGE_RANGE, PAGE, RECORD locks are just different id strings
	// over the same table; a transaction acquires each level independently.
	require.True(t, lm.Acquire(1, "orders", Shared))
	require.True(t, lm.Acquire(1, "orders/pagerange_3", Shared))
	require.True(t, lm.Acquire(1, "orders/pagerange_3/base/page_1", Exclusive))
	require.True(t, lm.Acquire(1, "orders/pagerange_3/base/page_1/7", Exclusive))
}
