package bufferpool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/lstore/internal/storage"
)

func newTestPool(capacity int) (*Pool, *storage.MemStore) {
	store := storage.NewMemStore()
	return NewPool(store, capacity), store
}

func TestPool_AddFrame_And_GetPage(t *testing.T) {
	pool, _ := newTestPool(4)

	page := storage.NewPage(8)
	require.NoError(t, pool.AddFrame("t/pagerange_0/base/page_0", page))

	got, err := pool.GetPage("t/pagerange_0/base/page_0")
	require.NoError(t, err)
	require.Same(t, page, got)

	idx := pool.pageTable["t/pagerange_0/base/page_0"]
	require.Equal(t, int32(2), pool.frames[idx].Pin, "AddFrame pins once, GetPage pins again")
}

func TestPool_UnpinMakesEvictable(t *testing.T) {
	pool, store := newTestPool(1)

	page := storage.NewPage(8)
	require.NoError(t, pool.AddFrame("p0", page))
	require.NoError(t, pool.UnpinPage("p0"))

	// pool is full (capacity 1); loading a second path must evict p0.
	require.NoError(t, store.SavePage("p1", storage.NewPage(8)))
	got, err := pool.GetPage("p1")
	require.NoError(t, err)
	require.NotNil(t, got)

	_, stillResident := pool.pageTable["p0"]
	require.False(t, stillResident)
}

func TestPool_FullAndPinned_ReturnsNoFreeFrame(t *testing.T) {
	pool, store := newTestPool(1)

	require.NoError(t, pool.AddFrame("p0", storage.NewPage(8)))
	// p0 stays pinned (never unpinned), so eviction must fail.
	require.NoError(t, store.SavePage("p1", storage.NewPage(8)))
	_, err := pool.GetPage("p1")
	require.ErrorIs(t, err, ErrNoFreeFrame)
}

func TestPool_MarkDirty_FlushesOnEvict(t *testing.T) {
	pool, store := newTestPool(1)

	page := storage.NewPage(8)
	require.NoError(t, pool.AddFrame("p0", page))
	require.NoError(t, pool.MarkDirty("p0"))
	require.NoError(t, pool.UnpinPage("p0"))

	require.NoError(t, store.SavePage("p1", storage.NewPage(8)))
	_, err := pool.GetPage("p1")
	require.NoError(t, err)

	flushed, err := store.LoadPage("p0")
	require.NoError(t, err)
	require.Same(t, page, flushed)
}
