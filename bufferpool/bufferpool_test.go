package bufferpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avdosev/pagekv/storage/page"
)

func newTestManager(poolSize, k int) (*Manager, *MockDiskManager) {
	disk := new(MockDiskManager)
	return New(poolSize, k, disk), disk
}

func TestNewPage_AllocatesSequentialIDs(t *testing.T) {
	bpm, _ := newTestManager(2, 2)

	_, id0, ok := bpm.NewPage()
	require.True(t, ok)
	assert.Equal(t, int64(0), id0)

	_, id1, ok := bpm.NewPage()
	require.True(t, ok)
	assert.Equal(t, int64(1), id1)
}

func TestNewPage_ExactlyPoolSizeThenFails(t *testing.T) {
	bpm, _ := newTestManager(2, 2)

	_, _, ok := bpm.NewPage()
	require.True(t, ok)
	_, _, ok = bpm.NewPage()
	require.True(t, ok)

	_, _, ok = bpm.NewPage()
	assert.False(t, ok, "third NewPage must fail with no unpins and no free/evictable frames")
}

func TestBPM_BasicCycle(t *testing.T) {
	// Spec scenario 1: pool_size=1, k=2.
	bpm, disk := newTestManager(1, 2)

	_, p0, ok := bpm.NewPage()
	require.True(t, ok)
	assert.Equal(t, int64(0), p0)

	assert.True(t, bpm.UnpinPage(p0, true))

	disk.On("WritePage", p0, mock.Anything).Return(nil).Once()

	_, p1, ok := bpm.NewPage()
	require.True(t, ok)
	assert.Equal(t, int64(1), p1)

	_, ok = bpm.FetchPage(p0)
	assert.False(t, ok, "frame now holds p1, which is pinned, so p0 cannot be fetched")
}

func TestFetchPage_IncrementsPinCountOnCacheHit(t *testing.T) {
	bpm, _ := newTestManager(2, 2)

	pg, id, ok := bpm.NewPage()
	require.True(t, ok)
	assert.Equal(t, uint64(1), pg.GetPinCount())

	fetched, ok := bpm.FetchPage(id)
	require.True(t, ok)
	assert.Same(t, pg, fetched)
	assert.Equal(t, uint64(2), pg.GetPinCount())
}

func TestUnpinPage_UnknownOrAlreadyZeroFails(t *testing.T) {
	bpm, _ := newTestManager(1, 2)

	assert.False(t, bpm.UnpinPage(42, false))

	_, id, ok := bpm.NewPage()
	require.True(t, ok)
	require.True(t, bpm.UnpinPage(id, false))
	assert.False(t, bpm.UnpinPage(id, false), "second unpin with pin count already 0 must fail")
}

func TestUnpinPage_DirtyIsSticky(t *testing.T) {
	bpm, _ := newTestManager(1, 2)

	pg, id, ok := bpm.NewPage()
	require.True(t, ok)

	pg.Pin() // pin count 2 so both unpins below succeed without evicting
	require.True(t, bpm.UnpinPage(id, true))
	assert.True(t, pg.IsDirty())

	require.True(t, bpm.UnpinPage(id, false))
	assert.True(t, pg.IsDirty(), "UnpinPage(dirty=false) must never clear an already-dirty page")
}

func TestFlushPage_WritesAndClearsDirty(t *testing.T) {
	bpm, disk := newTestManager(1, 2)

	pg, id, ok := bpm.NewPage()
	require.True(t, ok)
	pg.SetData([]byte("payload"))
	pg.MarkDirty(true)

	disk.On("WritePage", id, mock.Anything).Return(nil).Once()

	assert.True(t, bpm.FlushPage(id))
	assert.False(t, pg.IsDirty())
	disk.AssertExpectations(t)
}

func TestFlushPage_UnknownPageFails(t *testing.T) {
	bpm, _ := newTestManager(1, 2)
	assert.False(t, bpm.FlushPage(7))
}

func TestFlushPage_InvalidPageIDFails(t *testing.T) {
	bpm, _ := newTestManager(1, 2)
	assert.False(t, bpm.FlushPage(page.InvalidPageID))
}

func TestFlushAllPages_FlushesEveryResidentPage(t *testing.T) {
	bpm, disk := newTestManager(3, 2)

	var ids []int64
	for range 3 {
		pg, id, ok := bpm.NewPage()
		require.True(t, ok)
		pg.MarkDirty(true)
		ids = append(ids, id)
	}

	for _, id := range ids {
		disk.On("WritePage", id, mock.Anything).Return(nil).Once()
	}

	bpm.FlushAllPages()
	disk.AssertExpectations(t)
}

func TestDeletePage_PinnedFails(t *testing.T) {
	bpm, _ := newTestManager(1, 2)

	_, id, ok := bpm.NewPage()
	require.True(t, ok)

	assert.False(t, bpm.DeletePage(id))
}

func TestDeletePage_FreesFrameForReuse(t *testing.T) {
	bpm, _ := newTestManager(1, 2)

	_, id, ok := bpm.NewPage()
	require.True(t, ok)
	require.True(t, bpm.UnpinPage(id, false))

	assert.True(t, bpm.DeletePage(id))

	_, _, ok = bpm.NewPage()
	assert.True(t, ok, "deleted frame must be back on the free list")
}

func TestDeletePage_InvalidPageIDIsANoOpSuccess(t *testing.T) {
	bpm, _ := newTestManager(1, 2)
	assert.True(t, bpm.DeletePage(page.InvalidPageID))
}

func TestDeletePage_UnknownPageIsANoOpSuccess(t *testing.T) {
	bpm, _ := newTestManager(1, 2)
	assert.True(t, bpm.DeletePage(123))
}

func TestFetchPage_EvictsLRUKVictimAmongUnpinned(t *testing.T) {
	bpm, disk := newTestManager(1, 2)

	_, p0, ok := bpm.NewPage()
	require.True(t, ok)
	require.True(t, bpm.UnpinPage(p0, false))

	disk.On("ReadPage", int64(999), mock.Anything).Return(nil).Once()

	_, ok = bpm.FetchPage(999)
	assert.True(t, ok, "unpinned frame must be evictable for a new fetch")

	_, ok = bpm.FetchPage(p0)
	assert.False(t, ok, "p0 was evicted and the only frame now holds pinned page 999, so p0 cannot be loaded back")
}
