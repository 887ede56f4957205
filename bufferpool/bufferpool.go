// Package bufferpool implements the buffer pool manager: a fixed pool of
// page frames backed by a disk collaborator, evicted under an LRU-K
// policy, exposed through pin/unpin and scoped page guards.
package bufferpool

import (
	"sync"

	"github.com/avdosev/pagekv/pkg/assert"
	"github.com/avdosev/pagekv/storage/page"
)

// DiskManager is the disk collaborator the buffer pool reads from and
// writes to. Implementations are expected to either succeed or abort the
// process — the buffer pool does not attempt to recover from disk errors.
type DiskManager interface {
	ReadPage(pageID int64, buf []byte) error
	WritePage(pageID int64, buf []byte) error
}

const noFrame = FrameID(-1)

// Manager is the buffer pool manager.
type Manager struct {
	mu sync.Mutex

	poolSize int
	frames   []*page.Page

	pageTable map[int64]FrameID
	freeList  []FrameID

	replacer Replacer
	disk     DiskManager

	nextPageID int64
}

// New builds a buffer pool of poolSize frames, evicting under LRU-K with
// history depth k.
func New(poolSize, k int, disk DiskManager) *Manager {
	assert.Assert(poolSize > 0, "pool size must be positive")

	frames := make([]*page.Page, poolSize)
	freeList := make([]FrameID, poolSize)
	for i := range poolSize {
		frames[i] = page.New()
		freeList[i] = FrameID(i)
	}

	return &Manager{
		poolSize:  poolSize,
		frames:    frames,
		pageTable: make(map[int64]FrameID),
		freeList:  freeList,
		replacer:  NewLRUKReplacer(poolSize, k),
		disk:      disk,
	}
}

func (m *Manager) GetPoolSize() int {
	return m.poolSize
}

// reserveVictim pops a frame off the free list, or asks the replacer to
// evict one. Callers must hold m.mu. Returns noFrame if neither yields a
// frame.
func (m *Manager) reserveVictim() FrameID {
	if n := len(m.freeList); n > 0 {
		id := m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
		return id
	}

	id, ok := m.replacer.Evict()
	if !ok {
		return noFrame
	}
	return id
}

// evictFrame writes the victim back to disk if dirty and drops it from
// the page table, leaving the frame ready to be repurposed. Callers must
// hold m.mu.
func (m *Manager) evictFrame(victim FrameID) {
	f := m.frames[victim]
	oldPageID := f.GetPageID()

	if oldPageID == page.InvalidPageID {
		return
	}

	if f.IsDirty() {
		assert.NoError(m.disk.WritePage(oldPageID, f.GetData()))
	}
	delete(m.pageTable, oldPageID)
}

// NewPage allocates a fresh page id and pins it into a frame. Returns
// (nil, InvalidPageID, false) if the pool has no free or evictable frame.
func (m *Manager) NewPage() (*page.Page, int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	victim := m.reserveVictim()
	if victim == noFrame {
		return nil, page.InvalidPageID, false
	}

	newID := m.nextPageID
	m.nextPageID++

	m.evictFrame(victim)

	f := m.frames[victim]
	f.ResetMemory()
	f.SetPinCount(1)
	f.ClearDirty()
	f.SetPageID(newID)

	m.pageTable[newID] = victim

	m.replacer.RecordAccess(victim)
	m.replacer.SetEvictable(victim, false)

	return f, newID, true
}

// FetchPage pins pageID into a frame, loading it from disk if it isn't
// already resident. Returns (nil, false) if the pool has no room.
func (m *Manager) FetchPage(pageID int64) (*page.Page, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frameID, ok := m.pageTable[pageID]; ok {
		f := m.frames[frameID]
		f.Pin()
		m.replacer.RecordAccess(frameID)
		m.replacer.SetEvictable(frameID, false)
		return f, true
	}

	victim := m.reserveVictim()
	if victim == noFrame {
		return nil, false
	}

	m.evictFrame(victim)

	f := m.frames[victim]
	buf := f.GetData()
	assert.NoError(m.disk.ReadPage(pageID, buf))
	f.SetData(buf)
	f.SetPageID(pageID)
	f.ClearDirty()
	f.SetPinCount(1)

	m.pageTable[pageID] = victim

	m.replacer.RecordAccess(victim)
	m.replacer.SetEvictable(victim, false)

	return f, true
}

// UnpinPage decrements pageID's pin count, marking its frame evictable
// once the count reaches zero. isDirty is ORed into the frame's dirty
// flag; it never clears it. Returns false if pageID isn't resident or
// its pin count is already zero.
func (m *Manager) UnpinPage(pageID int64, isDirty bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	frameID, ok := m.pageTable[pageID]
	if !ok {
		return false
	}

	f := m.frames[frameID]
	if f.GetPinCount() == 0 {
		return false
	}

	f.MarkDirty(isDirty)
	if f.Unpin() {
		m.replacer.SetEvictable(frameID, true)
	}

	return true
}

// FlushPage writes pageID's resident buffer to disk unconditionally and
// clears its dirty flag. Returns false if pageID isn't resident or is
// page.InvalidPageID.
func (m *Manager) FlushPage(pageID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.flushPageLocked(pageID)
}

func (m *Manager) flushPageLocked(pageID int64) bool {
	if pageID == page.InvalidPageID {
		return false
	}

	frameID, ok := m.pageTable[pageID]
	if !ok {
		return false
	}

	f := m.frames[frameID]
	assert.NoError(m.disk.WritePage(pageID, f.GetData()))
	f.ClearDirty()

	return true
}

// FlushAllPages flushes every resident page. Unlike a naive implementation
// that walks [0, poolSize) as if frame index and page id coincided, this
// walks the page table directly so it flushes every page actually in the
// pool regardless of how its id relates to poolSize.
func (m *Manager) FlushAllPages() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for pageID := range m.pageTable {
		m.flushPageLocked(pageID)
	}
}

// DeletePage evicts pageID from the pool and returns its frame to the
// free list. Returns false if the page is pinned. Returns true (without
// doing anything) if pageID isn't resident or is page.InvalidPageID.
func (m *Manager) DeletePage(pageID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pageID == page.InvalidPageID {
		return true
	}

	frameID, ok := m.pageTable[pageID]
	if !ok {
		return true
	}

	f := m.frames[frameID]
	if f.GetPinCount() > 0 {
		return false
	}

	m.replacer.Remove(frameID)
	delete(m.pageTable, pageID)

	f.ResetMemory()
	f.SetPinCount(0)
	f.ClearDirty()
	f.SetPageID(page.InvalidPageID)

	m.freeList = append(m.freeList, frameID)

	return true
}
