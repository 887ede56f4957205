// Package page defines the fixed-size disk page slot the buffer pool
// manages: a stable byte buffer plus the metadata (page id, pin count,
// dirty bit) and the reader-writer latch that page guards scope.
package page

import (
	"sync"

	"github.com/avdosev/pagekv/pkg/assert"
)

// PageSize is the fixed payload size of every page, matching the donor's
// frame payload constant.
const PageSize = 4096

// InvalidPageID is the sentinel meaning "no page".
const InvalidPageID int64 = -1

// Page is a frame's resident slot. Its address is stable for the
// lifetime of the buffer pool that owns it — frames are allocated once
// and never moved, so a *Page handed out by a guard stays valid for as
// long as the guard holds its pin.
type Page struct {
	latch sync.RWMutex

	data     [PageSize]byte
	pageID   int64
	pinCount uint64
	dirty    bool
}

// New returns a page slot with no resident page.
func New() *Page {
	return &Page{pageID: InvalidPageID}
}

func (p *Page) GetData() []byte {
	return p.data[:]
}

func (p *Page) SetData(d []byte) {
	copy(p.data[:], d)
}

func (p *Page) GetPageID() int64 {
	return p.pageID
}

// SetPageID is exposed only for the owning buffer pool manager, which
// is the sole writer of frame identity.
func (p *Page) SetPageID(id int64) {
	p.pageID = id
}

func (p *Page) GetPinCount() uint64 {
	return p.pinCount
}

// Pin increments the pin count. Owning buffer pool manager only.
func (p *Page) Pin() {
	p.pinCount++
}

// Unpin decrements the pin count and reports whether it reached zero.
// Owning buffer pool manager only; it asserts rather than saturating if
// the count is already zero, since that means the caller mismanaged pins.
func (p *Page) Unpin() bool {
	assert.Assert(p.pinCount > 0, "unpin of a page with pin count 0")
	p.pinCount--
	return p.pinCount == 0
}

// SetPinCount is used when recycling a frame for a fresh page. Owning
// buffer pool manager only.
func (p *Page) SetPinCount(n uint64) {
	p.pinCount = n
}

func (p *Page) IsDirty() bool {
	return p.dirty
}

// MarkDirty ORs dirty into the page's dirty flag — it never clears it.
// Clearing only happens on a successful flush.
func (p *Page) MarkDirty(dirty bool) {
	p.dirty = p.dirty || dirty
}

// ClearDirty clears the dirty flag after a flush. Owning manager only.
func (p *Page) ClearDirty() {
	p.dirty = false
}

// ResetMemory zeroes the buffer. It does not touch pin count or dirty —
// callers reset those explicitly as part of recycling a frame.
func (p *Page) ResetMemory() {
	clear(p.data[:])
}

func (p *Page) RLatch()   { p.latch.RLock() }
func (p *Page) RUnlatch() { p.latch.RUnlock() }
func (p *Page) WLatch()   { p.latch.Lock() }
func (p *Page) WUnlatch() { p.latch.Unlock() }
