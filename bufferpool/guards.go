package bufferpool

import "github.com/avdosev/pagekv/storage/page"

// BasicPageGuard scopes a single pin on a fetched page. Go has no move
// semantics, so "moving" a guard is explicit: Take() hands off ownership
// and leaves the receiver empty, the same role std::move plays in the
// donor's C++ guard. A Dropped or zero-value guard is always inert.
type BasicPageGuard struct {
	bpm     *Manager
	page    *page.Page
	isDirty bool
	valid   bool
}

func newBasicPageGuard(bpm *Manager, p *page.Page) BasicPageGuard {
	if p == nil {
		return BasicPageGuard{}
	}
	return BasicPageGuard{bpm: bpm, page: p, valid: true}
}

// Page returns the guarded page, or nil if the guard is empty.
func (g *BasicPageGuard) Page() *page.Page {
	if !g.valid {
		return nil
	}
	return g.page
}

// Valid reports whether the guard holds a pin.
func (g *BasicPageGuard) Valid() bool {
	return g.valid
}

// SetDirty lets a Basic-guard caller flag the page dirty explicitly,
// independent of whatever UnpinPage would otherwise infer.
func (g *BasicPageGuard) SetDirty(dirty bool) {
	g.isDirty = dirty
}

// Drop releases the pin (and, for Read/Write guards, the latch) this
// guard holds. It is safe to call more than once and on an empty guard.
func (g *BasicPageGuard) Drop() {
	if g.valid {
		g.bpm.UnpinPage(g.page.GetPageID(), g.isDirty)
	}
	g.bpm = nil
	g.page = nil
	g.isDirty = false
	g.valid = false
}

// Take transfers ownership of this guard's pin to the returned value,
// leaving the receiver empty — the explicit-ownership-API substitute
// for C++ move assignment.
func (g *BasicPageGuard) Take() BasicPageGuard {
	out := *g
	g.bpm = nil
	g.page = nil
	g.isDirty = false
	g.valid = false
	return out
}

// ReadPageGuard holds the page's read latch for its lifetime in addition
// to the pin BasicPageGuard holds.
type ReadPageGuard struct {
	inner BasicPageGuard
}

func newReadPageGuard(bpm *Manager, p *page.Page) ReadPageGuard {
	if p == nil {
		return ReadPageGuard{}
	}
	return ReadPageGuard{inner: newBasicPageGuard(bpm, p)}
}

func (g *ReadPageGuard) Page() *page.Page {
	return g.inner.Page()
}

func (g *ReadPageGuard) Valid() bool {
	return g.inner.Valid()
}

// Drop releases the read latch, then unpins — always with isDirty=false,
// since a reader never modifies the page.
func (g *ReadPageGuard) Drop() {
	if g.inner.valid {
		g.inner.page.RUnlatch()
	}
	g.inner.Drop()
}

func (g *ReadPageGuard) Take() ReadPageGuard {
	out := ReadPageGuard{inner: g.inner.Take()}
	return out
}

// WritePageGuard holds the page's write latch for its lifetime.
type WritePageGuard struct {
	inner BasicPageGuard
}

func newWritePageGuard(bpm *Manager, p *page.Page) WritePageGuard {
	if p == nil {
		return WritePageGuard{}
	}
	return WritePageGuard{inner: newBasicPageGuard(bpm, p)}
}

func (g *WritePageGuard) Page() *page.Page {
	return g.inner.Page()
}

func (g *WritePageGuard) Valid() bool {
	return g.inner.Valid()
}

// Drop releases the write latch, then unpins with isDirty forced true —
// a write guard assumes its holder modified the page.
func (g *WritePageGuard) Drop() {
	if g.inner.valid {
		g.inner.page.WUnlatch()
		g.inner.isDirty = true
	}
	g.inner.Drop()
}

func (g *WritePageGuard) Take() WritePageGuard {
	out := WritePageGuard{inner: g.inner.Take()}
	return out
}

// FetchPageBasic fetches pageID and wraps it in a BasicPageGuard. The
// guard is empty if the fetch failed.
func (m *Manager) FetchPageBasic(pageID int64) BasicPageGuard {
	p, _ := m.FetchPage(pageID)
	return newBasicPageGuard(m, p)
}

// FetchPageRead fetches pageID, acquires its read latch, and returns a
// ReadPageGuard. The guard is empty if the fetch failed.
func (m *Manager) FetchPageRead(pageID int64) ReadPageGuard {
	p, ok := m.FetchPage(pageID)
	if !ok {
		return ReadPageGuard{}
	}
	p.RLatch()
	return newReadPageGuard(m, p)
}

// FetchPageWrite fetches pageID, acquires its write latch, and returns a
// WritePageGuard. The guard is empty if the fetch failed.
func (m *Manager) FetchPageWrite(pageID int64) WritePageGuard {
	p, ok := m.FetchPage(pageID)
	if !ok {
		return WritePageGuard{}
	}
	p.WLatch()
	return newWritePageGuard(m, p)
}

// NewPageGuarded allocates a fresh page and wraps it in a BasicPageGuard,
// returning InvalidPageID alongside an empty guard on capacity exhaustion.
func (m *Manager) NewPageGuarded() (BasicPageGuard, int64) {
	p, id, ok := m.NewPage()
	if !ok {
		return BasicPageGuard{}, page.InvalidPageID
	}
	return newBasicPageGuard(m, p), id
}
