package bufferpool

import (
	"sync"

	"github.com/avdosev/pagekv/pkg/assert"
)

// FrameID indexes the buffer pool's fixed frame array.
type FrameID int

// Replacer picks an eviction victim among frames the buffer pool has
// marked evictable.
type Replacer interface {
	RecordAccess(id FrameID)
	SetEvictable(id FrameID, evictable bool)
	Remove(id FrameID)
	Evict() (FrameID, bool)
	Size() int
}

type lruKNode struct {
	// history holds at most k timestamps, oldest first.
	history     []uint64
	isEvictable bool
}

// LRUKReplacer selects the victim frame whose backward-k-distance (time
// since the k-th most recent access) is largest, treating frames with
// fewer than k accesses as having infinite backward-k-distance and
// breaking ties among those by classic LRU (oldest single access wins).
type LRUKReplacer struct {
	mu sync.Mutex

	k             int
	replacerSize  int
	currTimestamp uint64
	currSize      int

	nodes map[FrameID]*lruKNode
}

var _ Replacer = (*LRUKReplacer)(nil)

// NewLRUKReplacer builds a replacer over numFrames frame ids, using
// history depth k.
func NewLRUKReplacer(numFrames, k int) *LRUKReplacer {
	assert.Assert(numFrames > 0, "replacer needs at least one frame")
	assert.Assert(k > 0, "k must be positive")

	return &LRUKReplacer{
		k:            k,
		replacerSize: numFrames,
		nodes:        make(map[FrameID]*lruKNode, numFrames),
	}
}

// RecordAccess appends a new access timestamp for id, evicting the
// oldest recorded timestamp once history exceeds k entries. A frame seen
// for the first time starts non-evictable.
func (r *LRUKReplacer) RecordAccess(id FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	assert.Assert(id >= 0 && int(id) < r.replacerSize, "RecordAccess: frame id %d out of range", id)

	node, ok := r.nodes[id]
	if !ok {
		node = &lruKNode{}
		r.nodes[id] = node
	}

	if len(node.history) == r.k {
		node.history = node.history[1:]
	}
	node.history = append(node.history, r.currTimestamp)
	r.currTimestamp++
}

// SetEvictable flips id's evictable flag, keeping currSize in sync.
func (r *LRUKReplacer) SetEvictable(id FrameID, evictable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[id]
	assert.Assert(ok, "SetEvictable: unknown frame id %d", id)

	if node.isEvictable == evictable {
		return
	}
	node.isEvictable = evictable
	if evictable {
		r.currSize++
	} else {
		r.currSize--
	}
}

// Remove drops all replacer state for id. It is a no-op if id is unknown
// or currently pinned (non-evictable) — the caller is expected not to
// try to remove a pinned frame.
func (r *LRUKReplacer) Remove(id FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[id]
	if !ok || !node.isEvictable {
		return
	}

	node.history = nil
	node.isEvictable = false
	r.currSize--
}

// Evict selects and clears the current victim by backward-k-distance.
func (r *LRUKReplacer) Evict() (FrameID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currSize == 0 {
		return 0, false
	}

	// Two passes so the result doesn't depend on map iteration order: a
	// frame with fewer than k accesses (+inf backward-k-distance) always
	// beats every frame with a full history, regardless of which one this
	// loop happens to visit first.
	hasInfinite := false
	for _, node := range r.nodes {
		if node.isEvictable && len(node.history) < r.k {
			hasInfinite = true
			break
		}
	}

	var (
		victim FrameID
		found  bool
		best   uint64
	)

	for id, node := range r.nodes {
		if !node.isEvictable {
			continue
		}

		if hasInfinite {
			if len(node.history) >= r.k {
				continue
			}
			// Among +inf frames, the smallest (oldest) earliest timestamp wins.
			if !found || node.history[0] < best {
				best = node.history[0]
				victim = id
				found = true
			}
			continue
		}

		distance := r.currTimestamp - node.history[0]
		if !found || distance > best {
			best = distance
			victim = id
			found = true
		}
	}

	assert.Assert(found, "Evict: currSize > 0 but no evictable frame found")

	victimNode := r.nodes[victim]
	victimNode.isEvictable = false
	victimNode.history = nil
	r.currSize--

	return victim, true
}

// Size reports the number of frames currently marked evictable.
func (r *LRUKReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.currSize
}
