package trie

import (
	"sync"

	"github.com/avdosev/pagekv/pkg/optional"
)

// TrieStore is the concurrent front-end over Trie: readers snapshot the
// current root under rootLock and then work against their own copy
// lock-free, while writeLock serializes the read-modify-publish cycle
// across concurrent writers. Readers never wait on writeLock, and
// writers only ever hold rootLock for the O(1) swap at each end of
// their critical section.
type TrieStore struct {
	rootLock  sync.Mutex
	writeLock sync.Mutex
	root      Trie
}

// NewTrieStore returns a TrieStore wrapping an empty Trie.
func NewTrieStore() *TrieStore {
	return &TrieStore{}
}

func (s *TrieStore) snapshot() Trie {
	s.rootLock.Lock()
	defer s.rootLock.Unlock()
	return s.root
}

func (s *TrieStore) publish(t Trie) {
	s.rootLock.Lock()
	s.root = t
	s.rootLock.Unlock()
}

// ValueGuard keeps a Trie snapshot alive for as long as a caller holds a
// reference to a value inside it. Because trie nodes are never mutated
// once published, and Go's garbage collector keeps anything a live
// pointer chain reaches from being reclaimed, owning the snapshot Trie
// value is all a guard needs to do — there's no separate pinning step.
type ValueGuard[T any] struct {
	snapshot Trie
	value    T
}

// Value returns the guarded value.
func (g ValueGuard[T]) Value() T {
	return g.value
}

// StoreGet snapshots the current root, looks key up in it, and — on a
// hit — returns a ValueGuard pairing the value with the snapshot that
// keeps it alive, wrapped in optional.Some; a miss returns
// optional.None. Named distinctly from Get: Go has no function
// overloading, and Get[T any](Trie, string) already occupies this
// package's Get name.
func StoreGet[T any](s *TrieStore, key string) optional.Optional[ValueGuard[T]] {
	snap := s.snapshot()
	v, ok := Get[T](snap, key)
	if !ok {
		return optional.None[ValueGuard[T]]()
	}
	return optional.Some(ValueGuard[T]{snapshot: snap, value: v})
}

// StorePut installs key=value as the new published root.
func StorePut[T any](s *TrieStore, key string, value T) {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	curr := s.snapshot()
	next := Put[T](curr, key, value)
	s.publish(next)
}

// Remove strips key from the published root.
func (s *TrieStore) Remove(key string) {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	curr := s.snapshot()
	next := curr.Remove(key)
	s.publish(next)
}
