// Package trie implements the copy-on-write trie: every mutation returns
// a new immutable root that shares maximal substructure with the one it
// was built from, plus a TrieStore front-end that layers single-writer,
// concurrent-reader semantics on top of it.
package trie

// node is the immutable, persistent trie node. Go has no RTTI, so the
// donor's TrieNode/TrieNodeWithValue<T> split becomes a single tagged
// struct: hasValue distinguishes an interior node from a value-carrying
// one, and value is type-erased behind `any`. Get re-checks the concrete
// type with a plain type assertion rather than anything panic-based —
// a type mismatch here is caller error, not a programmer-error bug, and
// must come back as a clean "not found" rather than a crash.
type node struct {
	children map[byte]*node
	hasValue bool
	value    any
}

func newInterior() *node {
	return &node{children: make(map[byte]*node)}
}

func newValued(value any) *node {
	return &node{children: make(map[byte]*node), hasValue: true, value: value}
}

// clone shallow-copies n: the returned node owns a fresh children map,
// but every entry in it still points at the exact same child nodes as n.
// Nothing reachable from those children is touched, which is what lets
// unrelated subtrees stay shared across trie versions.
func (n *node) clone() *node {
	if n == nil {
		return newInterior()
	}
	children := make(map[byte]*node, len(n.children))
	for b, child := range n.children {
		children[b] = child
	}
	return &node{children: children, hasValue: n.hasValue, value: n.value}
}

// withValue returns a value-carrying node that inherits n's children —
// used when Put lands on a key whose node already exists, value or not.
func (n *node) withValue(value any) *node {
	c := n.clone()
	c.hasValue = true
	c.value = value
	return c
}

// withoutValue returns an interior node carrying only n's children —
// used by Remove to strip a value while a node still has descendants.
func (n *node) withoutValue() *node {
	c := n.clone()
	c.hasValue = false
	c.value = nil
	return c
}

func (n *node) childCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}
