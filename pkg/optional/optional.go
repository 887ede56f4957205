// Package optional provides a small Option type used in place of naked
// pointer-or-nil and (value, bool) pairs wherever the "no value" case is
// part of the normal control flow rather than a Go multi-return idiom.
package optional

import "github.com/avdosev/pagekv/pkg/assert"

type tag int

const (
	none tag = iota
	some
)

type Optional[T any] struct {
	tag   tag
	value T
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{tag: some, value: value}
}

func None[T any]() Optional[T] {
	return Optional[T]{tag: none}
}

func (o Optional[T]) IsSome() bool {
	return o.tag == some
}

func (o Optional[T]) IsNone() bool {
	return o.tag == none
}

// Unwrap panics if the Optional is empty. Use only where emptiness would
// be a programmer error, never to dodge an IsSome check on a fallible path.
func (o Optional[T]) Unwrap() T {
	assert.Assert(o.tag == some, "Unwrap called on an empty Optional")
	return o.value
}

// Get returns (value, true) if present, or (zero, false) otherwise — the
// non-panicking counterpart to Unwrap, for call sites that want the
// idiomatic Go two-return shape.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.tag == some
}
