// Package assert provides panic-on-violation helpers for invariants that
// are never supposed to fail in correct code. They are not for validating
// user or caller input — those paths return (zero, false)/error instead.
package assert

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Assert panics with a message naming the call site when cond is false.
// args, if present, are treated as a Printf-style format string and its
// arguments.
func Assert(cond bool, args ...any) {
	if cond {
		return
	}

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "unknown", 0
	}
	filename := filepath.Base(file)

	if len(args) > 0 {
		format, ok := args[0].(string)
		Assert(ok, "Assert: first vararg must be a format string")
		msg := fmt.Sprintf(format, args[1:]...)
		panic(fmt.Sprintf("assertion failed: %s at %s:%d", msg, filename, line))
	}
	panic(fmt.Sprintf("assertion failed at %s:%d", filename, line))
}

// NoError panics if err is non-nil. Used at boundaries the spec documents
// as "disk errors are handled by the disk collaborator (it either succeeds
// or aborts)": by the time control returns to the buffer pool, a non-nil
// error here is a collaborator contract violation, not a recoverable case.
func NoError(err error) {
	Assert(err == nil, "expected no error, got: %v", err)
}

// Cast type-asserts data to T, panicking with caller info on mismatch.
// Reserved for call sites where the mismatch is a programmer error; the
// trie's Get, where a type mismatch is a legitimate miss, uses its own
// non-panicking check instead.
func Cast[T any](data any) T {
	v, ok := data.(T)
	Assert(ok, "couldn't cast %T to requested type", data)
	return v
}
