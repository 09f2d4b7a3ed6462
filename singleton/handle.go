package singleton

import "sync/atomic"

// Handle is a strong, shared-ownership reference to the live instance. Many
// handles may coexist; the instance is torn down when the last one is
// released.
type Handle[T any] struct {
	entry    *entry[T]
	released atomic.Bool
}

// Value returns the wrapped instance. The value must not be used after the
// handle has been released.
func (h *Handle[T]) Value() T {
	return h.entry.value
}

// Release drops this handle's reference. The last release across all
// handles tears the instance down; the next Instance call on the wrapper
// constructs a fresh one. Release is idempotent.
func (h *Handle[T]) Release() {
	if h.released.CompareAndSwap(false, true) {
		h.entry.release()
	}
}

// Clone returns an additional strong handle to the same instance. Clone
// must not be called on a released handle.
func (h *Handle[T]) Clone() *Handle[T] {
	if h.released.Load() {
		panic("singleton: Clone called on a released Handle")
	}

	// Safe without CAS: this handle keeps the entry alive.
	h.entry.refs.Add(1)

	return &Handle[T]{entry: h.entry}
}

// Same reports whether both handles refer to the same underlying instance.
func (h *Handle[T]) Same(other *Handle[T]) bool {
	return other != nil && h.entry == other.entry
}

// UseCount returns the number of strong references currently held,
// including the wrapper's own pin when keepalive is enabled.
func (h *Handle[T]) UseCount() int64 {
	return h.entry.refs.Load()
}
