package singleton

import (
	"sync"
	"sync/atomic"
)

// entry is one constructed payload instance together with its reference
// count. refs counts every live Handle plus, when keepalive is enabled, the
// wrapper's own pin. Once refs drops to zero the entry is dead and can
// never be revived.
type entry[T any] struct {
	value    T
	cleanup  Cleanup
	typeName string
	refs     atomic.Int64
}

func newEntry[T any](value T, cleanup Cleanup, typeName string) *entry[T] {
	e := &entry[T]{value: value, cleanup: cleanup, typeName: typeName}
	e.refs.Store(1)

	return e
}

// acquire takes one more strong reference. It fails for a dead entry.
func (e *entry[T]) acquire() bool {
	for {
		n := e.refs.Load()
		if n == 0 {
			return false
		}

		if e.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release drops one strong reference and tears the instance down with the
// last one.
func (e *entry[T]) release() {
	if e.refs.Add(-1) == 0 && e.cleanup != nil {
		e.cleanup.CallWithRecovery(e.typeName)
	}
}

// state is the per-wrapper mutable block: the cache slot holding the most
// recently committed instance, the construction lock serializing the slow
// path and the optional keepalive pin. All writes to live and keep happen
// while mu is held; live is read lock-free.
type state[T any] struct {
	ctor      *constructor[T]
	live      atomic.Pointer[entry[T]]
	keep      *Handle[T]
	keepalive bool
	mu        sync.Mutex
}

// instance is the shared implementation behind every wrapper flavor's
// Instance method. probe runs the payload's validity protocol after
// construction and returns the rejection to surface; it is nil for
// unchecked wrappers.
func (s *state[T]) instance(args []any, probe func(T) error) (*Handle[T], error) {
	// Fast path: lock-free upgrade of the cached instance.
	if e := s.live.Load(); e != nil && e.acquire() {
		return &Handle[T]{entry: e}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Avoid race conditions by checking again for a live instance after
	// the mutex is taken.
	if e := s.live.Load(); e != nil && e.acquire() {
		return &Handle[T]{entry: e}, nil
	}

	// This call is the sole constructing call for this attempt. A
	// constructor failure surfaces here only and is never cached; later
	// callers construct from scratch.
	value, cleanup, err := s.ctor.call(args)
	if err != nil {
		return nil, err
	}

	e := newEntry(value, cleanup, s.ctor.typeName)

	if probe != nil {
		if err := probe(value); err != nil {
			// No commit: the cache keeps pointing at whatever was there
			// before and the rejected instance is torn down as its only
			// reference drops.
			e.release()
			return nil, err
		}
	}

	if s.keepalive {
		e.refs.Add(1)
		s.keep = &Handle[T]{entry: e}
	}

	s.live.Store(e)

	return &Handle[T]{entry: e}, nil
}

// reset drops the cache slot and the keepalive pin. Outstanding handles
// stay valid; their instance is torn down once the last of them is
// released. Exposed to tests only, see export_test.go.
func (s *state[T]) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.keep != nil {
		s.keep.Release()
		s.keep = nil
	}

	s.live.Store(nil)
}
