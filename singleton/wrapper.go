package singleton

import (
	"errors"
	"reflect"
)

// Wrapper gives a payload type exactly-one-live-instance semantics with no
// construction checking: every construction attempt commits.
type Wrapper[T any] struct {
	s *state[T]
}

// New returns a Wrapper around constructor. The constructor must be of type
// func(T1, ...) [T|(T, error)|(T, Cleanup, error)].
func New[T any](constructor any, opts ...WrapperOption) (*Wrapper[T], error) {
	s, err := newState[T](constructor, opts)
	if err != nil {
		return nil, err
	}

	return &Wrapper[T]{s: s}, nil
}

// MustNew is New that panics on a bad constructor. Useful for package-level
// wrapper variables.
func MustNew[T any](constructor any, opts ...WrapperOption) *Wrapper[T] {
	w, err := New[T](constructor, opts...)
	if err != nil {
		panic(err)
	}

	return w
}

// Instance returns a handle to the live instance, constructing one from
// args if none exists. args are forwarded to the constructor positionally
// and are ignored by calls that share an already-live instance.
func (w *Wrapper[T]) Instance(args ...any) (*Handle[T], error) {
	return w.s.instance(args, nil)
}

// Checked is a Wrapper for payloads that report construction validity. The
// constructing call probes the new instance; an invalid one is discarded
// without being published and Instance returns ErrInstanceRejected.
type Checked[T Checkable] struct {
	s *state[T]
}

func NewChecked[T Checkable](constructor any, opts ...WrapperOption) (*Checked[T], error) {
	s, err := newState[T](constructor, opts)
	if err != nil {
		return nil, err
	}

	return &Checked[T]{s: s}, nil
}

func MustNewChecked[T Checkable](constructor any, opts ...WrapperOption) *Checked[T] {
	w, err := NewChecked[T](constructor, opts...)
	if err != nil {
		panic(err)
	}

	return w
}

func (w *Checked[T]) Instance(args ...any) (*Handle[T], error) {
	return w.s.instance(args, func(value T) error {
		if value.InstanceOK() {
			return nil
		}

		return ErrInstanceRejected
	})
}

// Reported is a Checked wrapper for payloads that also supply a failure
// value. On rejection Instance returns a *RejectedError carrying the value
// the payload provided; recover it with ResultValue[R].
type Reported[T Reporter[R], R any] struct {
	s *state[T]
}

func NewReported[T Reporter[R], R any](constructor any, opts ...WrapperOption) (*Reported[T, R], error) {
	s, err := newState[T](constructor, opts)
	if err != nil {
		return nil, err
	}

	return &Reported[T, R]{s: s}, nil
}

func MustNewReported[T Reporter[R], R any](constructor any, opts ...WrapperOption) *Reported[T, R] {
	w, err := NewReported[T, R](constructor, opts...)
	if err != nil {
		panic(err)
	}

	return w
}

func (w *Reported[T, R]) Instance(args ...any) (*Handle[T], error) {
	return w.s.instance(args, func(value T) error {
		if value.InstanceOK() {
			return nil
		}

		return newRejectedError(w.s.ctor.typeName, value.InstanceResult())
	})
}

// ResultValue recovers the typed result value carried by a rejection
// returned from Reported.Instance. It returns ErrNoResultValue when err
// carries no result value and a *ResultTypeError when the value is not of
// type R. A mismatch never degrades to a zero value silently.
func ResultValue[R any](err error) (R, error) {
	var zero R

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		return zero, ErrNoResultValue
	}

	value, ok := rejected.Value.(R)
	if !ok {
		return zero, &ResultTypeError{
			Want: reflect.TypeOf((*R)(nil)).Elem(),
			Got:  reflect.TypeOf(rejected.Value),
		}
	}

	return value, nil
}

// MustResultValue is ResultValue that panics on extraction failure.
func MustResultValue[R any](err error) R {
	value, extractErr := ResultValue[R](err)
	if extractErr != nil {
		panic(extractErr)
	}

	return value
}
