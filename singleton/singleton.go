package singleton

// Checkable enables checking that instances are valid at construction time.
//
// A payload implementing Checkable and wrapped with NewChecked has its
// InstanceOK probe invoked by the call that constructed it, before the
// instance is published. An invalid instance is never committed.
type Checkable interface {
	// InstanceOK reports whether this instance was constructed and
	// initialized successfully.
	InstanceOK() bool
}

// Reporter enables result reporting when instances are constructed.
//
// R could be a numeric code, an enum-like constant or any other value that
// describes why initialization failed. InstanceResult is invoked exactly
// once, and only after InstanceOK reported false.
type Reporter[R any] interface {
	Checkable
	// InstanceResult returns the result value for a failed initialization.
	InstanceResult() R
}

type WrapperConfiguration struct {
	Keepalive bool
}

type WrapperOption func(*WrapperConfiguration)

// WithKeepalive makes the wrapper hold its own handle to every committed
// instance, extending the instance's life until process exit regardless of
// the number of handles held outside the wrapper. Leaving keepalive off
// (the default) allows more direct control over the wrapped lifecycle and
// makes unit testing easier.
var WithKeepalive WrapperOption = func(conf *WrapperConfiguration) { conf.Keepalive = true }

func newState[T any](constructorFn any, opts []WrapperOption) (*state[T], error) {
	conf := WrapperConfiguration{}
	for _, opt := range opts {
		opt(&conf)
	}

	ctor, err := newConstructor[T](constructorFn)
	if err != nil {
		return nil, err
	}

	return &state[T]{ctor: ctor, keepalive: conf.Keepalive}, nil
}
