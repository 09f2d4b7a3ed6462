// Package transport is a demo collaborator for the singleton package: a
// small facade whose shared engine is managed as a singleton. Every open
// Transport forwards to the one live engine; closing the last Transport
// tears the engine down and the next New builds a fresh one.
package transport

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gregmedd/debruce-api-demo-fork/singleton"
)

// UUID is the identifier type produced by transport callables.
type UUID = string

// engine is the shared implementation behind every open Transport. It
// reports construction validity through the singleton Reporter protocol:
// a name of "fail" leaves it invalid with a failure description instead of
// raising a hard error.
type engine struct {
	data     string
	failDesc string
	counter  uint64
	mu       sync.Mutex
}

func newEngine(name string) (*engine, singleton.Cleanup, error) {
	e := &engine{}
	if name == "fail" {
		e.failDesc = "got fail for name"

		return e, nil, nil
	}

	e.data = name
	slog.Debug("transport engine open", "name", name)

	return e, func() { slog.Debug("transport engine closed", "name", name) }, nil
}

func (e *engine) InstanceOK() bool {
	return e.failDesc == ""
}

func (e *engine) InstanceResult() string {
	return e.failDesc
}

func (e *engine) process(arg string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := fmt.Sprintf("%s+%s+%d", e.data, arg, e.counter)
	e.counter++

	return out
}

func (e *engine) processWithCallable(fn func(uint64) UUID) {
	slog.Info("transport engine got value from callable", "uuid", fn(345))
}

var engineSingleton = singleton.MustNewReported[*engine, string](newEngine)

// Transport is a handle over the shared engine. Transports are created with
// New or Clone and must be closed; the engine lives for exactly as long as
// at least one Transport holds it.
type Transport struct {
	handle  *singleton.Handle[*engine]
	openErr string
}

// New opens a Transport, constructing the shared engine from name if none
// is live. A name of "fail" returns an unopened Transport whose OpenError
// describes the failure; only hard constructor failures surface as errors.
func New(name string) (*Transport, error) {
	handle, err := engineSingleton.Instance(name)
	if err != nil {
		if desc, resultErr := singleton.ResultValue[string](err); resultErr == nil {
			return &Transport{openErr: desc}, nil
		}

		return nil, err
	}

	return &Transport{handle: handle}, nil
}

// IsOpen reports whether this Transport holds a live engine.
func (t *Transport) IsOpen() bool {
	return t.handle != nil && t.openErr == ""
}

// OpenError returns the failure description for an unopened Transport, or
// the empty string.
func (t *Transport) OpenError() string {
	return t.openErr
}

// Process forwards arg to the engine and returns "<data>+<arg>+<counter>".
// The counter is shared by every Transport holding the engine. Process on
// an unopened Transport returns the empty string.
func (t *Transport) Process(arg string) string {
	if !t.IsOpen() {
		return ""
	}

	return t.handle.Value().process(arg)
}

// ProcessWithCallable invokes fn with a fixed probe value and logs the UUID
// it returns.
func (t *Transport) ProcessWithCallable(fn func(uint64) UUID) {
	if t.IsOpen() {
		t.handle.Value().processWithCallable(fn)
	}
}

// UseCount returns the number of references currently held on the engine.
func (t *Transport) UseCount() int64 {
	if t.handle == nil {
		return 0
	}

	return t.handle.UseCount()
}

// Same reports whether both Transports share the same engine instance.
func (t *Transport) Same(other *Transport) bool {
	return t.handle != nil && other != nil && t.handle.Same(other.handle)
}

// Clone returns another open Transport sharing this one's engine. Clone
// must not be called on an unopened or closed Transport.
func (t *Transport) Clone() *Transport {
	return &Transport{handle: t.handle.Clone()}
}

// Close releases this Transport's hold on the engine. Closing the last
// Transport tears the engine down. Close is idempotent.
func (t *Transport) Close() {
	if t.handle != nil {
		t.handle.Release()
	}
}
