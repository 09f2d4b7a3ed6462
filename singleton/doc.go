/*
Package singleton gives an arbitrary payload type exactly-one-live-instance
semantics: lazy construction on first need, race-free initialization under
concurrent callers, shared ownership through reference-counted handles, and
automatic teardown once the last handle is released.

How to use:

	type Conn struct {
		addr string
	}

	func newConn(addr string) (*Conn, singleton.Cleanup, error) {
		c := &Conn{addr: addr}
		return c, c.close, nil
	}

	var ConnSingleton = singleton.MustNew[*Conn](newConn)

	func handleRequest() error {
		handle, err := ConnSingleton.Instance("db:5432")
		if err != nil {
			return err
		}
		defer handle.Release()

		// use handle.Value()
	}

Every call to Instance shares the one live instance; the call that finds
none constructs it. After the last Release the instance is torn down and the
next Instance call builds a fresh one, unless the wrapper was created with
WithKeepalive, which pins every committed instance until process exit.

Payload types may opt into construction checking:

  - Checkable payloads report whether they initialized successfully; wrap
    them with NewChecked and an invalid instance is discarded, surfacing
    ErrInstanceRejected instead of a handle.
  - Reporter payloads additionally supply a failure value; wrap them with
    NewReported and recover the typed value from the rejection with
    ResultValue or MustResultValue.

Which protocol applies is fixed by the wrapper type, never decided per call.

Functions:
  - singleton.New / singleton.MustNew
  - singleton.NewChecked / singleton.MustNewChecked
  - singleton.NewReported / singleton.MustNewReported
  - singleton.ResultValue / singleton.MustResultValue
  - singleton.SetLogger

Constructor types that can be used:
  - func(T1, T2, ...) [T|(T, error)|(T, singleton.Cleanup, error)]
*/
package singleton
