package singleton

// Cleanup tears down whatever the constructor set up for an instance. It
// runs exactly once, after the last strong handle to the instance is
// released.
type Cleanup func()

// CallWithRecovery shields the wrapper from panicking cleanup functions;
// a recovered panic is reported through the package logger.
func (fn Cleanup) CallWithRecovery(typeName string) {
	defer func() {
		if rp := recover(); rp != nil {
			logger().Error(
				"recovered from panic during instance cleanup",
				"type", typeName,
				"panic", rp,
			)
		}
	}()

	fn()
}
