package singleton

import (
	"log/slog"
	"sync/atomic"
)

var packageLogger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used to report failures that have no error
// return to surface through, such as panics recovered during instance
// cleanup. Defaults to slog.Default().
func SetLogger(l *slog.Logger) {
	if l != nil {
		packageLogger.Store(l)
	}
}

func logger() *slog.Logger {
	if l := packageLogger.Load(); l != nil {
		return l
	}

	return slog.Default()
}
