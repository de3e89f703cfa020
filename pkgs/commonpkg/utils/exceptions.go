package utils

import (
	"fmt"
	"runtime"
)

// RecoverToError converts a recovered panic value into an error and the
// stack of the panicking goroutine. It must be called directly by a deferred
// function.
func RecoverToError(r any) (error, string) {
	if r == nil {
		return nil, ""
	}
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, false)

	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err), string(buf[:n])
	}
	return fmt.Errorf("panic: %v", r), string(buf[:n])
}
