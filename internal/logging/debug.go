package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	verbose bool
)

// DebugEnabled returns true if debug mode is enabled via the TL_DEBUG
// environment variable or SetVerbose.
func DebugEnabled() bool {
	mu.Lock()
	v := verbose
	mu.Unlock()
	return v || os.Getenv("TL_DEBUG") != ""
}

// SetVerbose turns debug output on regardless of TL_DEBUG.
func SetVerbose(enabled bool) {
	mu.Lock()
	verbose = enabled
	mu.Unlock()
}

// SetOutput redirects debug output. It returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		mu.Lock()
		fmt.Fprintf(out, format, args...)
		mu.Unlock()
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		mu.Lock()
		fmt.Fprintln(out, args...)
		mu.Unlock()
	}
}
