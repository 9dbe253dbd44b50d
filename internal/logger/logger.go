// Package logger provides verbose logging for the Shelf CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow the upload and sync pipeline.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects verbose logs away from os.Stderr, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// emit writes one prefixed line when verbose mode is on. All levels
// funnel through here so the gate and the writer are read under one lock.
func emit(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, prefix+" "+format+"\n", args...)
}

// Debug logs pipeline detail: page fetches, state transitions, cache writes.
func Debug(format string, args ...any) {
	emit("[DEBUG]", format, args...)
}

// Info logs notable but expected events.
func Info(format string, args ...any) {
	emit("[INFO]", format, args...)
}

// Warn logs degraded-mode events, like serving the module list from cache.
func Warn(format string, args ...any) {
	emit("[WARN]", format, args...)
}
