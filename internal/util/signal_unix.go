//go:build !windows

package util

import (
	"os"
	"syscall"
)

// ShutdownSignals returns the signals that interrupt a running batch.
func ShutdownSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}
