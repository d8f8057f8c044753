//go:build windows

package util

import "os"

// ShutdownSignals returns the signals that interrupt a running batch.
func ShutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
