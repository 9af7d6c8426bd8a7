//go:build !linux

package system

import "context"

// WatchKeys is only implemented on Linux.
func WatchKeys(ctx context.Context, logger Logger, onKey func(code uint16)) {
	if logger != nil {
		logger.Infof("input", "evdev keyboard not supported on this platform")
	}
}
