//go:build go1.22

package main

import "log/slog"

// setLogLoggerLevel aligns the log-package bridge with the handler level.
func setLogLoggerLevel(level slog.Level) {
	slog.SetLogLoggerLevel(level)
}
