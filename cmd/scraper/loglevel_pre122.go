//go:build !go1.22

package main

import "log/slog"

// setLogLoggerLevel is a no-op before go1.22: slog.SetLogLoggerLevel does not
// exist yet, so the log-package bridge stays at its fixed Info level.
func setLogLoggerLevel(_ slog.Level) {}
