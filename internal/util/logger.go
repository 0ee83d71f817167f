// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	// DebugEnv enables debug logging when set to any non-empty value.
	DebugEnv = "BTSWITCH_DEBUG"
	// LogLevelEnv selects the log level by name (debug, info, warn, error).
	LogLevelEnv = "BTSWITCH_LOG_LEVEL"
)

// InitLogger configures the global logger for CLI use.
// Diagnostics go to stderr so stdout carries only user-facing output.
// Only warnings and errors are shown unless debug is true, DebugEnv is set,
// or LogLevelEnv names another level.
func InitLogger(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})

	if debug || os.Getenv(DebugEnv) != "" {
		log.SetLevel(log.DebugLevel)
		return
	}
	if name := os.Getenv(LogLevelEnv); name != "" {
		SetLogLevel(name)
		return
	}
	log.SetLevel(log.WarnLevel)
}

// SetLogLevel sets the global level by name and returns the level applied.
// Unknown names fall back to info.
func SetLogLevel(name string) log.Level {
	level := ParseLogLevel(name)
	log.SetLevel(level)
	return level
}

// ParseLogLevel maps a level name to a logrus level, case-insensitively.
func ParseLogLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "verbose":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
