// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI colour codes used in prompts and status lines.
const (
	ColorGreen  = "32"
	ColorYellow = "33"
)

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors are small integers
}

// supportsColor checks if w is a terminal that understands ANSI colour codes
func supportsColor(w io.Writer) bool {
	if !IsTerminal(w) {
		return false
	}

	termEnv := os.Getenv("TERM")
	if termEnv == "" || termEnv == "dumb" {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	return true
}

// Colorize wraps s in the given ANSI colour code when w supports colour.
func Colorize(w io.Writer, colorCode string, s string) string {
	if colorCode == "" || !supportsColor(w) {
		return s
	}
	return fmt.Sprintf("\033[%sm%s\033[0m", colorCode, s)
}
