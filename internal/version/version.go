// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package version holds the btswitch release stamp shown by --version.
// Values are injected at build time via -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Example: go build -ldflags "-X github.com/aplane-algo/btswitch/internal/version.Version=0.2.0" ./cmd/btswitch
var (
	// Version is the release tag, "dev" for local builds
	Version = "dev"

	// GitCommit is the short hash of the commit the binary was built from
	GitCommit = "unknown"

	// BuildTime is when the binary was built, in RFC3339
	BuildTime = "unknown"
)

// String returns the version line printed after "btswitch " by --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s/%s)",
		Version, GitCommit, BuildTime, runtime.GOOS, runtime.GOARCH)
}
