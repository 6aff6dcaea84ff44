// Package version exposes build metadata injected at release time via
// -ldflags; a source build reports itself as "dev".
package version

import (
	"fmt"
	"runtime"
)

// Set with: -ldflags "-X .../version.Version=v1.2.3 -X .../version.CommitHash=abc1234 -X .../version.BuildTime=2026-08-31T00:00:00Z"
var (
	Version    = "dev"
	CommitHash = "dev"
	BuildTime  = "unknown"
)

// Info contains version and build information
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("opticgen %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}
