// Package build holds build-time version information injected via ldflags.
//
//	go build -ldflags "-X github.com/audiencelink/tvpulse/cmd/tvpulse/internal/build.Version=v1.0.0 \
//	  -X github.com/audiencelink/tvpulse/cmd/tvpulse/internal/build.Commit=$(git rev-parse --short HEAD)"
package build

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

// String returns a formatted version string.
func String() string {
	return fmt.Sprintf("tvpulse %s (%s) %s/%s", Version, Commit, runtime.GOOS, runtime.GOARCH)
}
