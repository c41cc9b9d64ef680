// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/matzehuels/wfgraph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/wfgraph/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/wfgraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"

	"github.com/matzehuels/wfgraph/pkg/flow/layout"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information, including the layout
// algorithm version that keys cached layouts.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\nlayout: v%s", Version, Commit, Date, layout.Version)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\nlayout: v%s\n", Version, Commit, Date, layout.Version)
}
