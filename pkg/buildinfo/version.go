// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/keyplate/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/keyplate/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/keyplate/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information served at /v1/version.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the linked-in build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String formats i as "v0.3.0 (abc1234, built 2026-01-02T03:04:05Z)".
func (i Info) String() string {
	return fmt.Sprintf("%s (%s, built %s)", i.Version, i.Commit, i.Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
