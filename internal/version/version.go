// Package version exposes build information embedded at compile time.
//
// Version and commit are set via -ldflags:
//
//	go build -ldflags "-X github.com/skillsenselab/taskhive/internal/version.Version=1.2.0"
package version

import "runtime/debug"

// Set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
)

// Info is the build information reported by the health endpoint.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version"`
}

// Get returns the build information, falling back to the binary's embedded
// build metadata when ldflags were not provided.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if info.GitCommit == "" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					info.GitCommit = s.Value
					break
				}
			}
		}
	}
	return info
}
