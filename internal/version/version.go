package version

import (
	"fmt"
	"runtime"
)

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/mmv/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/mmv/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/mmv/internal/version.Date={{.Date}}
)

// Info is the build information printed by mmv version
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Go      string `json:"go" yaml:"go"`
}

// Get returns the current build information
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}
}

func (i Info) String() string {
	return fmt.Sprintf("mmv version %s\n  commit: %s\n  built:  %s\n  go:     %s", i.Version, i.Commit, i.Date, i.Go)
}
