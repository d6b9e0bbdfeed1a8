package version

import (
	"fmt"
	"runtime"
)

// Version information - set at build time via ldflags
var (
	Version = "0.1.0"

	GitCommit = "unknown"

	// BuildTime is the build timestamp
	BuildTime = "unknown"

	GoVersion = runtime.Version()
)

// Info represents complete version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
	}
}

// String returns the multi-line banner printed by --version
func (i Info) String() string {
	return fmt.Sprintf("Nalsi v%s\nCommit: %s\nBuilt: %s\nGo: %s",
		i.Version, i.GitCommit, i.BuildTime, i.GoVersion)
}

// Short returns e.g. "v1.0.0 (abc123d)" for logs and /health
func (i Info) Short() string {
	return fmt.Sprintf("v%s (%s)", i.Version, i.shortCommit())
}

// UserAgent is sent to the weather provider when none is configured
func (i Info) UserAgent() string {
	return fmt.Sprintf("Nalsi/%s (+%s)", i.Version, i.shortCommit())
}

func (i Info) shortCommit() string {
	if len(i.GitCommit) > 7 {
		return i.GitCommit[:7]
	}
	return i.GitCommit
}
