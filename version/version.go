package version

import (
	"runtime/debug"
	"strings"
	"time"
)

// Set with -ldflags -X. Empty values are filled from the VCS stamp the Go
// toolchain embeds.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty"`
	Release   bool   `json:"release"`
}

// GetVersionInfo merges the ldflags values with debug.ReadBuildInfo.
// Commits are shortened to seven characters.
func GetVersionInfo() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		Release:   Version != "dev" && !strings.Contains(Version, "dirty"),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// BuildDate parses BuildTime. It is zero when BuildTime is unset or not
// RFC 3339.
func (i Info) BuildDate() time.Time {
	t, _ := time.Parse(time.RFC3339, i.BuildTime)
	return t
}

// Short is "version", "version-commit" or "version-commit-dirty".
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
		if i.Dirty {
			s += "-dirty"
		}
	}
	return s
}
