package app

import (
	"fmt"
	"runtime/debug"
)

// Release metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/Anusha-2024/Mini-Journal/internal/app.Version=1.0.0" ./cmd/server
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion describes the running binary for startup logs, the health
// endpoint and journal --version. Commit and build time not set by ldflags
// are taken from the VCS stamp the go tool embeds.
func BuildVersion() string {
	info, _ := debug.ReadBuildInfo()
	return formatVersion(Version, Commit, BuildTime, info)
}

func formatVersion(version, commit, built string, info *debug.BuildInfo) string {
	if info != nil {
		var modified bool
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "unknown" && s.Value != "" {
					commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if built == "unknown" && s.Value != "" {
					built = s.Value
				}
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if modified && commit != "unknown" {
			commit += "-dirty"
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
