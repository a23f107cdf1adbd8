// Package misc keeps program identity in one place.
package misc

import (
	"runtime/debug"
)

const appName = "mqc"

// set with -ldflags "-X mqc/misc.version=... -X mqc/misc.gitHash=..."
var (
	version = ""
	gitHash = ""
)

func GetAppName() string {
	return appName
}

// GetVersion returns program version, falling back to module build info.
func GetVersion() string {
	if len(version) > 0 {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns commit hash program was built from.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
