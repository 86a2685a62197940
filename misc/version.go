// Package misc keeps build time information.
package misc

import (
	"runtime/debug"
)

// Set by the linker: -X cssel/misc.version=... -X cssel/misc.gitHash=...
var (
	version = "dev"
	gitHash = ""
)

const appName = "cssel"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash from linker flags or, when absent, from VCS
// information embedded by the go tool.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
