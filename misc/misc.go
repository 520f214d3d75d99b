// Package misc holds build identity helpers shared by logging and the CLI.
package misc

import "runtime/debug"

const appName = "cssg"

func GetAppName() string {
	return appName
}

// GetVersion returns the module version recorded in the build info, or
// "(devel)" for local builds.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns the VCS revision recorded in the build info.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
