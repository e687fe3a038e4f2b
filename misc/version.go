// Package misc provides program identification helpers.
package misc

import "runtime/debug"

const appName = "gssc"

// GetAppName returns the program name used in logs and help output.
func GetAppName() string {
	return appName
}

// GetVersion returns the module version recorded in build info, or "devel"
// for local builds.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "devel"
}

// GetGitHash returns the VCS revision recorded in build info, if any.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}
