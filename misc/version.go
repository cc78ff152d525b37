// Package misc carries program identity used in logs, file names and
// version output.
package misc

import "runtime/debug"

// Overridden at build time with -ldflags "-X wpc/misc.appVersion=...".
var (
	appName    = "wpc"
	appVersion = "0.0.0-dev"
)

// GetAppName returns short program name used in logs and file names.
func GetAppName() string {
	return appName
}

// GetVersion returns program version set at build time.
func GetVersion() string {
	return appVersion
}

// GetGitHash returns the VCS revision recorded in build info.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}
