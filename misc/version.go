// Package misc keeps program identity, values are set by the linker.
package misc

var (
	appName       = "themecss"
	versionString = "dev"
	gitHash       = "unknown"
)

// GetAppName returns program name.
func GetAppName() string {
	return appName
}

// GetVersion returns program version, "dev" for local builds.
func GetVersion() string {
	return versionString
}

// GetGitHash returns git hash program was built from.
func GetGitHash() string {
	return gitHash
}
