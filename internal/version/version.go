// Package version holds the shiplog build information. It has no
// dependencies so any package can import it safely.
package version

var (
	// Version information, set via ldflags during release builds.
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild reports whether this is a development build rather than a
// release.
func IsDevBuild() bool {
	return Version == "dev"
}
