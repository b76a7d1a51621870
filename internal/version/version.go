// Package version carries build metadata set with -ldflags at release time.
package version

import "fmt"

var (
	// Version is the released version of adniprep.
	Version = "dev"
	// GitSHA is the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("adniprep %s (%s, built %s)", Version, GitSHA, BuildTime)
}
