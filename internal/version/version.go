// Package version records the minicc build version.
//
// Release builds stamp Version through the linker:
//
//	go build -ldflags "-X github.com/hassan/minicc/internal/version.Version=1.0.0"
package version

import "github.com/blang/semver"

// Version is the raw version string baked into the binary.
var Version = "0.1.0-dev"

// Semver returns Version as a parsed semantic version. ParseTolerant
// forgives the loose forms that show up in dev builds, like a leading
// v or a missing patch number.
func Semver() (semver.Version, error) {
	return semver.ParseTolerant(Version)
}
