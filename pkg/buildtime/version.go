// Package buildtime holds values fixed when the console is built.
//
// VERSION and revision are overwritten by the release build.
package buildtime

import (
	_ "embed"
	"strings"
)

var (
	//go:embed VERSION
	version string

	//go:embed revision
	revision string
)

// Product is the name scorch-console tells to upstreams.
const Product = "scorch-console"

// Version is the release version, like "v0.1.0".
func Version() string {
	return strings.TrimSpace(version)
}

// Revision is the git commit the binary is built from.
func Revision() string {
	return strings.TrimSpace(revision)
}

// VersionString formats version and revision for humans.
func VersionString() string {
	return Version() + " (commit: " + Revision() + ")"
}

// UserAgent is the value of User-Agent header for requests to the Scorch API.
func UserAgent() string {
	return Product + "/" + Version()
}
