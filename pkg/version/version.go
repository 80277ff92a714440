// Package version carries build metadata injected at link time.
package version

// Build metadata, overridden via -ldflags at release time.
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the Git hash of the source the binary was built from.
	Commit = "<unknown>"

	// Date is the build timestamp.
	Date = "<unknown>"
)
