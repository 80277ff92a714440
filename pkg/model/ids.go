package model

import "strings"

// ScopeSeparator separates segments of a qualified ID.
const ScopeSeparator = "::"

// RemapID rewrites a fragment-local ID into its absolute form under
// targetScope. An empty original maps to the scope itself.
func RemapID(original, targetScope string) string {
	if original == "" {
		return targetScope
	}

	return targetScope + ScopeSeparator + original
}

// IDStartsWith reports whether id lies strictly inside the scope named by
// prefix. The prefix must be a proper scope ancestor, not merely a string
// prefix: "Pkg::AB" does not start with "Pkg::A".
func IDStartsWith(id, prefix string) bool {
	if len(id) <= len(prefix)+len(ScopeSeparator) {
		return false
	}

	return strings.HasPrefix(id, prefix) && id[len(prefix):len(prefix)+len(ScopeSeparator)] == ScopeSeparator
}

// LocalName returns the segment after the last "::", or the whole ID when
// it has no separator.
func LocalName(id string) string {
	if idx := strings.LastIndex(id, ScopeSeparator); idx >= 0 {
		return id[idx+len(ScopeSeparator):]
	}

	return id
}

// ParentPath returns the qualified ID of the enclosing scope, or "" for a
// top-level ID.
func ParentPath(id string) string {
	if idx := strings.LastIndex(id, ScopeSeparator); idx >= 0 {
		return id[:idx]
	}

	return ""
}
