// Package pattern implements the scope-pattern grammar used to select model
// elements by qualified ID: exact IDs, direct children ("Pkg::*") and
// recursive subtrees ("Pkg::**").
package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/modelfang/pkg/model"
)

// MatchKind selects the matching behavior of a parsed pattern.
type MatchKind int

// Pattern kinds.
const (
	// Exact matches only the literal ID.
	Exact MatchKind = iota
	// Direct matches immediate children of the prefix scope, not the
	// scope itself.
	Direct
	// Recursive matches the prefix scope itself plus every descendant.
	Recursive
)

// Wildcard suffixes of the pattern grammar.
const (
	directSuffix    = "::*"
	recursiveSuffix = "::**"
)

// Sentinel errors for pattern parsing.
var (
	ErrEmptyPattern     = errors.New("pattern is empty")
	ErrEmbeddedWildcard = errors.New("wildcard is only allowed as a trailing segment")
	ErrBareWildcard     = errors.New("wildcard needs a scope prefix")
)

// Pattern is a parsed scope pattern. The zero value matches nothing.
type Pattern struct {
	Prefix string
	Kind   MatchKind
}

// Parse parses a pattern string. Malformed syntax is rejected here, at plan
// construction time, before any model is touched.
func Parse(text string) (Pattern, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Pattern{}, ErrEmptyPattern
	}

	kind := Exact

	switch {
	case strings.HasSuffix(text, recursiveSuffix):
		kind = Recursive
		text = strings.TrimSuffix(text, recursiveSuffix)
	case strings.HasSuffix(text, directSuffix):
		kind = Direct
		text = strings.TrimSuffix(text, directSuffix)
	}

	if text == "" {
		return Pattern{}, fmt.Errorf("%w: %q", ErrBareWildcard, text)
	}

	if strings.Contains(text, "*") {
		return Pattern{}, fmt.Errorf("%w: %q", ErrEmbeddedWildcard, text)
	}

	return Pattern{Prefix: text, Kind: kind}, nil
}

// Matches reports whether the pattern selects the given qualified ID.
func (p Pattern) Matches(id string) bool {
	switch p.Kind {
	case Exact:
		return p.Prefix != "" && id == p.Prefix
	case Direct:
		return model.IDStartsWith(id, p.Prefix) && model.ParentPath(id) == p.Prefix
	case Recursive:
		return id == p.Prefix || model.IDStartsWith(id, p.Prefix)
	default:
		return false
	}
}

// MatchesAny reports whether any pattern in the list selects the ID.
func MatchesAny(patterns []Pattern, id string) bool {
	for _, p := range patterns {
		if p.Matches(id) {
			return true
		}
	}

	return false
}

// String renders the pattern back to its source form.
func (p Pattern) String() string {
	switch p.Kind {
	case Direct:
		return p.Prefix + directSuffix
	case Recursive:
		return p.Prefix + recursiveSuffix
	default:
		return p.Prefix
	}
}
