// Package scopes answers questions about the scope structure of parsed
// models: which scopes exist, which are close matches for a mistyped
// qualified ID, and whether a scope replacement looks destructive.
package scopes

import (
	"sort"

	"github.com/Sumatoshi-tech/modelfang/pkg/model"
)

// defaultSuggestionLimit bounds FindSimilarScopes output when the caller
// passes a non-positive limit.
const defaultSuggestionLimit = 5

// Exists reports whether id names a scope in m: the element must exist and
// its kind must be able to own nested scopes. A part def with the right ID
// is not a scope for merge-targeting purposes.
func Exists(m *model.Model, id string) bool {
	el, ok := m.Lookup(id)
	if !ok {
		return false
	}

	return el.Kind.IsContainer()
}

// List returns the qualified IDs of every scope in m, sorted.
func List(m *model.Model) []string {
	var ids []string

	for _, el := range m.Elements {
		if el.Kind.IsContainer() {
			ids = append(ids, el.ID)
		}
	}

	sort.Strings(ids)

	return ids
}

// ListAll returns the union of scopes across several models, sorted and
// de-duplicated. Useful when a plan edits a base against a set of library
// models.
func ListAll(models ...*model.Model) []string {
	seen := make(map[string]bool)

	var ids []string

	for _, m := range models {
		for _, el := range m.Elements {
			if el.Kind.IsContainer() && !seen[el.ID] {
				seen[el.ID] = true
				ids = append(ids, el.ID)
			}
		}
	}

	sort.Strings(ids)

	return ids
}

type rankedScope struct {
	id   string
	dist int
}

// FindSimilar ranks the scopes of m by edit distance to query and returns
// the closest ones, nearest first. Scopes further than half the query's
// length (plus one) are considered unrelated and dropped, so a wildly wrong
// query yields no suggestions rather than noise. Ties break alphabetically.
func FindSimilar(m *model.Model, query string, limit int) []string {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	maxDist := len([]rune(query))/2 + 1

	var ctx distContext

	var ranked []rankedScope

	for _, el := range m.Elements {
		if !el.Kind.IsContainer() || el.ID == query {
			continue
		}

		dist := ctx.distance(query, el.ID)
		if dist > maxDist {
			continue
		}

		ranked = append(ranked, rankedScope{id: el.ID, dist: dist})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].dist != ranked[j].dist {
			return ranked[i].dist < ranked[j].dist
		}

		return ranked[i].id < ranked[j].id
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.id
	}

	return ids
}
