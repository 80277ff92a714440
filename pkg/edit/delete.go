// Package edit implements the content-addressed structural patch engine over
// parsed semantic models: pattern-driven deletion, scope-chain creation,
// fragment auto-unwrapping and the merge/upsert engine. Every operation is a
// pure function from model to model; no input model is ever mutated.
package edit

import (
	"github.com/Sumatoshi-tech/modelfang/pkg/model"
	"github.com/Sumatoshi-tech/modelfang/pkg/pattern"
)

// CloneWithDeletions returns a copy of base with every element matched by
// patterns removed, together with all structural descendants of matched
// elements. Relationships with a removed endpoint and imports owned by a
// removed scope are pruned so the result never carries dangling references.
//
// An element matched by several patterns is counted once. When nothing
// matches, the result is a shallow structural clone and the count is zero;
// the function is total, so callers can compose it without a no-op special
// case.
func CloneWithDeletions(base *model.Model, patterns []pattern.Pattern) (*model.Model, int) {
	marked := make(map[string]bool)

	for _, el := range base.Elements {
		if pattern.MatchesAny(patterns, el.ID) {
			marked[el.ID] = true
		}
	}

	cascadeMarks(base, marked)

	if len(marked) == 0 {
		return base.ShallowClone(), 0
	}

	result := model.New(base.Name)

	for _, el := range base.Elements {
		if !marked[el.ID] {
			result.AddElement(el)
		}
	}

	for _, rel := range base.Relationships {
		if !marked[rel.Source] && !marked[rel.Target] {
			result.AddRelationship(rel)
		}
	}

	for _, imp := range base.Imports {
		if imp.OwnerScope == "" || !marked[imp.OwnerScope] {
			result.AddImport(imp)
		}
	}

	return result, len(marked)
}

// cascadeMarks extends the mark set to every element whose parent is marked,
// iterating until a pass marks nothing. Order-independent; terminates because
// the parent chain is acyclic and the element set is finite.
func cascadeMarks(base *model.Model, marked map[string]bool) {
	for changed := true; changed; {
		changed = false

		for _, el := range base.Elements {
			if marked[el.ID] || el.ParentID == "" {
				continue
			}

			if marked[el.ParentID] {
				marked[el.ID] = true
				changed = true
			}
		}
	}
}
