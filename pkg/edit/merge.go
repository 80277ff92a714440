package edit

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/modelfang/pkg/model"
)

// ErrScopeNotFound is returned when the merge target scope does not exist
// and scope creation was not requested. Callers can recover by retrying
// with CreateScope, or by consulting scopes.FindSimilar for a suggestion.
var ErrScopeNotFound = errors.New("target scope not found")

// MergeOptions control how a fragment is folded into the base model.
type MergeOptions struct {
	// CreateScope materializes the target scope chain when it is missing.
	CreateScope bool

	// ReplaceScope wipes every existing direct child of the target scope
	// (cascading to descendants) so the fragment fully dictates the
	// scope's order and contents. The data-loss guard for this flag lives
	// in the scopes package; the engine only performs the wipe.
	ReplaceScope bool
}

// MergeStats reports what a merge did.
type MergeStats struct {
	Added    int
	Replaced int
}

// MergeFragment folds fragment into a copy of base at the given target
// scope, with upsert semantics: fragment elements whose remapped ID already
// exists replace the existing element in place (preserving serialization
// order); the rest are appended as new. Neither base nor fragment is
// mutated; failure returns a nil model and leaves the caller's models valid.
func MergeFragment(base, fragment *model.Model, targetScope string, opts MergeOptions) (*model.Model, MergeStats, error) {
	in := model.NewInterner()
	targetScope = in.Intern(targetScope)

	working := base

	if !base.Has(targetScope) {
		if !opts.CreateScope {
			return nil, MergeStats{}, fmt.Errorf("%w: %q", ErrScopeNotFound, targetScope)
		}

		working, _ = EnsureScope(base, targetScope, in)
	}

	uw := unwrapFragment(fragment, targetScope)
	frag := uw.model

	// Classification: fragment elements whose remapped ID already exists
	// are replacements, everything else is new.
	replaceBy := make(map[string]*model.Element)

	for _, el := range frag.Elements {
		remapped := in.Intern(model.RemapID(el.ID, targetScope))
		if working.Has(remapped) {
			replaceBy[remapped] = el
		}
	}

	removed := buildRemovalSet(working, frag, replaceBy, targetScope, opts)

	result := model.New(base.Name)
	stats := MergeStats{}

	// Reinsertion pass: surviving base elements keep their array position;
	// a replacement is substituted in place so default serialization order
	// is preserved.
	for _, el := range working.Elements {
		if fragEl, ok := replaceBy[el.ID]; ok {
			result.AddElement(mergeReplacement(el, fragEl, targetScope, in))
			stats.Replaced++

			continue
		}

		if removed[el.ID] {
			continue
		}

		if el.ID == targetScope {
			el = mergeScopeElement(el, uw)
		}

		result.AddElement(el)
	}

	// Fragment elements that replaced nothing are appended as new.
	for _, el := range frag.Elements {
		remapped := in.Intern(model.RemapID(el.ID, targetScope))
		if _, isReplacement := replaceBy[remapped]; isReplacement {
			continue
		}

		added := el.Clone()
		added.ID = remapped
		added.ParentID = in.Intern(model.RemapID(el.ParentID, targetScope))
		added.Offset = nextSiblingOffset(result, added.ParentID)

		result.AddElement(added)
		stats.Added++
	}

	copySurvivingRelationships(result, working, removed, replaceBy)
	copyFragmentRelationships(result, frag, targetScope, in)
	copySurvivingImports(result, working, removed, replaceBy)
	copyFragmentImports(result, frag, targetScope, in)

	return result, stats, nil
}

// buildRemovalSet computes the base elements to drop before reinsertion:
//
//  1. Every element at a replacement ID (children are NOT automatically
//     removed, see rule 3).
//  2. With ReplaceScope, every descendant of the target scope.
//  3. A replaced element's existing child is removed, cascading to the
//     child's own descendants, only when the fragment also defines a child
//     with the same local name under the corresponding fragment parent.
//     Children the fragment did not intend to touch survive.
//
// Elements at replacement IDs are resurrected by in-place substitution, so
// landing in this set never loses an explicitly replaced element.
func buildRemovalSet(
	working, frag *model.Model,
	replaceBy map[string]*model.Element,
	targetScope string,
	opts MergeOptions,
) map[string]bool {
	removed := make(map[string]bool, len(replaceBy))

	for id := range replaceBy {
		removed[id] = true
	}

	if opts.ReplaceScope {
		for _, el := range working.Elements {
			if model.IDStartsWith(el.ID, targetScope) {
				removed[el.ID] = true
			}
		}
	}

	// Rule 3: explicit same-name children of replaced elements, with their
	// descendants.
	fragChildren := fragmentChildNames(frag)

	for remappedID, fragEl := range replaceBy {
		names := fragChildren[fragEl.ID]
		if len(names) == 0 {
			continue
		}

		for _, child := range working.DirectChildren(remappedID) {
			if !names[model.LocalName(child.ID)] {
				continue
			}

			removed[child.ID] = true

			for _, el := range working.Elements {
				if model.IDStartsWith(el.ID, child.ID) {
					removed[el.ID] = true
				}
			}
		}
	}

	return removed
}

// fragmentChildNames indexes, per fragment parent ID, the local names of its
// direct children.
func fragmentChildNames(frag *model.Model) map[string]map[string]bool {
	index := make(map[string]map[string]bool)

	for _, el := range frag.Elements {
		names := index[el.ParentID]
		if names == nil {
			names = make(map[string]bool)
			index[el.ParentID] = names
		}

		names[model.LocalName(el.ID)] = true
	}

	return index
}

// mergeReplacement produces the element that stands in for a replaced base
// element: a deep copy of the fragment's version which inherits the
// original's serialization offset, inherits documentation and metadata the
// fragment did not supply, and union-merges body statements.
func mergeReplacement(original, fragEl *model.Element, targetScope string, in *model.Interner) *model.Element {
	merged := fragEl.Clone()
	merged.ID = in.Intern(model.RemapID(fragEl.ID, targetScope))
	merged.ParentID = in.Intern(model.RemapID(fragEl.ParentID, targetScope))

	// Output order follows the original, not the fragment.
	merged.Offset = original.Offset

	// Non-destructive partial replacement: fragment versions that carry no
	// annotations keep the original's.
	if merged.Doc == "" {
		merged.Doc = original.Doc
	}

	if len(merged.Metadata) == 0 {
		merged.Metadata = model.CloneMetadata(original.Metadata)
	}

	if len(merged.PrefixMetadata) == 0 {
		merged.PrefixMetadata = model.CloneMetadata(original.PrefixMetadata)
	}

	merged.Body = mergeBodies(merged.Body, original.Body)

	return merged
}

// mergeBodies unions body statements: fragment shorthand features win by
// extracted name, and original shorthands the fragment does not name are
// appended after the fragment's statements. Original non-shorthand
// statements are dictated by the fragment.
func mergeBodies(fragBody, origBody []*model.Statement) []*model.Statement {
	if len(origBody) == 0 {
		return fragBody
	}

	fragNames := make(map[string]bool, len(fragBody))

	for _, stmt := range fragBody {
		if name := stmt.ShorthandName(); name != "" {
			fragNames[name] = true
		}
	}

	merged := fragBody

	for _, stmt := range origBody {
		name := stmt.ShorthandName()
		if name == "" || fragNames[name] {
			continue
		}

		merged = append(merged, stmt.Clone())
	}

	return merged
}

// mergeScopeElement applies fragment scope-level annotations to the target
// scope element. When the fragment carries scope metadata, the scope's own
// metadata and trivia are cleared first so repeated upserts of the same
// fragment cannot accumulate; when it does not, adding children must not
// erase existing scope-level annotations.
func mergeScopeElement(scope *model.Element, uw unwrappedFragment) *model.Element {
	if !uw.hasScopeMetadata() && uw.wrapperDoc == "" {
		return scope
	}

	merged := scope.Clone()

	if uw.hasScopeMetadata() {
		merged.Metadata = model.CloneMetadata(uw.wrapperMeta)
		merged.PrefixMetadata = model.CloneMetadata(uw.wrapperPrefix)
		merged.LeadingNotes = nil
		merged.TrailingNotes = nil
	}

	if uw.wrapperDoc != "" && merged.Doc == "" {
		merged.Doc = uw.wrapperDoc
	}

	return merged
}

// nextSiblingOffset picks the serialization offset for a newly added
// element: after the highest existing sibling offset, or zero when siblings
// rely on pure insertion order.
func nextSiblingOffset(result *model.Model, parentID string) int {
	maxOffset := 0

	for _, el := range result.Elements {
		if el.ParentID == parentID && el.Offset > maxOffset {
			maxOffset = el.Offset
		}
	}

	if maxOffset == 0 {
		return 0
	}

	return maxOffset + 1
}

func copySurvivingRelationships(result, working *model.Model, removed map[string]bool, replaceBy map[string]*model.Element) {
	for _, rel := range working.Relationships {
		if endpointDropped(rel.Source, removed, replaceBy) || endpointDropped(rel.Target, removed, replaceBy) {
			continue
		}

		result.AddRelationship(rel)
	}
}

// endpointDropped reports whether an ID was removed without being
// resurrected by an in-place replacement.
func endpointDropped(id string, removed map[string]bool, replaceBy map[string]*model.Element) bool {
	if !removed[id] {
		return false
	}

	_, replaced := replaceBy[id]

	return !replaced
}

// copyFragmentRelationships adds fragment relationships with both endpoints
// remapped into the target scope. Fragment relationships are treated as
// fully fragment-local; an endpoint meant to reference a pre-existing base
// element must already be spelled as an absolute ID by the fragment author.
func copyFragmentRelationships(result, frag *model.Model, targetScope string, in *model.Interner) {
	for _, rel := range frag.Relationships {
		source := in.Intern(model.RemapID(rel.Source, targetScope))
		target := in.Intern(model.RemapID(rel.Target, targetScope))

		// Same dedup rule as imports: re-applying a fragment must not pile
		// up identical relationships (and would collide on remapped IDs).
		if hasRelationship(result, rel.Kind, source, target) {
			continue
		}

		result.AddRelationship(&model.Relationship{
			ID:     in.Intern(model.RemapID(rel.ID, targetScope)),
			Kind:   rel.Kind,
			Source: source,
			Target: target,
		})
	}
}

func hasRelationship(m *model.Model, kind model.RelationshipKind, source, target string) bool {
	for _, rel := range m.Relationships {
		if rel.Kind == kind && rel.Source == source && rel.Target == target {
			return true
		}
	}

	return false
}

func copySurvivingImports(result, working *model.Model, removed map[string]bool, replaceBy map[string]*model.Element) {
	for _, imp := range working.Imports {
		if imp.OwnerScope != "" && endpointDropped(imp.OwnerScope, removed, replaceBy) {
			continue
		}

		result.AddImport(imp)
	}
}

// copyFragmentImports adds fragment imports with the owner scope remapped
// (top-level imports attach to the target scope itself). Duplicates on
// (owner, target, kind) are dropped, which is what makes repeated
// application of an import-bearing fragment idempotent.
func copyFragmentImports(result, frag *model.Model, targetScope string, in *model.Interner) {
	for _, imp := range frag.Imports {
		owner := in.Intern(model.RemapID(imp.OwnerScope, targetScope))

		if result.HasImport(owner, imp.Target, imp.Kind) {
			continue
		}

		result.AddImport(&model.Import{
			ID:         in.Intern(model.RemapID(imp.ID, targetScope)),
			Target:     imp.Target,
			OwnerScope: owner,
			Kind:       imp.Kind,
		})
	}
}
