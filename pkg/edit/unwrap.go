package edit

import (
	"strings"

	"github.com/Sumatoshi-tech/modelfang/pkg/model"
)

// unwrappedFragment is the result of the wrapper auto-unwrap heuristic: the
// fragment to merge (possibly rewritten) plus any scope-level annotations
// captured from a stripped wrapper package, to be transplanted onto the real
// target-scope element.
type unwrappedFragment struct {
	model         *model.Model
	wrapperDoc    string
	wrapperMeta   []*model.MetadataUsage
	wrapperPrefix []*model.MetadataUsage
	unwrapped     bool
}

// hasScopeMetadata reports whether the fragment carried scope-level
// annotations that should replace the target scope's own.
func (uw unwrappedFragment) hasScopeMetadata() bool {
	return len(uw.wrapperMeta) > 0 || len(uw.wrapperPrefix) > 0
}

// unwrapFragment tolerates fragments that redundantly wrap their payload in
// a package named after the target scope, a common authoring mistake in
// generated fragments: merging "package Foo { item def X; }" at scope Foo
// must yield Foo::X, not Foo::Foo::X.
//
// The heuristic fires only when the fragment has exactly one top-level
// element and it is a Package whose local name equals the target scope's
// local name. It is a pure transform: the caller's fragment is never
// touched, so fragments stay reusable across merges.
func unwrapFragment(frag *model.Model, targetScope string) unwrappedFragment {
	wrapper := soleTopLevelPackage(frag)
	if wrapper == nil || model.LocalName(wrapper.ID) != model.LocalName(targetScope) {
		return unwrappedFragment{model: frag}
	}

	prefix := wrapper.ID + model.ScopeSeparator
	stripped := model.New(frag.Name)

	for _, el := range frag.Elements {
		if el == wrapper {
			continue
		}

		clone := *el
		clone.ID = strings.TrimPrefix(el.ID, prefix)

		switch {
		case el.ParentID == wrapper.ID:
			clone.ParentID = ""
		default:
			clone.ParentID = strings.TrimPrefix(el.ParentID, prefix)
		}

		stripped.AddElement(&clone)
	}

	for _, rel := range frag.Relationships {
		clone := *rel
		clone.ID = strings.TrimPrefix(rel.ID, prefix)
		clone.Source = strings.TrimPrefix(rel.Source, prefix)
		clone.Target = strings.TrimPrefix(rel.Target, prefix)
		stripped.AddRelationship(&clone)
	}

	for _, imp := range frag.Imports {
		clone := *imp

		switch {
		case imp.OwnerScope == wrapper.ID:
			clone.OwnerScope = ""
		default:
			clone.OwnerScope = strings.TrimPrefix(imp.OwnerScope, prefix)
		}

		stripped.AddImport(&clone)
	}

	return unwrappedFragment{
		model:         stripped,
		wrapperDoc:    wrapper.Doc,
		wrapperMeta:   wrapper.Metadata,
		wrapperPrefix: wrapper.PrefixMetadata,
		unwrapped:     true,
	}
}

// soleTopLevelPackage returns the fragment's single top-level element when
// it is a package, nil otherwise.
func soleTopLevelPackage(frag *model.Model) *model.Element {
	var sole *model.Element

	for _, el := range frag.Elements {
		if el.ParentID != "" {
			continue
		}

		if sole != nil {
			return nil
		}

		sole = el
	}

	if sole == nil || sole.Kind != model.KindPackage {
		return nil
	}

	return sole
}
