package edit //nolint:testpackage // The unwrap heuristic is engine-internal.

import (
	"testing"

	"github.com/Sumatoshi-tech/modelfang/pkg/model"
)

func wrappedFragment() *model.Model {
	frag := model.New("fragment")
	frag.AddElement(&model.Element{
		ID:   "Foo",
		Name: "Foo",
		Kind: model.KindPackage,
		Doc:  "wrapper doc",
		Metadata: []*model.MetadataUsage{
			{Type: "Safety"},
		},
	})
	frag.AddElement(&model.Element{ID: "Foo::X", Name: "X", Kind: model.KindItemDef, ParentID: "Foo"})
	frag.AddElement(&model.Element{ID: "Foo::X::Deep", Name: "Deep", Kind: model.KindAttributeUsage, ParentID: "Foo::X"})
	frag.AddImport(&model.Import{ID: "Foo::i1", Target: "ISQ::*", OwnerScope: "Foo", Kind: model.ImportAll})
	frag.AddRelationship(&model.Relationship{ID: "Foo::r1", Kind: model.RelSpecialization, Source: "Foo::X", Target: "Foo::X::Deep"})

	return frag
}

func TestUnwrapStripsMatchingWrapper(t *testing.T) {
	t.Parallel()

	frag := wrappedFragment()

	uw := unwrapFragment(frag, "Area::Foo")

	if !uw.unwrapped {
		t.Fatal("expected wrapper to be stripped")
	}

	if len(uw.model.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(uw.model.Elements))
	}

	if uw.model.Elements[0].ID != "X" || uw.model.Elements[0].ParentID != "" {
		t.Errorf("direct child not lifted to top level: %+v", uw.model.Elements[0])
	}

	if uw.model.Elements[1].ID != "X::Deep" || uw.model.Elements[1].ParentID != "X" {
		t.Errorf("grandchild prefix not stripped: %+v", uw.model.Elements[1])
	}

	if uw.model.Imports[0].OwnerScope != "" {
		t.Errorf("import owner not lifted: %q", uw.model.Imports[0].OwnerScope)
	}

	if uw.model.Relationships[0].Source != "X" || uw.model.Relationships[0].Target != "X::Deep" {
		t.Errorf("relationship endpoints not stripped: %+v", uw.model.Relationships[0])
	}

	if uw.wrapperDoc != "wrapper doc" || len(uw.wrapperMeta) != 1 {
		t.Error("wrapper annotations not captured")
	}
}

func TestUnwrapIsPure(t *testing.T) {
	t.Parallel()

	frag := wrappedFragment()

	_ = unwrapFragment(frag, "Foo")

	if len(frag.Elements) != 3 || frag.Elements[1].ID != "Foo::X" {
		t.Error("caller's fragment was mutated")
	}

	if frag.Imports[0].OwnerScope != "Foo" {
		t.Error("caller's import was mutated")
	}
}

func TestUnwrapDoesNotFireOnNameMismatch(t *testing.T) {
	t.Parallel()

	frag := wrappedFragment()

	uw := unwrapFragment(frag, "Bar")

	if uw.unwrapped {
		t.Error("wrapper name does not match target scope; must not unwrap")
	}

	if uw.model != frag {
		t.Error("non-unwrapped fragment should be passed through as-is")
	}
}

func TestUnwrapDoesNotFireOnMultipleTopLevel(t *testing.T) {
	t.Parallel()

	frag := wrappedFragment()
	frag.AddElement(&model.Element{ID: "Extra", Kind: model.KindItemDef})

	uw := unwrapFragment(frag, "Foo")

	if uw.unwrapped {
		t.Error("two top-level elements; must not unwrap")
	}
}

func TestUnwrapDoesNotFireOnNonPackage(t *testing.T) {
	t.Parallel()

	frag := model.New("fragment")
	frag.AddElement(&model.Element{ID: "Foo", Kind: model.KindPartDef})

	uw := unwrapFragment(frag, "Foo")

	if uw.unwrapped {
		t.Error("top-level element is not a package; must not unwrap")
	}
}
