package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/modelfang/pkg/edit"
	"github.com/Sumatoshi-tech/modelfang/pkg/model"
)

func TestEnsureScopeOnEmptyModel(t *testing.T) {
	t.Parallel()

	base := model.New("base")

	result, created := edit.EnsureScope(base, "A::B::C", nil)

	assert.Equal(t, 3, created)
	require.Equal(t, []string{"A", "A::B", "A::B::C"}, elementIDs(result))

	for _, el := range result.Elements {
		assert.Equal(t, model.KindPackage, el.Kind)
		assert.Equal(t, model.ParentPath(el.ID), el.ParentID)
		assert.Equal(t, model.LocalName(el.ID), el.Name)
	}
}

func TestEnsureScopeCreatesOnlyMissingAncestors(t *testing.T) {
	t.Parallel()

	base := packageTree(t, "A")

	result, created := edit.EnsureScope(base, "A::B::C", nil)

	assert.Equal(t, 2, created)
	assert.Equal(t, []string{"A", "A::B", "A::B::C"}, elementIDs(result))
}

func TestEnsureScopeExistingChainIsShallowClone(t *testing.T) {
	t.Parallel()

	base := packageTree(t, "A", "A::B")

	result, created := edit.EnsureScope(base, "A::B", nil)

	assert.Equal(t, 0, created)
	assert.Equal(t, elementIDs(base), elementIDs(result))
	assert.Same(t, base.Elements[0], result.Elements[0])
	assert.NotSame(t, base, result)
}

func TestEnsureScopeParentsPrecedeChildren(t *testing.T) {
	t.Parallel()

	base := model.New("base")

	result, _ := edit.EnsureScope(base, "X::Y::Z", nil)

	seen := make(map[string]bool)

	for _, el := range result.Elements {
		if el.ParentID != "" {
			assert.True(t, seen[el.ParentID], "parent %s must precede %s", el.ParentID, el.ID)
		}

		seen[el.ID] = true
	}
}
