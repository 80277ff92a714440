package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/modelfang/pkg/pattern"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		wantPrefix string
		wantKind   pattern.MatchKind
	}{
		{"exact", "Pkg::X", "Pkg::X", pattern.Exact},
		{"direct", "Pkg::*", "Pkg", pattern.Direct},
		{"recursive", "Pkg::**", "Pkg", pattern.Recursive},
		{"nested recursive", "A::B::**", "A::B", pattern.Recursive},
		{"whitespace trimmed", "  Pkg  ", "Pkg", pattern.Exact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := pattern.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrefix, parsed.Prefix)
			assert.Equal(t, tt.wantKind, parsed.Kind)
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", pattern.ErrEmptyPattern},
		{"blank", "   ", pattern.ErrEmptyPattern},
		{"bare star", "::*", pattern.ErrBareWildcard},
		{"embedded wildcard", "Pkg::*::X", pattern.ErrEmbeddedWildcard},
		{"glob in segment", "Pkg::A*", pattern.ErrEmbeddedWildcard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := pattern.Parse(tt.text)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		id      string
		want    bool
	}{
		{"exact hit", "Pkg::X", "Pkg::X", true},
		{"exact miss on child", "Pkg::X", "Pkg::X::Y", false},
		{"direct hit", "Pkg::*", "Pkg::A", true},
		{"direct misses scope itself", "Pkg::*", "Pkg", false},
		{"direct misses grandchild", "Pkg::*", "Pkg::A::B", false},
		{"recursive hits scope itself", "Pkg::**", "Pkg", true},
		{"recursive hits child", "Pkg::**", "Pkg::A", true},
		{"recursive hits grandchild", "Pkg::**", "Pkg::A::B", true},
		{"recursive string-prefix miss", "Pkg::A::**", "Pkg::AB", false},
		{"exact string-prefix miss", "Pkg::A", "Pkg::AB", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := pattern.Parse(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.Matches(tt.id), "pattern %q vs id %q", tt.pattern, tt.id)
		})
	}
}

func TestMatchesAny(t *testing.T) {
	t.Parallel()

	p1, err := pattern.Parse("Pkg::A")
	require.NoError(t, err)

	p2, err := pattern.Parse("Other::**")
	require.NoError(t, err)

	patterns := []pattern.Pattern{p1, p2}

	assert.True(t, pattern.MatchesAny(patterns, "Pkg::A"))
	assert.True(t, pattern.MatchesAny(patterns, "Other::Deep::Leaf"))
	assert.False(t, pattern.MatchesAny(patterns, "Pkg::B"))
	assert.False(t, pattern.MatchesAny(nil, "Pkg::A"))
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"Pkg::X", "Pkg::*", "Pkg::**"} {
		parsed, err := pattern.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, text, parsed.String())
	}
}

func TestCompilerCaches(t *testing.T) {
	t.Parallel()

	compiler, err := pattern.NewCompiler()
	require.NoError(t, err)

	first, err := compiler.Compile("Pkg::**")
	require.NoError(t, err)

	second, err := compiler.Compile("Pkg::**")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	hits, misses := compiler.CacheStats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	_, err = compiler.Compile("::*")
	require.Error(t, err)
}
