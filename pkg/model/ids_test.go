package model //nolint:testpackage // Tests exercise internal helpers directly.

import "testing"

func TestRemapID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		original string
		scope    string
		want     string
	}{
		{"empty original maps to scope", "", "Pkg", "Pkg"},
		{"simple", "X", "Pkg", "Pkg::X"},
		{"nested original", "A::B", "Pkg", "Pkg::A::B"},
		{"nested scope", "X", "A::B", "A::B::X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RemapID(tt.original, tt.scope); got != tt.want {
				t.Errorf("RemapID(%q, %q) = %q, want %q", tt.original, tt.scope, got, tt.want)
			}
		})
	}
}

func TestIDStartsWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		id     string
		prefix string
		want   bool
	}{
		{"direct child", "Pkg::A", "Pkg", true},
		{"descendant", "Pkg::A::B", "Pkg", true},
		{"self is not inside", "Pkg", "Pkg", false},
		{"string prefix is not scope prefix", "Pkg::AB", "Pkg::A", false},
		{"unrelated", "Other::X", "Pkg", false},
		{"empty id", "", "Pkg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IDStartsWith(tt.id, tt.prefix); got != tt.want {
				t.Errorf("IDStartsWith(%q, %q) = %v, want %v", tt.id, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestLocalNameAndParentPath(t *testing.T) {
	t.Parallel()

	if got := LocalName("A::B::C"); got != "C" {
		t.Errorf("LocalName = %q, want C", got)
	}

	if got := LocalName("Solo"); got != "Solo" {
		t.Errorf("LocalName = %q, want Solo", got)
	}

	if got := ParentPath("A::B::C"); got != "A::B" {
		t.Errorf("ParentPath = %q, want A::B", got)
	}

	if got := ParentPath("Solo"); got != "" {
		t.Errorf("ParentPath = %q, want empty", got)
	}
}

func TestInterner(t *testing.T) {
	t.Parallel()

	in := NewInterner()

	first := in.Intern("Pkg" + ScopeSeparator + "X")
	second := in.Intern("Pkg::X")

	if first != second {
		t.Errorf("interned strings differ: %q vs %q", first, second)
	}

	if in.Len() != 1 {
		t.Errorf("Len = %d, want 1", in.Len())
	}
}
