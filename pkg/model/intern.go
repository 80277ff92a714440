package model

// Interner canonicalizes qualified-ID strings so that equal byte sequences
// share one backing allocation. The edit engine routes every ID it produces
// through one Interner per operation; models built from the same interner
// can compare IDs without re-hashing long prefixes. Not safe for concurrent
// use, matching the engine's single-threaded execution model.
type Interner struct {
	seen map[string]string
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{seen: make(map[string]string)}
}

// Intern returns the canonical instance of s, storing it on first sight.
func (in *Interner) Intern(s string) string {
	if canonical, ok := in.seen[s]; ok {
		return canonical
	}

	in.seen[s] = s

	return s
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	return len(in.seen)
}
