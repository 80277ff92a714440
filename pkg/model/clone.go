package model

// Deep-copy subsystem. Every transformation that needs to alter an element
// clones it first; elements already placed in a model are never touched.

// Clone returns a deep copy of the element. All owned sequences (reference
// lists, metadata, notes, body statements, comments, textual reps) are
// copied; nothing is shared with the original.
func (el *Element) Clone() *Element {
	if el == nil {
		return nil
	}

	clone := &Element{
		ID:       el.ID,
		Name:     el.Name,
		Kind:     el.Kind,
		ParentID: el.ParentID,

		TypedBy:     cloneStrings(el.TypedBy),
		Specializes: cloneStrings(el.Specializes),
		Redefines:   cloneStrings(el.Redefines),
		References:  cloneStrings(el.References),

		Metadata:       CloneMetadata(el.Metadata),
		PrefixMetadata: CloneMetadata(el.PrefixMetadata),

		Doc:           el.Doc,
		LeadingNotes:  cloneStrings(el.LeadingNotes),
		TrailingNotes: cloneStrings(el.TrailingNotes),

		Body:   CloneStatements(el.Body),
		Offset: el.Offset,
	}

	if len(el.Comments) > 0 {
		clone.Comments = make([]NamedComment, len(el.Comments))
		copy(clone.Comments, el.Comments)
	}

	if len(el.TextualReps) > 0 {
		clone.TextualReps = make([]TextualRep, len(el.TextualReps))
		copy(clone.TextualReps, el.TextualReps)
	}

	return clone
}

// Clone returns a deep copy of the statement, including its nested chain.
func (s *Statement) Clone() *Statement {
	if s == nil {
		return nil
	}

	return &Statement{
		Kind:   s.Kind,
		Text:   s.Text,
		Source: s.Source,
		Target: s.Target,
		Nested: CloneStatements(s.Nested),
	}
}

// Clone returns a deep copy of the metadata usage.
func (mu *MetadataUsage) Clone() *MetadataUsage {
	if mu == nil {
		return nil
	}

	return &MetadataUsage{
		Type: mu.Type,
		Body: CloneStatements(mu.Body),
	}
}

// CloneStatements deep-copies a statement sequence. Nil in, nil out.
func CloneStatements(stmts []*Statement) []*Statement {
	if stmts == nil {
		return nil
	}

	clones := make([]*Statement, len(stmts))

	for idx, stmt := range stmts {
		clones[idx] = stmt.Clone()
	}

	return clones
}

// CloneMetadata deep-copies a metadata usage sequence. Nil in, nil out.
func CloneMetadata(usages []*MetadataUsage) []*MetadataUsage {
	if usages == nil {
		return nil
	}

	clones := make([]*MetadataUsage, len(usages))

	for idx, usage := range usages {
		clones[idx] = usage.Clone()
	}

	return clones
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}

	clone := make([]string, len(values))
	copy(clone, values)

	return clone
}
