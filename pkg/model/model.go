// Package model provides the canonical semantic-model structures for parsed
// KerML/SysML v2 sources: elements, relationships, imports and body statements,
// plus the qualified-ID utilities the edit engine is built on.
package model

// Model is a parsed semantic model: a flat, insertion-ordered element list
// plus the relationships and imports that reference those elements by ID.
// Element array order is the default serialization order.
//
// A Model is never mutated after it has been returned from a transformation;
// every edit produces a new Model that may share element pointers with its
// input.
type Model struct {
	Name          string          `json:"name,omitempty"`
	Elements      []*Element      `json:"elements"`
	Relationships []*Relationship `json:"relationships,omitempty"`
	Imports       []*Import       `json:"imports,omitempty"`

	byID map[string]*Element
}

// Element is a single named model element addressed by its qualified ID
// (for example "Vehicle::Engine::cyl"). ParentID is "" for top-level
// elements; otherwise it equals the "::"-prefix of ID and names another
// element in the same model.
type Element struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Kind     Kind   `json:"kind"`
	ParentID string `json:"parent_id,omitempty"`

	TypedBy     []string `json:"typed_by,omitempty"`
	Specializes []string `json:"specializes,omitempty"`
	Redefines   []string `json:"redefines,omitempty"`
	References  []string `json:"references,omitempty"`

	Metadata       []*MetadataUsage `json:"metadata,omitempty"`
	PrefixMetadata []*MetadataUsage `json:"prefix_metadata,omitempty"`

	Doc           string   `json:"doc,omitempty"`
	LeadingNotes  []string `json:"leading_notes,omitempty"`
	TrailingNotes []string `json:"trailing_notes,omitempty"`

	Body        []*Statement   `json:"body,omitempty"`
	Comments    []NamedComment `json:"comments,omitempty"`
	TextualReps []TextualRep   `json:"textual_reps,omitempty"`

	// Offset orders elements during serialization. Elements sharing a
	// parent are emitted by ascending Offset, ties broken by array order.
	Offset int `json:"offset,omitempty"`
}

// Relationship links two elements by ID. Source and Target must name live
// elements; the deletion engine prunes relationships whose endpoints are
// removed.
type Relationship struct {
	ID     string           `json:"id"`
	Kind   RelationshipKind `json:"kind"`
	Source string           `json:"source"`
	Target string           `json:"target"`
}

// Import brings an external name into a scope. Target is an external
// reference and is never remapped. OwnerScope is "" for top-level imports.
type Import struct {
	ID         string     `json:"id"`
	Target     string     `json:"target"`
	OwnerScope string     `json:"owner_scope,omitempty"`
	Kind       ImportKind `json:"kind"`
}

// Statement is a body-level statement inside an element: a shorthand
// feature, a connector, or any other member the parser chose not to lift
// into its own Element. Text holds the raw source, which is how the merge
// engine recovers a statement's semantic name.
type Statement struct {
	Kind   StatementKind `json:"kind"`
	Text   string        `json:"text"`
	Source string        `json:"source,omitempty"`
	Target string        `json:"target,omitempty"`
	Nested []*Statement  `json:"nested,omitempty"`
}

// MetadataUsage is a metadata annotation attached to an element, either in
// its body or as a prefix annotation.
type MetadataUsage struct {
	Type string       `json:"type"`
	Body []*Statement `json:"body,omitempty"`
}

// NamedComment is a comment member with an explicit name.
type NamedComment struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// TextualRep is a textual representation member in a foreign language.
type TextualRep struct {
	Language string `json:"language"`
	Body     string `json:"body"`
}

// New creates an empty model with the given source name.
func New(name string) *Model {
	return &Model{
		Name: name,
		byID: make(map[string]*Element),
	}
}

// AddElement appends an element and indexes it by ID. The caller is
// responsible for ID uniqueness; a duplicate ID silently shadows the earlier
// index entry but both elements stay in the array.
func (m *Model) AddElement(el *Element) {
	m.Elements = append(m.Elements, el)

	if m.byID == nil {
		m.byID = make(map[string]*Element)
	}

	m.byID[el.ID] = el
}

// AddRelationship appends a relationship.
func (m *Model) AddRelationship(rel *Relationship) {
	m.Relationships = append(m.Relationships, rel)
}

// AddImport appends an import.
func (m *Model) AddImport(imp *Import) {
	m.Imports = append(m.Imports, imp)
}

// Lookup returns the element with the given ID, if present.
func (m *Model) Lookup(id string) (*Element, bool) {
	if m.byID == nil {
		m.Reindex()
	}

	el, ok := m.byID[id]

	return el, ok
}

// Has reports whether an element with the given ID exists.
func (m *Model) Has(id string) bool {
	_, ok := m.Lookup(id)

	return ok
}

// Reindex rebuilds the ID index from the element array. Needed after a model
// is decoded from its interchange form, where only the arrays survive.
func (m *Model) Reindex() {
	m.byID = make(map[string]*Element, len(m.Elements))

	for _, el := range m.Elements {
		m.byID[el.ID] = el
	}
}

// DirectChildren returns the elements whose ParentID equals scopeID, in
// array order.
func (m *Model) DirectChildren(scopeID string) []*Element {
	var children []*Element

	for _, el := range m.Elements {
		if el.ParentID == scopeID {
			children = append(children, el)
		}
	}

	return children
}

// HasImport reports whether an import with the same owner, target and kind
// already exists.
func (m *Model) HasImport(ownerScope, target string, kind ImportKind) bool {
	for _, imp := range m.Imports {
		if imp.OwnerScope == ownerScope && imp.Target == target && imp.Kind == kind {
			return true
		}
	}

	return false
}

// ShallowClone returns a new model with fresh containers sharing the same
// element, relationship and import pointers. This is what a no-op
// transformation returns: total, composable, and cheap.
func (m *Model) ShallowClone() *Model {
	clone := &Model{
		Name:          m.Name,
		Elements:      make([]*Element, len(m.Elements)),
		Relationships: make([]*Relationship, len(m.Relationships)),
		Imports:       make([]*Import, len(m.Imports)),
		byID:          make(map[string]*Element, len(m.Elements)),
	}

	copy(clone.Elements, m.Elements)
	copy(clone.Relationships, m.Relationships)
	copy(clone.Imports, m.Imports)

	for _, el := range clone.Elements {
		clone.byID[el.ID] = el
	}

	return clone
}
