package model

// Kind classifies an element. The set mirrors the KerML/SysML v2 surface the
// parser produces: container namespaces, definitions, and usages.
type Kind string

// Element kind constants.
const (
	KindPackage   Kind = "Package"
	KindNamespace Kind = "Namespace"
	KindLibrary   Kind = "LibraryPackage"

	KindPartDef        Kind = "PartDef"
	KindItemDef        Kind = "ItemDef"
	KindAttributeDef   Kind = "AttributeDef"
	KindPortDef        Kind = "PortDef"
	KindConnectionDef  Kind = "ConnectionDef"
	KindInterfaceDef   Kind = "InterfaceDef"
	KindActionDef      Kind = "ActionDef"
	KindStateDef       Kind = "StateDef"
	KindConstraintDef  Kind = "ConstraintDef"
	KindRequirementDef Kind = "RequirementDef"
	KindEnumDef        Kind = "EnumDef"
	KindMetadataDef    Kind = "MetadataDef"

	KindPartUsage        Kind = "PartUsage"
	KindItemUsage        Kind = "ItemUsage"
	KindAttributeUsage   Kind = "AttributeUsage"
	KindPortUsage        Kind = "PortUsage"
	KindConnectionUsage  Kind = "ConnectionUsage"
	KindInterfaceUsage   Kind = "InterfaceUsage"
	KindActionUsage      Kind = "ActionUsage"
	KindStateUsage       Kind = "StateUsage"
	KindConstraintUsage  Kind = "ConstraintUsage"
	KindRequirementUsage Kind = "RequirementUsage"
	KindEnumUsage        Kind = "EnumUsage"
	KindReferenceUsage   Kind = "ReferenceUsage"
)

// RelationshipKind classifies a relationship between two elements.
type RelationshipKind string

// Relationship kind constants.
const (
	RelSpecialization RelationshipKind = "Specialization"
	RelRedefinition   RelationshipKind = "Redefinition"
	RelSubsetting     RelationshipKind = "Subsetting"
	RelTyping         RelationshipKind = "FeatureTyping"
	RelMembership     RelationshipKind = "Membership"
)

// ImportKind classifies an import statement.
type ImportKind string

// Import kind constants.
const (
	ImportPlain     ImportKind = "plain"
	ImportAll       ImportKind = "all"
	ImportRecursive ImportKind = "recursive"
)

// StatementKind classifies a body statement.
type StatementKind string

// Statement kind constants.
const (
	StatementShorthandFeature StatementKind = "ShorthandFeature"
	StatementConnector        StatementKind = "Connector"
	StatementMember           StatementKind = "Member"
)

// IsDefinition reports whether the kind is a definition element.
func (k Kind) IsDefinition() bool {
	switch k {
	case KindPartDef, KindItemDef, KindAttributeDef, KindPortDef,
		KindConnectionDef, KindInterfaceDef, KindActionDef, KindStateDef,
		KindConstraintDef, KindRequirementDef, KindEnumDef, KindMetadataDef:
		return true
	default:
		return false
	}
}

// IsUsage reports whether the kind is a usage element.
func (k Kind) IsUsage() bool {
	switch k {
	case KindPartUsage, KindItemUsage, KindAttributeUsage, KindPortUsage,
		KindConnectionUsage, KindInterfaceUsage, KindActionUsage,
		KindStateUsage, KindConstraintUsage, KindRequirementUsage,
		KindEnumUsage, KindReferenceUsage:
		return true
	default:
		return false
	}
}

// IsContainer reports whether elements of this kind are namespaces that can
// own child elements and imports, which is what makes them addressable as
// scopes. Definitions and usages may still have structural children, but
// only containers are listed and targeted as scopes.
func (k Kind) IsContainer() bool {
	switch k {
	case KindPackage, KindNamespace, KindLibrary:
		return true
	default:
		return false
	}
}
