// Package catalog models the immutable in-memory collection of API
// definitions (types, methods, properties, constructors) materialized
// from either HBK ingestion or the JSON import path.
package catalog

// DefinitionKind tags the concrete shape of a Definition rather than
// relying on dynamic dispatch; every consumer switches on Kind().
type DefinitionKind string

const (
	KindMethod      DefinitionKind = "METHOD"
	KindProperty    DefinitionKind = "PROPERTY"
	KindType        DefinitionKind = "TYPE"
	KindConstructor DefinitionKind = "CONSTRUCTOR"
)

// Header carries the fields every Definition shares. Both NameRU and
// NameEN are guaranteed non-empty once a Definition is published into a
// Catalog: a source page missing one language is mirrored from the other
// at construction time (§3 of the spec).
//
// The fields are unexported so that Header can satisfy Definition through
// promoted accessor methods without a field/method name collision; every
// concrete definition type embeds Header by value.
type Header struct {
	nameRU        string
	nameEN        string
	description   string
	kind          DefinitionKind
	ownerTypeName string // "" for a top-level TYPE
}

// NewHeader builds a Header, mirroring NameRU/NameEN onto each other when
// one is empty (the §3 "missing-language cell is tolerated" rule).
func NewHeader(nameRU, nameEN, description string, kind DefinitionKind, ownerTypeName string) Header {
	if nameRU == "" {
		nameRU = nameEN
	}
	if nameEN == "" {
		nameEN = nameRU
	}
	return Header{
		nameRU:        nameRU,
		nameEN:        nameEN,
		description:   description,
		kind:          kind,
		ownerTypeName: ownerTypeName,
	}
}

func (h Header) Kind() DefinitionKind  { return h.kind }
func (h Header) NameRU() string        { return h.nameRU }
func (h Header) NameEN() string        { return h.nameEN }
func (h Header) Description() string   { return h.description }
func (h Header) OwnerTypeName() string { return h.ownerTypeName }

// Definition is the tagged-union interface every concrete definition type
// satisfies. Consumers switch on Kind() rather than type-asserting.
type Definition interface {
	Kind() DefinitionKind
	NameRU() string
	NameEN() string
	Description() string
	OwnerTypeName() string
}

// ParameterDefinition describes a single formal parameter of a Signature.
type ParameterDefinition struct {
	Name         string
	TypeName     string
	Description  string
	Optional     bool
	DefaultValue string // "" means no default
}

// Signature is one callable variant of a method, carried in source order
// on MethodDefinition.Signatures.
type Signature struct {
	Name        string
	Description string
	Parameters  []ParameterDefinition
}

// ConstructorSignature carries a Signature's name and parameters, with its
// syntax text in Syntax and its description on the Header, and always
// belongs to exactly one owning type.
type ConstructorSignature struct {
	Header
	Name       string
	Syntax     string
	Parameters []ParameterDefinition
}

// MethodDefinition is a callable member of a PlatformTypeDefinition.
// Signatures is always non-empty once published into a Catalog.
type MethodDefinition struct {
	Header
	Signatures []Signature
	ReturnType string // "" means no declared return type
}

// PropertyDefinition is a data member of a PlatformTypeDefinition. Enum
// values are normalized at ingest to properties on their enum type
// (§9 open question), so PropertyDefinition also represents enum members.
type PropertyDefinition struct {
	Header
	TypeName string
	ReadOnly bool
}

// PlatformTypeDefinition is the top-level TYPE entity. Methods and
// Properties may share a name (the two namespaces are independent); both
// sequences preserve source order.
type PlatformTypeDefinition struct {
	Header
	Methods                []*MethodDefinition
	Properties             []*PropertyDefinition
	Constructors           []*ConstructorSignature
	CollectionElementType  string // "" means the type is not iterable
}
