package catalog

import (
	"sort"
	"sync"

	"catalogd/internal/search/tokenize"
)

// Catalog is the in-memory, read-after-publish store of Definitions
// described by spec §4.5. It is built in two passes (Add* during
// ingestion, then ResolveOwners once) and is safe for concurrent reads
// once Freeze has been called; Freeze itself is the only place that takes
// the write lock after construction.
type Catalog struct {
	mu sync.RWMutex

	byKey   map[string][]Definition
	types   map[string]*PlatformTypeDefinition
	methods map[string][]*MethodDefinition   // owner key -> methods
	props   map[string][]*PropertyDefinition // owner key -> properties
	ctors   map[string][]*ConstructorSignature

	all    []Definition
	frozen bool
}

// New returns an empty, unfrozen Catalog ready for ingestion to populate.
func New() *Catalog {
	return &Catalog{
		byKey:   make(map[string][]Definition),
		types:   make(map[string]*PlatformTypeDefinition),
		methods: make(map[string][]*MethodDefinition),
		props:   make(map[string][]*PropertyDefinition),
		ctors:   make(map[string][]*ConstructorSignature),
	}
}

// AddType registers a PlatformTypeDefinition shell. Its Methods,
// Properties and Constructors slices may be empty at this point; members
// parsed from their own pages are attached later by AddMethod/AddProperty/
// AddConstructor plus ResolveOwners.
func (c *Catalog) AddType(t *PlatformTypeDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[tokenize.Fold(t.NameRU())] = t
	c.types[tokenize.Fold(t.NameEN())] = t
	c.index(t)
}

// AddMethod registers a method, keyed by its OwnerTypeName for later
// resolution against the owning PlatformTypeDefinition. A method with no
// signature gets one parameterless signature named after the method.
func (c *Catalog) AddMethod(m *MethodDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(m.Signatures) == 0 {
		m.Signatures = []Signature{{Name: m.NameRU()}}
	}
	key := tokenize.Fold(m.OwnerTypeName())
	c.methods[key] = append(c.methods[key], m)
	c.index(m)
}

// AddProperty registers a property, keyed by its OwnerTypeName.
func (c *Catalog) AddProperty(p *PropertyDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tokenize.Fold(p.OwnerTypeName())
	c.props[key] = append(c.props[key], p)
	c.index(p)
}

// AddConstructor registers a constructor signature, keyed by its owner.
func (c *Catalog) AddConstructor(ctor *ConstructorSignature) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tokenize.Fold(ctor.OwnerTypeName())
	c.ctors[key] = append(c.ctors[key], ctor)
	c.index(ctor)
}

// index records d under both of its language names in byKey and appends
// it to the flat all-definitions slice. Callers must hold c.mu.
func (c *Catalog) index(d Definition) {
	c.byKey[tokenize.Fold(d.NameRU())] = append(c.byKey[tokenize.Fold(d.NameRU())], d)
	if tokenize.Fold(d.NameEN()) != tokenize.Fold(d.NameRU()) {
		c.byKey[tokenize.Fold(d.NameEN())] = append(c.byKey[tokenize.Fold(d.NameEN())], d)
	}
	c.all = append(c.all, d)
}

// OwnerWarning describes a dangling owner_type_name reference: a warning
// per spec §3, not a fatal ingestion error.
type OwnerWarning struct {
	MemberName string
	OwnerType  string
}

// ResolveOwners is the second construction pass: it attaches every
// previously registered method, property and constructor to its owning
// PlatformTypeDefinition. Members whose owner cannot be found are
// reported as warnings but are not dropped from the catalog's flat index.
func (c *Catalog) ResolveOwners() []OwnerWarning {
	c.mu.Lock()
	defer c.mu.Unlock()

	var warnings []OwnerWarning

	for ownerKey, methods := range c.methods {
		t, ok := c.types[ownerKey]
		if !ok {
			for _, m := range methods {
				warnings = append(warnings, OwnerWarning{MemberName: m.NameEN(), OwnerType: m.OwnerTypeName()})
			}
			continue
		}
		t.Methods = append(t.Methods, methods...)
	}

	for ownerKey, props := range c.props {
		t, ok := c.types[ownerKey]
		if !ok {
			for _, p := range props {
				warnings = append(warnings, OwnerWarning{MemberName: p.NameEN(), OwnerType: p.OwnerTypeName()})
			}
			continue
		}
		t.Properties = append(t.Properties, props...)
	}

	for ownerKey, ctors := range c.ctors {
		t, ok := c.types[ownerKey]
		if !ok {
			for _, ct := range ctors {
				warnings = append(warnings, OwnerWarning{MemberName: ct.NameEN(), OwnerType: ct.OwnerTypeName()})
			}
			continue
		}
		t.Constructors = append(t.Constructors, ctors...)
	}

	sort.Slice(warnings, func(i, j int) bool {
		if warnings[i].OwnerType != warnings[j].OwnerType {
			return warnings[i].OwnerType < warnings[j].OwnerType
		}
		return warnings[i].MemberName < warnings[j].MemberName
	})
	return warnings
}

// Freeze marks the catalog as fully constructed. After Freeze returns,
// every read-only operation may be called without synchronization by the
// holder of the published *Catalog pointer — the bootstrap package is
// responsible for publishing that pointer under its own mutex.
func (c *Catalog) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// ByKey returns every definition registered under the case-folded key
// (a name may be shared across different entity kinds, e.g. a property
// and a method on different types, or same-named types and methods).
func (c *Catalog) ByKey(key string) []Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Definition(nil), c.byKey[tokenize.Fold(key)]...)
}

// TypeByKey resolves a case-folded type name (Russian or English) to its
// PlatformTypeDefinition.
func (c *Catalog) TypeByKey(key string) (*PlatformTypeDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.types[tokenize.Fold(key)]
	return t, ok
}

// MembersOf returns the methods and properties of the type named by
// typeKey, methods first, each group in source order.
func (c *Catalog) MembersOf(typeKey string) []Definition {
	t, ok := c.TypeByKey(typeKey)
	if !ok {
		return nil
	}
	out := make([]Definition, 0, len(t.Methods)+len(t.Properties))
	for _, m := range t.Methods {
		out = append(out, m)
	}
	for _, p := range t.Properties {
		out = append(out, p)
	}
	return out
}

// ConstructorsOf returns the constructor signatures of the type named by
// typeKey, in source order.
func (c *Catalog) ConstructorsOf(typeKey string) []*ConstructorSignature {
	t, ok := c.TypeByKey(typeKey)
	if !ok {
		return nil
	}
	return append([]*ConstructorSignature(nil), t.Constructors...)
}

// AllDefinitions returns every registered definition, used by the indexer
// at bootstrap time (§4.7).
func (c *Catalog) AllDefinitions() []Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Definition(nil), c.all...)
}

// CountsByKind returns the number of definitions of each kind, used for
// the ingestion summary log line.
func (c *Catalog) CountsByKind() map[DefinitionKind]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[DefinitionKind]int, 4)
	for _, d := range c.all {
		out[d.Kind()]++
	}
	return out
}
