// Package adapters wraps a *search.Service with the contract types the MCP
// transport layer speaks, mirroring the teacher's read/write-lock-guarded
// Adapter wrapper over *app.App.
package adapters

import (
	"context"
	"fmt"
	"sync"

	"catalogd/internal/catalog"
	"catalogd/internal/catalogerr"
	"catalogd/internal/mcpapi/contracts"
	"catalogd/internal/search"
)

type Adapter struct {
	mu      sync.RWMutex
	service *search.Service
}

func NewAdapter(service *search.Service) *Adapter {
	return &Adapter{service: service}
}

func (a *Adapter) Search(ctx context.Context, in contracts.SearchInput) (contracts.SearchOutput, error) {
	if err := ctx.Err(); err != nil {
		return contracts.SearchOutput{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	opts := search.Options{Limit: in.Limit}
	if in.Kind != "" {
		kind, err := parseKind(in.Kind)
		if err != nil {
			return contracts.SearchOutput{}, err
		}
		opts.KindFilter = kind
		opts.HasKind = true
	}

	results, err := a.service.Search(ctx, in.Query, opts)
	if err != nil {
		return contracts.SearchOutput{}, err
	}

	out := make([]contracts.DefinitionRef, 0, len(results))
	for _, d := range results {
		out = append(out, toDefinitionRef(d))
	}
	return contracts.SearchOutput{Results: out}, nil
}

// SearchHybrid delegates to the same keyword cascade as Search; no
// embedding collaborator is wired into this process, so the "hybrid" mode
// degrades gracefully per spec.md §6's "optional; may delegate" wording.
func (a *Adapter) SearchHybrid(ctx context.Context, in contracts.SearchInput) (contracts.SearchOutput, error) {
	return a.Search(ctx, in)
}

func (a *Adapter) Info(ctx context.Context, in contracts.InfoInput) (contracts.InfoOutput, error) {
	if err := ctx.Err(); err != nil {
		return contracts.InfoOutput{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	kind, err := parseKind(in.Kind)
	if err != nil {
		return contracts.InfoOutput{}, err
	}

	def, err := a.service.Info(ctx, in.Name, kind)
	if err != nil {
		return contracts.InfoOutput{}, err
	}
	return contracts.InfoOutput{Definition: toDefinitionRef(def)}, nil
}

func (a *Adapter) GetMember(ctx context.Context, in contracts.GetMemberInput) (contracts.GetMemberOutput, error) {
	if err := ctx.Err(); err != nil {
		return contracts.GetMemberOutput{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	member, err := a.service.GetMember(ctx, in.TypeName, in.MemberName)
	if err != nil {
		return contracts.GetMemberOutput{}, err
	}
	return contracts.GetMemberOutput{Member: toDefinitionRef(member)}, nil
}

func (a *Adapter) GetMembers(ctx context.Context, in contracts.GetMembersInput) (contracts.GetMembersOutput, error) {
	if err := ctx.Err(); err != nil {
		return contracts.GetMembersOutput{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	members, err := a.service.GetMembers(ctx, in.TypeName)
	if err != nil {
		return contracts.GetMembersOutput{}, err
	}

	out := make([]contracts.DefinitionRef, 0, len(members))
	for _, m := range members {
		out = append(out, toDefinitionRef(m))
	}
	return contracts.GetMembersOutput{Members: out}, nil
}

func (a *Adapter) GetConstructors(ctx context.Context, in contracts.GetConstructorsInput) (contracts.GetConstructorsOutput, error) {
	if err := ctx.Err(); err != nil {
		return contracts.GetConstructorsOutput{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	ctors, err := a.service.GetConstructors(ctx, in.TypeName)
	if err != nil {
		return contracts.GetConstructorsOutput{}, err
	}

	out := make([]contracts.DefinitionRef, 0, len(ctors))
	for _, c := range ctors {
		out = append(out, toDefinitionRef(c))
	}
	return contracts.GetConstructorsOutput{Constructors: out}, nil
}

func parseKind(raw string) (catalog.DefinitionKind, error) {
	switch catalog.DefinitionKind(raw) {
	case catalog.KindType, catalog.KindMethod, catalog.KindProperty, catalog.KindConstructor:
		return catalog.DefinitionKind(raw), nil
	default:
		return "", &catalogerr.DomainError{
			Code:    catalogerr.CodeInvalidQuery,
			Message: fmt.Sprintf("unknown kind %q", raw),
		}
	}
}

// toDefinitionRef flattens any catalog.Definition into the wire shape,
// switching on concrete type for the fields specific to each kind.
func toDefinitionRef(d catalog.Definition) contracts.DefinitionRef {
	ref := contracts.DefinitionRef{
		Kind:          string(d.Kind()),
		NameRU:        d.NameRU(),
		NameEN:        d.NameEN(),
		Description:   d.Description(),
		OwnerTypeName: d.OwnerTypeName(),
	}

	switch v := d.(type) {
	case *catalog.MethodDefinition:
		ref.ReturnType = v.ReturnType
		for _, sig := range v.Signatures {
			for _, p := range sig.Parameters {
				ref.Parameters = append(ref.Parameters, p.Name)
			}
		}
	case *catalog.PropertyDefinition:
		ref.PropertyTypeName = v.TypeName
		ref.ReadOnly = v.ReadOnly
	case *catalog.PlatformTypeDefinition:
		ref.CollectionElementType = v.CollectionElementType
	case *catalog.ConstructorSignature:
		for _, p := range v.Parameters {
			ref.Parameters = append(ref.Parameters, p.Name)
		}
	}
	return ref
}
