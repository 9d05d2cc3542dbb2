// Package search implements the Search Service (spec §4.9): validation,
// strategy invocation, deduplication and truncation on top of the catalog
// built by internal/bootstrap.
package search

import (
	"context"
	"reflect"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"catalogd/internal/catalog"
	"catalogd/internal/catalogerr"
	"catalogd/internal/observability"
	"catalogd/internal/search/index"
	"catalogd/internal/search/strategy"
)

// Options narrows a Search call (spec §4.9's `options` record).
type Options struct {
	KindFilter catalog.DefinitionKind
	HasKind    bool
	Limit      int
	// Language is accepted for forward-compatibility with spec.md §6's
	// "language: auto|ru|en" option but the current strategies already
	// search both language names unconditionally, so it has no effect yet.
	Language string
}

// Service orchestrates the four search strategies against one catalog and
// its derived indexes. A Service is immutable after NewService and safe
// for concurrent use.
type Service struct {
	catalog *catalog.Catalog
	indexes *index.Set

	defaultLimit int
	maxLimit     int
}

// NewService builds a Service over an already-published catalog and its
// index set (internal/bootstrap owns construction and publication).
func NewService(cat *catalog.Catalog, idx *index.Set, defaultLimit, maxLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	if maxLimit <= 0 {
		maxLimit = defaultLimit
	}
	return &Service{catalog: cat, indexes: idx, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// dedupeKey is the composite key spec §9 prescribes over the ambiguous
// "lowercased name" reading: (kind, case-folded name, owner) so a property
// and a method sharing a name on different types never collapse.
type dedupeKey struct {
	kind  catalog.DefinitionKind
	name  string
	owner string
}

func keyOf(d catalog.Definition) dedupeKey {
	return dedupeKey{kind: d.Kind(), name: foldedName(d), owner: strings.ToLower(d.OwnerTypeName())}
}

// foldedName prefers the English name as the canonical dedupe identity but
// falls back to Russian for Russian-only entries; both names are folded
// into the catalog's lookup keys elsewhere, so any one is a safe dedupe
// discriminator as long as it's applied consistently here.
func foldedName(d catalog.Definition) string {
	if d.NameEN() != "" {
		return strings.ToLower(d.NameEN())
	}
	return strings.ToLower(d.NameRU())
}

// Search runs the four-strategy cascade in priority order, concatenates
// their outputs, applies the kind filter, deduplicates by composite key
// and truncates to limit (spec §4.9 Algorithm, steps 1-6).
func (s *Service) Search(ctx context.Context, query string, opts Options) ([]catalog.Definition, error) {
	ctx, span := observability.Tracer.Start(ctx, "search.Service.Search", trace.WithAttributes())
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		observability.SearchRequestsTotal.WithLabelValues("invalid_query").Inc()
		return nil, &catalogerr.DomainError{
			Code:    catalogerr.CodeInvalidQuery,
			Message: "query must not be empty",
			Context: map[string]interface{}{catalogerr.CtxQuery: query},
		}
	}

	limit := opts.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit < 0 {
		observability.SearchRequestsTotal.WithLabelValues("invalid_query").Inc()
		return nil, catalogerr.New(catalogerr.CodeInvalidQuery, "limit must be positive")
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	var winning string
	var combined []catalog.Definition
	for _, strat := range strategy.Ordered {
		matches := strat(trimmed, s.indexes, s.catalog)
		if len(matches) > 0 && winning == "" {
			winning = strategyName(strat)
		}
		observability.StrategyMatchesTotal.WithLabelValues(strategyName(strat)).Add(float64(len(matches)))
		combined = append(combined, matches...)
	}
	if winning == "" {
		winning = "none"
	}

	if opts.HasKind {
		filtered := combined[:0:0]
		for _, d := range combined {
			if d.Kind() == opts.KindFilter {
				filtered = append(filtered, d)
			}
		}
		combined = filtered
	}

	seen := make(map[dedupeKey]bool, len(combined))
	deduped := make([]catalog.Definition, 0, len(combined))
	for _, d := range combined {
		k := keyOf(d)
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, d)
	}

	if len(deduped) > limit {
		deduped = deduped[:limit]
	}

	observability.SearchDuration.WithLabelValues(winning).Observe(time.Since(start).Seconds())
	observability.SearchRequestsTotal.WithLabelValues("ok").Inc()
	return deduped, nil
}

// strategyName identifies a strategy for metrics labeling. Strategies are
// compared by function pointer identity against the fixed Ordered slice
// rather than carrying a name field themselves, keeping the strategy
// package's "tagged function, no shared state" shape intact.
func strategyName(s strategy.Strategy) string {
	switch funcPointer(s) {
	case funcPointer(strategy.CompoundTypeSearch):
		return "compound_type"
	case funcPointer(strategy.TypeMemberSearch):
		return "type_member"
	case funcPointer(strategy.RegularSearch):
		return "regular"
	case funcPointer(strategy.WordOrderSearch):
		return "word_order"
	default:
		return "unknown"
	}
}

func funcPointer(s strategy.Strategy) uintptr {
	return reflect.ValueOf(s).Pointer()
}

// Info resolves a single definition by exact name and kind (spec §4.9).
func (s *Service) Info(ctx context.Context, name string, kind catalog.DefinitionKind) (catalog.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, d := range s.indexes.Hash.Lookup(name) {
		if d.Kind() == kind {
			return d, nil
		}
	}
	return nil, notFound("no definition found", catalogerr.CtxName, name)
}

// GetMember resolves typeName to a PlatformTypeDefinition and returns the
// method or property named memberName within it.
func (s *Service) GetMember(ctx context.Context, typeName, memberName string) (catalog.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.catalog.TypeByKey(typeName); !ok {
		return nil, notFound("type not found", catalogerr.CtxOwnerType, typeName)
	}
	memberKey := strings.ToLower(memberName)
	for _, m := range s.catalog.MembersOf(typeName) {
		if strings.ToLower(m.NameEN()) == memberKey || strings.ToLower(m.NameRU()) == memberKey {
			return m, nil
		}
	}
	return nil, notFound("member not found", catalogerr.CtxName, memberName)
}

// notFound builds a CodeNotFound DomainError carrying one context key, the
// shape every lookup miss in this file returns.
func notFound(message, ctxKey, ctxValue string) error {
	return &catalogerr.DomainError{
		Code:    catalogerr.CodeNotFound,
		Message: message,
		Context: map[string]interface{}{ctxKey: ctxValue},
	}
}

// GetMembers returns every method and property of the resolved type.
func (s *Service) GetMembers(ctx context.Context, typeName string) ([]catalog.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.catalog.TypeByKey(typeName); !ok {
		return nil, notFound("type not found", catalogerr.CtxOwnerType, typeName)
	}
	return s.catalog.MembersOf(typeName), nil
}

// GetConstructors returns the constructor signatures of the resolved type.
func (s *Service) GetConstructors(ctx context.Context, typeName string) ([]*catalog.ConstructorSignature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.catalog.TypeByKey(typeName); !ok {
		return nil, notFound("type not found", catalogerr.CtxOwnerType, typeName)
	}
	return s.catalog.ConstructorsOf(typeName), nil
}
