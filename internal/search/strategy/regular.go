package strategy

import (
	"catalogd/internal/catalog"
	"catalogd/internal/search/index"
)

// RegularSearch is the direct-lookup strategy: an exact HashIndex match
// on the full query, falling back to a StartWithIndex prefix match when
// the exact lookup is empty (spec §4.8.3). Exact hits are returned ahead
// of prefix hits per the within-strategy tie-break of §4.8.
func RegularSearch(query string, idx *index.Set, _ *catalog.Catalog) []catalog.Definition {
	if exact := idx.Hash.Lookup(query); len(exact) > 0 {
		return exact
	}

	matches := idx.StartWith.LookupPrefix(query)
	out := make([]catalog.Definition, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Definitions...)
	}
	return out
}
