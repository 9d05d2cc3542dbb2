package strategy

import (
	"sort"

	"catalogd/internal/catalog"
	"catalogd/internal/search/index"
	"catalogd/internal/search/tokenize"
)

// WordOrderSearch tokenizes the query and matches any definition whose
// tokenized name contains every query token, in order, as a (possibly
// non-contiguous) subsequence — spec §4.8.4. Results are ordered by
// ascending name-token count, then lexicographically by name.
func WordOrderSearch(query string, _ *index.Set, cat *catalog.Catalog) []catalog.Definition {
	queryTokens := tokenize.Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	type candidate struct {
		def        catalog.Definition
		nameTokens int
		name       string
	}

	var candidates []candidate
	seen := make(map[catalog.Definition]bool)
	for _, d := range cat.AllDefinitions() {
		ruTokens := tokenize.Tokenize(d.NameRU())
		enTokens := tokenize.Tokenize(d.NameEN())

		switch {
		case isOrderedSubsequence(queryTokens, ruTokens):
			if !seen[d] {
				seen[d] = true
				candidates = append(candidates, candidate{def: d, nameTokens: len(ruTokens), name: d.NameRU()})
			}
		case isOrderedSubsequence(queryTokens, enTokens):
			if !seen[d] {
				seen[d] = true
				candidates = append(candidates, candidate{def: d, nameTokens: len(enTokens), name: d.NameEN()})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].nameTokens != candidates[j].nameTokens {
			return candidates[i].nameTokens < candidates[j].nameTokens
		}
		return candidates[i].name < candidates[j].name
	})

	out := make([]catalog.Definition, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.def)
	}
	return out
}

// isOrderedSubsequence reports whether every element of needle appears in
// haystack, in order, not necessarily contiguously.
func isOrderedSubsequence(needle, haystack []string) bool {
	if len(needle) == 0 {
		return false
	}
	i := 0
	for _, h := range haystack {
		if i < len(needle) && h == needle[i] {
			i++
		}
	}
	return i == len(needle)
}
