// Package index implements the two lookup structures search strategies
// are built on: an exact-match HashIndex and a prefix-scanning
// StartWithIndex (spec §4.7). Neither index owns entities — both hold
// stable references into the catalog they were built from.
package index

import (
	"catalogd/internal/catalog"
	"catalogd/internal/search/tokenize"
)

// HashIndex maps a case-folded whole name to every definition registered
// under it. A definition appears under both its Russian and English keys.
type HashIndex struct {
	byKey map[string][]catalog.Definition
}

// NewHashIndex builds a HashIndex over every definition, one entry per
// language name.
func NewHashIndex(defs []catalog.Definition) *HashIndex {
	h := &HashIndex{byKey: make(map[string][]catalog.Definition, len(defs)*2)}
	for _, d := range defs {
		h.put(tokenize.Fold(d.NameRU()), d)
		h.put(tokenize.Fold(d.NameEN()), d)
	}
	return h
}

func (h *HashIndex) put(key string, d catalog.Definition) {
	if key == "" {
		return
	}
	for _, existing := range h.byKey[key] {
		if existing == d {
			return
		}
	}
	h.byKey[key] = append(h.byKey[key], d)
}

// Lookup returns every definition registered under the case-folded form
// of query, or nil if there is no exact match.
func (h *HashIndex) Lookup(query string) []catalog.Definition {
	return h.byKey[tokenize.Fold(query)]
}
