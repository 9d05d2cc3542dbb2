package index

import (
	"sort"
	"strings"

	"catalogd/internal/catalog"
	"catalogd/internal/search/tokenize"
)

const minPrefixLength = 2

// StartWithIndex answers "which definitions have a name starting with
// this prefix" queries. Rather than materializing every prefix of every
// name (O(N·L²) keys), it stores one sorted key per full name and answers
// a query by binary-search range scan over that sorted slice — bounding
// memory to O(N·L) as spec §4.7 calls for.
type StartWithIndex struct {
	keys  []string // sorted, case-folded, deduplicated full names
	byKey map[string][]catalog.Definition
}

// NewStartWithIndex builds a StartWithIndex over every definition, one
// entry per language name.
func NewStartWithIndex(defs []catalog.Definition) *StartWithIndex {
	byKey := make(map[string][]catalog.Definition, len(defs)*2)
	seen := make(map[string]bool, len(defs)*2)
	keys := make([]string, 0, len(defs)*2)

	add := func(name string, d catalog.Definition) {
		key := tokenize.Fold(name)
		if key == "" {
			return
		}
		byKey[key] = append(byKey[key], d)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	for _, d := range defs {
		add(d.NameRU(), d)
		add(d.NameEN(), d)
	}

	sort.Strings(keys)
	return &StartWithIndex{keys: keys, byKey: byKey}
}

// Match is one prefix hit: the matched full name plus its definitions.
type Match struct {
	Key         string
	Definitions []catalog.Definition
}

// LookupPrefix returns every (name, definitions) pair whose case-folded
// name begins with the case-folded prefix, ordered by name length then
// lexicographically (spec §4.8's within-strategy tie-break). Prefixes
// shorter than two characters are rejected — a single character would
// match a large fraction of the catalog and defeats the point of a
// prefix search.
func (s *StartWithIndex) LookupPrefix(prefix string) []Match {
	folded := tokenize.Fold(prefix)
	if len([]rune(folded)) < minPrefixLength {
		return nil
	}

	lo := sort.SearchStrings(s.keys, folded)
	matches := make([]Match, 0)
	for i := lo; i < len(s.keys); i++ {
		key := s.keys[i]
		if !strings.HasPrefix(key, folded) {
			break
		}
		matches = append(matches, Match{Key: key, Definitions: s.byKey[key]})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if len(matches[i].Key) != len(matches[j].Key) {
			return len(matches[i].Key) < len(matches[j].Key)
		}
		return matches[i].Key < matches[j].Key
	})
	return matches
}
