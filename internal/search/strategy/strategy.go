// Package strategy implements the four-strategy fuzzy search cascade of
// spec §4.8. Each strategy is a plain function of shape
// func(query, *index.Set, *catalog.Catalog) []catalog.Definition with no
// shared state between strategies — the teacher's "strategy = tagged
// function" idiom (design notes §9) rather than an interface hierarchy.
package strategy

import (
	"catalogd/internal/catalog"
	"catalogd/internal/search/index"
)

// Strategy is one named algorithm contributing candidate matches.
type Strategy func(query string, idx *index.Set, cat *catalog.Catalog) []catalog.Definition

// Ordered lists the four strategies in the fixed priority order spec §4.8
// mandates: compound-type concatenation, "Type.Member" / "Type Member"
// split, direct hash/prefix, and finally token-subsequence matching.
var Ordered = []Strategy{
	CompoundTypeSearch,
	TypeMemberSearch,
	RegularSearch,
	WordOrderSearch,
}
