package index

import "catalogd/internal/catalog"

// Set bundles the two indexes built once at bootstrap and handed to
// every search strategy together (spec §4.7, §4.8).
type Set struct {
	Hash      *HashIndex
	StartWith *StartWithIndex
}

// Build constructs both indexes over the same definition slice.
func Build(defs []catalog.Definition) *Set {
	return &Set{
		Hash:      NewHashIndex(defs),
		StartWith: NewStartWithIndex(defs),
	}
}
