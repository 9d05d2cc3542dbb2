package strategy

import (
	"strings"

	"catalogd/internal/catalog"
	"catalogd/internal/search/index"
	"catalogd/internal/search/tokenize"
)

// TypeMemberSearch matches "<Type> <Member>" or "<Type>.<Member>". It
// splits once on '.' or the first whitespace run; if both halves are
// non-empty it looks the type half up in HashIndex restricted to
// kind=TYPE, then returns the members of that type whose name exact- or
// prefix-matches the member half (spec §4.8.2).
func TypeMemberSearch(query string, idx *index.Set, cat *catalog.Catalog) []catalog.Definition {
	typeHalf, memberHalf, ok := splitTypeMember(query)
	if !ok {
		return nil
	}

	var typ *catalog.PlatformTypeDefinition
	for _, d := range idx.Hash.Lookup(typeHalf) {
		if d.Kind() == catalog.KindType {
			if t, ok := d.(*catalog.PlatformTypeDefinition); ok {
				typ = t
				break
			}
		}
	}
	if typ == nil {
		return nil
	}

	members := cat.MembersOf(typ.NameEN())
	memberKey := tokenize.Fold(memberHalf)

	var exact, prefix []catalog.Definition
	for _, m := range members {
		ruKey, enKey := tokenize.Fold(m.NameRU()), tokenize.Fold(m.NameEN())
		switch {
		case ruKey == memberKey || enKey == memberKey:
			exact = append(exact, m)
		case strings.HasPrefix(ruKey, memberKey) || strings.HasPrefix(enKey, memberKey):
			prefix = append(prefix, m)
		}
	}
	return append(exact, prefix...)
}

// splitTypeMember splits query once on '.' if present, otherwise on the
// first run of whitespace. Both halves must be non-empty.
func splitTypeMember(query string) (typeHalf, memberHalf string, ok bool) {
	if idx := strings.IndexByte(query, '.'); idx >= 0 {
		typeHalf = strings.TrimSpace(query[:idx])
		memberHalf = strings.TrimSpace(query[idx+1:])
	} else {
		fields := strings.Fields(query)
		if len(fields) < 2 {
			return "", "", false
		}
		typeHalf = fields[0]
		memberHalf = strings.Join(fields[1:], " ")
	}
	if typeHalf == "" || memberHalf == "" {
		return "", "", false
	}
	return typeHalf, memberHalf, true
}
