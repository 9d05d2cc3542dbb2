package bootstrap

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogd/internal/catalog"
	"catalogd/internal/hbk/toc"
)

// fakePages is a pageSource backed by an in-memory map, letting the
// walker be exercised without a real HBK binary. Like the real archive it
// is keyed without the leading "/" that TOC page paths carry.
type fakePages map[string]string

func (f fakePages) ReadPage(path string) (string, bool) {
	html, ok := f[strings.TrimPrefix(path, "/")]
	return html, ok
}

func TestWalkNormalizesEnumValuesToProperties(t *testing.T) {
	root := &toc.TocNode{NodeType: toc.NodeRoot, NameRU: "root"}
	enumSection := &toc.TocNode{NodeType: toc.NodeSection, NameRU: "Системные перечисления", Parent: root}
	enumType := &toc.TocNode{NodeType: toc.NodeType, NameRU: "ТипПеречисления", PagePath: "/enum.html", Parent: enumSection}
	enumValue := &toc.TocNode{NodeType: toc.NodeType, NameRU: "Значение1", PagePath: "/value1.html", Parent: enumType}
	enumType.Children = []*toc.TocNode{enumValue}
	enumSection.Children = []*toc.TocNode{enumType}
	root.Children = []*toc.TocNode{enumSection}

	pages := fakePages{
		"enum.html":  `<html><body><h1>Имя</h1><p>ТипПеречисления / EnumKind</p></body></html>`,
		"value1.html": `<html><body><h1>Имя</h1><p>Значение1 / ValueOne</p></body></html>`,
	}

	cat := catalog.New()
	w := &walker{archive: pages, catalog: cat, logger: slog.Default()}
	w.walk(root, false)

	typ, ok := cat.TypeByKey("ТипПеречисления")
	require.True(t, ok)
	require.Len(t, typ.Properties, 0, "properties attach after ResolveOwners, not during the walk")

	warnings := cat.ResolveOwners()
	assert.Empty(t, warnings)
	require.Len(t, typ.Properties, 1)
	assert.Equal(t, "ValueOne", typ.Properties[0].NameEN())
	assert.Equal(t, catalog.KindProperty, typ.Properties[0].Kind())
}

func TestWalkRegistersGlobalContextMembersWithNoOwner(t *testing.T) {
	root := &toc.TocNode{NodeType: toc.NodeRoot, NameRU: "root"}
	globalSection := &toc.TocNode{NodeType: toc.NodeSection, NameRU: "Глобальный контекст", Parent: root}
	method := &toc.TocNode{NodeType: toc.NodeMethod, NameRU: "СтрНайти", PagePath: "/strfind.html", Parent: globalSection}
	globalSection.Children = []*toc.TocNode{method}
	root.Children = []*toc.TocNode{globalSection}

	pages := fakePages{
		"strfind.html": `<html><body><h1>Имя</h1><p>СтрНайти / StrFind</p></body></html>`,
	}

	cat := catalog.New()
	w := &walker{archive: pages, catalog: cat, logger: slog.Default()}
	w.walk(root, false)

	hits := cat.ByKey("StrFind")
	require.Len(t, hits, 1)
	assert.Equal(t, catalog.KindMethod, hits[0].Kind())
	assert.Equal(t, "", hits[0].OwnerTypeName())
}

func TestWalkSkipsExcludedPages(t *testing.T) {
	root := &toc.TocNode{NodeType: toc.NodeRoot, NameRU: "root"}
	typ := &toc.TocNode{NodeType: toc.NodeType, NameRU: "Внутренний", PagePath: "/internal/hidden.html", Parent: root}
	root.Children = []*toc.TocNode{typ}

	pages := fakePages{
		"internal/hidden.html": `<html><body><h1>Имя</h1><p>Внутренний / Internal</p></body></html>`,
	}

	globs, err := compileGlobs([]string{"/internal/*"})
	require.NoError(t, err)

	cat := catalog.New()
	w := &walker{archive: pages, catalog: cat, excluded: globs, logger: slog.Default()}
	w.walk(root, false)

	assert.Empty(t, cat.AllDefinitions())
}
