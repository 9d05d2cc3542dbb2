package toc

import (
	"testing"

	"catalogd/internal/catalogerr"
)

func TestParseLegacySingleRoot(t *testing.T) {
	// root(0) -> type(1) -> methods-container(2) -> method(3)
	src := `{4
		{0 -1 1 1 {0 0 {0 0 {1 "Массив"}{2 "Array"}} "/root.html"}}
		{1 0 1 2 {0 0 {0 0 {1 "Массив"}{2 "Array"}} "/objects/array.html"}}
		{2 1 1 3 {0 0 {0 0 {1 "Методы"}{2 "Methods"}} "/objects/array/methods.html"}}
		{3 2 0 {0 0 {0 0 {1 "Добавить"}{2 "Add"}} "/objects/array/methods/add.html"}}
	}`
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if root.NodeType != NodeRoot {
		t.Fatalf("expected root node type, got %s", root.NodeType)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 root child, got %d", len(root.Children))
	}

	typeNode := root.Children[0]
	if typeNode.NodeType != NodeType {
		t.Fatalf("expected TYPE node, got %s", typeNode.NodeType)
	}
	if typeNode.NameRU != "Массив" || typeNode.NameEN != "Array" {
		t.Fatalf("unexpected type names: %+v", typeNode)
	}

	methodsContainer := typeNode.Children[0]
	if methodsContainer.NodeType != NodeMethod {
		t.Fatalf("expected methods container classified as METHOD, got %s", methodsContainer.NodeType)
	}

	methodLeaf := methodsContainer.Children[0]
	if methodLeaf.NodeType != NodeMethod {
		t.Fatalf("expected method leaf classified as METHOD, got %s", methodLeaf.NodeType)
	}
	if methodLeaf.NameEN != "Add" {
		t.Fatalf("unexpected method name: %+v", methodLeaf)
	}
}

func TestParseModernQuotedLanguageCodes(t *testing.T) {
	src := `{1
		{0 -1 0 {0 0 {0 0 {"ru" "Структура"}{"en" "Structure"}} "/objects/structure.html"}}
	}`
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	node := root.Children[0]
	if node.NameRU != "Структура" || node.NameEN != "Structure" {
		t.Fatalf("unexpected names: %+v", node)
	}
}

func TestParseUnterminatedQuoteIsMalformed(t *testing.T) {
	_, err := Parse([]byte(`{1 {0 -1 0 {0 0 {0 0 {1 "Unterminated}}} "/x.html"}}`))
	if !catalogerr.IsCode(err, catalogerr.CodeMalformedToc) {
		t.Fatalf("expected MalformedToc, got %v", err)
	}
}

func TestParseExcessiveBracketDepthIsMalformed(t *testing.T) {
	// A well-formed chunk followed by 40 extra nested groups trailing the
	// properties block, the "tolerate unknown trailing fields" skip-loop
	// in parseChunkProperties, pushed past maxBracketDepth.
	var b []byte
	b = append(b, []byte(`{1 {0 -1 0 {0 0 {0 0 {1 "X"}{2 "Y"}} "/x.html" `)...)
	for i := 0; i < 40; i++ {
		b = append(b, '{')
	}
	for i := 0; i < 40; i++ {
		b = append(b, '}')
	}
	b = append(b, []byte(`}}}`)...)

	_, err := Parse(b)
	if !catalogerr.IsCode(err, catalogerr.CodeMalformedToc) {
		t.Fatalf("expected MalformedToc for excessive depth, got %v", err)
	}
}

func TestMissingLanguageMirroredByCatalogLater(t *testing.T) {
	src := `{1
		{0 -1 0 {0 0 {0 0 {2 "OnlyEnglish"}} "/x.html"}}
	}`
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	node := root.Children[0]
	if node.NameEN != "OnlyEnglish" {
		t.Fatalf("unexpected name: %+v", node)
	}
	if node.NameRU != "" {
		t.Fatalf("expected empty NameRU prior to catalog-level mirroring, got %q", node.NameRU)
	}
	if node.LanguageCode != "en" {
		t.Fatalf("expected single-language marker 'en', got %q", node.LanguageCode)
	}
}
