package page

import (
	"strings"

	"catalogd/internal/catalog"
	"catalogd/internal/hbk/toc"
)

// Parse reads one documentation page's HTML content and, guided by node's
// classification, builds the single Definition it describes. The owner
// type for methods/properties/constructors is the title of node's nearest
// TYPE ancestor (see ownerTypeTitle), or "" when it has none.
func Parse(html string, node *toc.TocNode) (catalog.Definition, error) {
	parsed := parseHTMLPage(html)

	switch node.NodeType {
	case toc.NodeType:
		return buildType(parsed, node), nil
	case toc.NodeMethod:
		return buildMethod(parsed, node), nil
	case toc.NodeProperty:
		return buildProperty(parsed, node), nil
	case toc.NodeConstructor:
		return buildConstructor(parsed, node), nil
	default:
		return buildType(parsed, node), nil
	}
}

// ownerTypeTitle walks up from a member node to the nearest ancestor
// classified as TYPE, skipping any intermediate "Methods"/"Properties"
// section container the TOC nests members under.
func ownerTypeTitle(node *toc.TocNode) string {
	for n := node.Parent; n != nil; n = n.Parent {
		if n.NodeType == toc.NodeType {
			return n.Title()
		}
	}
	return ""
}

func buildType(p *parsedPage, node *toc.TocNode) *catalog.PlatformTypeDefinition {
	ru, en := pageNames(p)
	if ru == "" && en == "" {
		ru = node.Title()
	}
	header := catalog.NewHeader(ru, en, p.blockContent("description"), catalog.KindType, "")
	return &catalog.PlatformTypeDefinition{Header: header}
}

func buildMethod(p *parsedPage, node *toc.TocNode) *catalog.MethodDefinition {
	ru, en := pageNames(p)
	if ru == "" && en == "" {
		ru = node.Title()
	}
	owner := ownerTypeTitle(node)
	header := catalog.NewHeader(ru, en, p.blockContent("description"), catalog.KindMethod, owner)

	m := &catalog.MethodDefinition{Header: header}

	if params := p.blockContent("parameters"); params != "" {
		m.Signatures = []catalog.Signature{{
			Name:       ru,
			Parameters: parseParameters(params),
		}}
	} else if syntax := p.blockContent("syntax"); syntax != "" {
		m.Signatures = []catalog.Signature{{Name: ru, Description: syntax}}
	}
	if rv := p.blockContent("return_value"); rv != "" {
		m.ReturnType = rv
	}
	return m
}

func buildProperty(p *parsedPage, node *toc.TocNode) *catalog.PropertyDefinition {
	ru, en := pageNames(p)
	if ru == "" && en == "" {
		ru = node.Title()
	}
	owner := ownerTypeTitle(node)
	header := catalog.NewHeader(ru, en, p.blockContent("description"), catalog.KindProperty, owner)

	prop := &catalog.PropertyDefinition{Header: header}
	if typeName := p.blockContent("value"); typeName != "" {
		prop.TypeName = typeName
	}
	if avail := strings.ToLower(p.blockContent("availability")); avail != "" {
		prop.ReadOnly = strings.Contains(avail, "только чтение") || strings.Contains(avail, "read only")
	}
	return prop
}

func buildConstructor(p *parsedPage, node *toc.TocNode) *catalog.ConstructorSignature {
	ru, en := pageNames(p)
	if ru == "" && en == "" {
		ru = node.Title()
	}
	owner := ownerTypeTitle(node)
	header := catalog.NewHeader(ru, en, p.blockContent("description"), catalog.KindConstructor, owner)

	ctor := &catalog.ConstructorSignature{
		Header: header,
		Name:   ru,
	}
	if syntax := p.blockContent("syntax"); syntax != "" {
		ctor.Syntax = syntax
	}
	if params := p.blockContent("parameters"); params != "" {
		ctor.Parameters = parseParameters(params)
	}
	return ctor
}
