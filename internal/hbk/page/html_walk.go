package page

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// elementKinds covers every tree-sitter-html node that represents a tag;
// script/style get their own node kinds in the grammar.
func isElementNode(kind string) bool {
	return kind == "element" || kind == "script_element" || kind == "style_element"
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// startTag returns el's opening tag node (start_tag or self_closing_tag).
func startTag(el *sitter.Node) *sitter.Node {
	if el == nil {
		return nil
	}
	for i := uint(0); i < el.ChildCount(); i++ {
		c := el.Child(i)
		if c.Kind() == "start_tag" || c.Kind() == "self_closing_tag" {
			return c
		}
	}
	return nil
}

// elementTagName extracts the lowercased tag name of el ("p", "h1", "table", ...).
func elementTagName(el *sitter.Node, source []byte) string {
	tag := startTag(el)
	if tag == nil {
		return ""
	}
	for i := uint(0); i < tag.ChildCount(); i++ {
		c := tag.Child(i)
		if c.Kind() == "tag_name" {
			return strings.ToLower(nodeText(c, source))
		}
	}
	return ""
}

// attributeValue returns the value of attr on el's opening tag, or "" if absent.
func attributeValue(el *sitter.Node, source []byte, attr string) string {
	tag := startTag(el)
	if tag == nil {
		return ""
	}
	for i := uint(0); i < tag.ChildCount(); i++ {
		c := tag.Child(i)
		if c.Kind() != "attribute" {
			continue
		}
		var name, value string
		for j := uint(0); j < c.ChildCount(); j++ {
			ac := c.Child(j)
			switch ac.Kind() {
			case "attribute_name":
				name = strings.ToLower(nodeText(ac, source))
			case "quoted_attribute_value", "attribute_value":
				value = strings.Trim(nodeText(ac, source), `"'`)
			}
		}
		if name == attr {
			return value
		}
	}
	return ""
}

func hasHeadingClass(el *sitter.Node, source []byte) bool {
	class := strings.ToLower(attributeValue(el, source, "class"))
	return strings.Contains(class, "head") || strings.Contains(class, "title")
}

// soleBoldChild returns the flattened text of el's only direct <b>/<strong>
// child element, or "" if el has zero or more than one child element.
func soleBoldChild(el *sitter.Node, source []byte) string {
	var bold *sitter.Node
	count := 0
	forEachChildElement(el, source, func(c *sitter.Node) {
		count++
		tag := elementTagName(c, source)
		if tag == "b" || tag == "strong" {
			bold = c
		}
	})
	if count != 1 || bold == nil {
		return ""
	}
	return collapseWhitespace(flattenText(bold, source))
}

// forEachChildElement visits el's direct element-kind children (skipping
// the opening/closing tag markers and bare text nodes) in document order.
func forEachChildElement(el *sitter.Node, source []byte, fn func(*sitter.Node)) {
	if el == nil {
		return
	}
	for i := uint(0); i < el.ChildCount(); i++ {
		c := el.Child(i)
		if isElementNode(c.Kind()) {
			fn(c)
		}
	}
}

// findElement returns the first descendant (kind "element") whose tag name
// matches tagName, or nil.
func findElement(root *sitter.Node, source []byte, tagName string) *sitter.Node {
	var found *sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil || found != nil {
			return
		}
		if isElementNode(n.Kind()) && elementTagName(n, source) == tagName {
			found = n
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return found
}

// findElements returns every descendant element whose tag name matches
// tagName, in document order.
func findElements(root *sitter.Node, source []byte, tagName string) []*sitter.Node {
	var out []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if isElementNode(n.Kind()) && elementTagName(n, source) == tagName {
			out = append(out, n)
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return out
}

// flattenText renders node's text content: block-level children yield
// newlines, inline children yield spaces, <li> children yield "- "
// bullets, matching spec.md §4.3's HTML-to-text flattening rule.
func flattenText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	var b strings.Builder
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Kind() {
		case "text", "raw_text":
			b.WriteString(nodeText(n, source))
			return
		case "comment", "start_tag", "end_tag", "self_closing_tag", "doctype":
			return
		}
		if isElementNode(n.Kind()) {
			tag := elementTagName(n, source)
			if isBlockTag(tag) {
				b.WriteString("\n")
			}
			if tag == "li" {
				b.WriteString("- ")
			}
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
		if isElementNode(n.Kind()) && isBlockTag(elementTagName(n, source)) {
			b.WriteString("\n")
		}
	}
	walk(node)
	return b.String()
}

func isBlockTag(tag string) bool {
	switch tag {
	case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "table", "tr", "ul", "ol", "pre", "br":
		return true
	}
	return false
}

// rawText returns node's text content verbatim (no inline/block flattening),
// used for <pre> blocks where whitespace is significant.
func rawText(node *sitter.Node, source []byte) string {
	var b strings.Builder
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Kind() == "text" || n.Kind() == "raw_text" {
			b.WriteString(nodeText(n, source))
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
	return b.String()
}

// collapseWhitespace folds any run of whitespace (including the newlines
// flattenText introduces) down to a single space and trims the ends, the
// form block-title text is compared in.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// renderTable joins every <tr>'s cells with " | ", one row per line.
func renderTable(table *sitter.Node, source []byte) string {
	var lines []string
	for _, tr := range findElements(table, source, "tr") {
		var cells []string
		forEachChildElement(tr, source, func(c *sitter.Node) {
			tag := elementTagName(c, source)
			if tag == "td" || tag == "th" {
				cells = append(cells, collapseWhitespace(flattenText(c, source)))
			}
		})
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " | "))
		}
	}
	return strings.Join(lines, "\n")
}

// renderList renders each direct <li> as a "- " bulleted line.
func renderList(list *sitter.Node, source []byte) string {
	var lines []string
	forEachChildElement(list, source, func(c *sitter.Node) {
		if elementTagName(c, source) == "li" {
			text := collapseWhitespace(flattenText(c, source))
			text = strings.TrimPrefix(text, "- ")
			lines = append(lines, "- "+text)
		}
	})
	return strings.Join(lines, "\n")
}
