// Package page parses a single HBK documentation page into one of the five
// Definition shapes. Pages are tolerant HTML: a title element, a handful of
// headings ("Имя"/"Name", "Синтаксис"/"Syntax", ...) each introducing a run
// of following content, occasionally a table or a list. The page is parsed
// with tree-sitter's HTML grammar and walked with the same node-kind
// dispatch table idiom used for source code elsewhere in this codebase,
// rather than a full DOM/CSS-selector library.
package page

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// block is one titled section of a page, accumulated in document order.
// blockType is the canonical key from blockTitles ("name", "syntax",
// "parameters", ...), "unknown" for a heading blockTitles does not list,
// or "description" for untitled leading content.
type block struct {
	title     string
	blockType string
	content   string
}

// parsedPage is the block-segmented form of one documentation page, the
// Go analog of the reference implementation's ParsedPage.
type parsedPage struct {
	title  string
	blocks []block
}

func (p *parsedPage) blockContent(blockType string) string {
	for _, b := range p.blocks {
		if b.blockType == blockType {
			return b.content
		}
	}
	return ""
}

var htmlLanguage = sitter.NewLanguage(tree_sitter_html.Language())

// parseHTMLPage segments html into titled blocks. Headings are <h1>-<h4>
// elements, or a <p>/<div> whose class attribute mentions "head"/"title",
// or a <p>/<div> whose sole bold/strong child repeats the paragraph's own
// text; their text is looked up in blockTitles to name the block that
// follows. Anything before the first heading becomes an untitled
// "description" block, matching the fallback the reference parser uses
// when a page carries no explicit structure at all.
func parseHTMLPage(html string) *parsedPage {
	source := []byte(html)
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(htmlLanguage)
	tree := parser.Parse(source, nil)
	defer tree.Close()

	page := &parsedPage{}
	body := findElement(tree.RootNode(), source, "body")
	root := body
	if root == nil {
		root = tree.RootNode()
	}
	page.title = flattenText(findElement(tree.RootNode(), source, "title"), source)

	var current *block
	var contentParts []string

	flushBlock := func() {
		if current == nil {
			if len(contentParts) > 0 {
				page.blocks = append(page.blocks, block{
					title:     "Description",
					blockType: "description",
					content:   joinNonEmpty(contentParts),
				})
				contentParts = nil
			}
			return
		}
		current.content = joinNonEmpty(contentParts)
		page.blocks = append(page.blocks, *current)
		current = nil
		contentParts = nil
	}

	forEachChildElement(root, source, func(el *sitter.Node) {
		tag := elementTagName(el, source)
		if tag == "" {
			return
		}
		text := collapseWhitespace(flattenText(el, source))
		if text == "" {
			return
		}

		if blockType, title, ok := detectBlockTitle(el, source, tag, text); ok {
			flushBlock()
			current = &block{title: title, blockType: blockType}
			return
		}

		switch tag {
		case "pre":
			contentParts = append(contentParts, rawText(el, source))
		case "table":
			contentParts = append(contentParts, renderTable(el, source))
		case "ul", "ol":
			contentParts = append(contentParts, renderList(el, source))
		default:
			contentParts = append(contentParts, text)
		}
	})

	if current != nil {
		flushBlock()
	} else if len(contentParts) > 0 {
		page.blocks = append(page.blocks, block{
			title:     "Description",
			blockType: "description",
			content:   joinNonEmpty(contentParts),
		})
	}

	return page
}

// detectBlockTitle mirrors _detect_block_title: heading tags always
// qualify, a "head"/"title"-classed paragraph qualifies, and a paragraph
// or div whose only substantial content is a bold/strong run repeating the
// element's own text qualifies. Unrecognized heading text still opens a
// block (blockType "unknown"), so trailing content is not silently folded
// into the wrong section; a classed/bold heading with unrecognized text is
// treated as ordinary content instead, matching the reference behavior.
func detectBlockTitle(el *sitter.Node, source []byte, tag, text string) (blockType, title string, ok bool) {
	switch tag {
	case "h1", "h2", "h3", "h4":
		return lookupBlockTitle(text), text, true
	case "p", "div":
		if hasHeadingClass(el, source) {
			if bt, known := blockTitles[text]; known {
				return bt, text, true
			}
		}
		if bold := soleBoldChild(el, source); bold != "" && bold == text {
			if bt, known := blockTitles[text]; known {
				return bt, text, true
			}
		}
	}
	return "", "", false
}

func lookupBlockTitle(text string) string {
	if bt, ok := blockTitles[text]; ok {
		return bt
	}
	return "unknown"
}

func joinNonEmpty(parts []string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += p
	}
	return out
}
