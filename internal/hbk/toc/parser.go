package toc

import (
	"strconv"
	"strings"

	"catalogd/internal/catalogerr"
)

// maxBracketDepth bounds nested '{' groups; anything deeper is treated as
// a malformed stream rather than risking unbounded recursion on hostile
// input (§4.2).
const maxBracketDepth = 32

// NodeKind classifies a TocNode. TYPE/METHOD/PROPERTY/CONSTRUCTOR nodes
// carry a PagePath and are dispatched to one of the five page parsers;
// SECTION and ROOT nodes are pure structure.
type NodeKind string

const (
	NodeRoot        NodeKind = "ROOT"
	NodeSection     NodeKind = "SECTION"
	NodeType        NodeKind = "TYPE"
	NodeMethod      NodeKind = "METHOD"
	NodeProperty    NodeKind = "PROPERTY"
	NodeConstructor NodeKind = "CONSTRUCTOR"
)

// TocNode is one entry of the decoded table of contents.
type TocNode struct {
	ID           int
	ParentID     int
	NameRU       string
	NameEN       string
	LanguageCode string // "" when both languages are present on this node
	PagePath     string
	NodeType     NodeKind
	Children     []*TocNode
	Parent       *TocNode
}

// Title is the node's best display name: Russian first, falling back to
// English.
func (n *TocNode) Title() string {
	if n.NameRU != "" {
		return n.NameRU
	}
	return n.NameEN
}

// chunk is the flat, un-treed record the bracket parser produces; Parse
// links chunks into a TocNode tree via their childIDs.
type chunk struct {
	id        int
	parentID  int
	childIDs  []int
	nameRU    string
	nameEN    string
	singleLng string // set when only one of nameRU/nameEN was present
	htmlPath  string
}

type tokenIterator struct {
	tokens []string
	pos    int
}

func (it *tokenIterator) hasNext() bool { return it.pos < len(it.tokens) }

func (it *tokenIterator) next() (string, error) {
	if !it.hasNext() {
		return "", catalogerr.New(catalogerr.CodeMalformedToc, "unexpected end of TOC token stream")
	}
	t := it.tokens[it.pos]
	it.pos++
	return t, nil
}

func (it *tokenIterator) peek() string {
	if !it.hasNext() {
		return ""
	}
	return it.tokens[it.pos]
}

func (it *tokenIterator) expect(tok string) error {
	got, err := it.next()
	if err != nil {
		return err
	}
	if got != tok {
		return catalogerr.New(catalogerr.CodeMalformedToc, "expected '"+tok+"', got '"+got+"'")
	}
	return nil
}

// Parse decodes a bracket-format TOC byte stream into its root TocNode.
func Parse(data []byte) (*TocNode, error) {
	tokens, err := tokenize(string(data))
	if err != nil {
		return nil, err
	}
	it := &tokenIterator{tokens: tokens}

	chunks, err := parseTableOfContents(it, 0)
	if err != nil {
		return nil, err
	}

	root := buildTree(chunks)
	classify(root)
	return root, nil
}

func parseTableOfContents(it *tokenIterator, depth int) ([]chunk, error) {
	if !it.hasNext() {
		return nil, nil
	}
	depth++
	if depth > maxBracketDepth {
		return nil, catalogerr.New(catalogerr.CodeMalformedToc, "bracket nesting exceeds maximum depth")
	}
	if err := it.expect("{"); err != nil {
		return nil, err
	}

	countTok, err := it.next()
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(countTok)
	if err != nil {
		return nil, catalogerr.Wrap(err, catalogerr.CodeMalformedToc, "invalid TOC chunk count")
	}

	chunks := make([]chunk, 0, count)
	for i := 0; i < count; i++ {
		c, err := parseChunk(it, depth)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}

	if it.hasNext() && it.peek() == "}" {
		_, _ = it.next()
	}
	return chunks, nil
}

// parseChunk reads "{id parentId childCount childId1..N {properties}}".
func parseChunk(it *tokenIterator, depth int) (chunk, error) {
	depth++
	if depth > maxBracketDepth {
		return chunk{}, catalogerr.New(catalogerr.CodeMalformedToc, "bracket nesting exceeds maximum depth")
	}
	if err := it.expect("{"); err != nil {
		return chunk{}, err
	}

	var c chunk
	idTok, err := it.next()
	if err != nil {
		return chunk{}, err
	}
	c.id, err = strconv.Atoi(idTok)
	if err != nil {
		return chunk{}, catalogerr.Wrap(err, catalogerr.CodeMalformedToc, "invalid chunk id")
	}

	parentTok, err := it.next()
	if err != nil {
		return chunk{}, err
	}
	c.parentID, err = strconv.Atoi(parentTok)
	if err != nil {
		return chunk{}, catalogerr.Wrap(err, catalogerr.CodeMalformedToc, "invalid chunk parent id")
	}

	childCountTok, err := it.next()
	if err != nil {
		return chunk{}, err
	}
	childCount, err := strconv.Atoi(childCountTok)
	if err != nil {
		return chunk{}, catalogerr.Wrap(err, catalogerr.CodeMalformedToc, "invalid chunk child count")
	}
	for i := 0; i < childCount; i++ {
		tok, err := it.next()
		if err != nil {
			return chunk{}, err
		}
		childID, err := strconv.Atoi(tok)
		if err != nil {
			return chunk{}, catalogerr.Wrap(err, catalogerr.CodeMalformedToc, "invalid chunk child id")
		}
		c.childIDs = append(c.childIDs, childID)
	}

	if err := parseChunkProperties(it, &c, depth); err != nil {
		return chunk{}, err
	}

	if err := it.expect("}"); err != nil {
		return chunk{}, err
	}
	return c, nil
}

// parseChunkProperties reads the optional "{num1 num2 {names...} htmlPath
// ...}" block trailing a chunk, tolerating the extra trailing fields the
// real format carries but this decoder has no use for.
func parseChunkProperties(it *tokenIterator, c *chunk, depth int) error {
	if !it.hasNext() || it.peek() != "{" {
		return nil
	}
	depth++
	if depth > maxBracketDepth {
		return catalogerr.New(catalogerr.CodeMalformedToc, "bracket nesting exceeds maximum depth")
	}
	if err := it.expect("{"); err != nil {
		return err
	}

	if it.hasNext() && it.peek() != "{" && it.peek() != "}" {
		_, _ = it.next() // number1
	}
	if it.hasNext() && it.peek() != "{" && it.peek() != "}" {
		_, _ = it.next() // number2
	}

	if it.hasNext() && it.peek() == "{" {
		if err := parseNameContainers(it, c, depth); err != nil {
			return err
		}
	}

	if it.hasNext() && it.peek() != "{" && it.peek() != "}" {
		tok, err := it.next()
		if err != nil {
			return err
		}
		c.htmlPath = unquote(tok)
	}

	// Skip any remaining fields/groups until this properties block closes.
	bracketDepth := 1
	for it.hasNext() && bracketDepth > 0 {
		tok, err := it.next()
		if err != nil {
			return err
		}
		switch tok {
		case "{":
			bracketDepth++
			if depth+bracketDepth > maxBracketDepth {
				return catalogerr.New(catalogerr.CodeMalformedToc, "bracket nesting exceeds maximum depth")
			}
		case "}":
			bracketDepth--
		}
	}
	return nil
}

// parseNameContainers reads one or more "{num1 num2 {lang name}*}" groups,
// each holding a bilingual name pair. Legacy language codes are bare "1"
// (Russian) / "2" (English); modern codes are quoted "ru"/"en".
func parseNameContainers(it *tokenIterator, c *chunk, depth int) error {
	for it.hasNext() && it.peek() == "{" {
		depth++
		if depth > maxBracketDepth {
			return catalogerr.New(catalogerr.CodeMalformedToc, "bracket nesting exceeds maximum depth")
		}
		if err := it.expect("{"); err != nil {
			return err
		}

		if it.hasNext() && it.peek() != "{" && it.peek() != "}" {
			_, _ = it.next()
		}
		if it.hasNext() && it.peek() != "{" && it.peek() != "}" {
			_, _ = it.next()
		}

		var ru, en string
		for it.hasNext() && it.peek() == "{" {
			depth++
			if depth > maxBracketDepth {
				return catalogerr.New(catalogerr.CodeMalformedToc, "bracket nesting exceeds maximum depth")
			}
			if err := it.expect("{"); err != nil {
				return err
			}
			langTok, err := it.next()
			if err != nil {
				return err
			}
			nameTok, err := it.next()
			if err != nil {
				return err
			}
			name := unquote(nameTok)
			switch unquote(langTok) {
			case "1", "ru":
				ru = name
			case "2", "en":
				en = name
			}
			if err := it.expect("}"); err != nil {
				return err
			}
			depth--
		}

		if ru != "" {
			c.nameRU = ru
		}
		if en != "" {
			c.nameEN = en
		}
		if ru == "" && en != "" {
			c.singleLng = "en"
		} else if en == "" && ru != "" {
			c.singleLng = "ru"
		}

		if err := it.expect("}"); err != nil {
			return err
		}
		depth--
	}
	return nil
}

func buildTree(chunks []chunk) *TocNode {
	nodes := make(map[int]*TocNode, len(chunks))
	for _, c := range chunks {
		nodes[c.id] = &TocNode{
			ID:           c.id,
			ParentID:     c.parentID,
			NameRU:       c.nameRU,
			NameEN:       c.nameEN,
			LanguageCode: c.singleLng,
			PagePath:     c.htmlPath,
		}
	}

	hasParent := make(map[int]bool, len(chunks))
	for _, c := range chunks {
		node := nodes[c.id]
		for _, childID := range c.childIDs {
			child, ok := nodes[childID]
			if !ok {
				continue
			}
			node.Children = append(node.Children, child)
			child.Parent = node
			hasParent[childID] = true
		}
	}

	var roots []*TocNode
	for _, c := range chunks {
		if !hasParent[c.id] {
			roots = append(roots, nodes[c.id])
		}
	}

	// A lone root that has children is the tree's root itself; several
	// roots, or a lone childless entry, are gathered under a virtual root.
	if len(roots) == 0 {
		return &TocNode{NodeType: NodeRoot, NameRU: "root"}
	}
	if len(roots) == 1 && len(roots[0].Children) > 0 {
		roots[0].NodeType = NodeRoot
		return roots[0]
	}
	virtual := &TocNode{NodeType: NodeRoot, NameRU: "root", Children: roots}
	for _, r := range roots {
		r.Parent = virtual
	}
	return virtual
}

// Classification markers, grounded in the same path/name heuristics the
// reference HTML help viewer uses to tell a methods folder from a
// properties folder from a plain type page.
const (
	propertiesPathMarker   = "/properties/"
	methodsPathMarker      = "/methods/"
	constructorsPathMarker = "/ctors/"
)

var (
	propertiesNameMarkers   = []string{"свойства", "properties"}
	methodsNameMarkers      = []string{"методы", "methods"}
	constructorsNameMarkers = []string{"конструкторы", "constructors"}
)

// classify annotates every node's NodeType by walking the tree: a node's
// own path/name decides whether it is a methods/properties/constructors
// *container*, and the container itself takes that kind; its children then
// inherit that classification as their leaf NodeType (each child is one
// member page). Nodes matching neither heuristic default to SECTION if they
// carry no page, TYPE if they carry a page but no further classification
// (a plain type or enum page).
func classify(root *TocNode) {
	var walk func(n *TocNode, inheritedLeafKind NodeKind)
	walk = func(n *TocNode, inheritedLeafKind NodeKind) {
		containerKind := classifyContainer(n)
		if n != root {
			switch {
			case inheritedLeafKind != "":
				n.NodeType = inheritedLeafKind
			case containerKind != "":
				n.NodeType = containerKind
			case n.PagePath == "":
				n.NodeType = NodeSection
			default:
				n.NodeType = NodeType
			}
		}

		for _, child := range n.Children {
			walk(child, containerKind)
		}
	}
	walk(root, "")
}

func classifyContainer(n *TocNode) NodeKind {
	path := strings.ToLower(n.PagePath)
	name := strings.ToLower(n.Title())

	switch {
	case strings.Contains(path, propertiesPathMarker) || containsAny(name, propertiesNameMarkers):
		return NodeProperty
	case strings.Contains(path, methodsPathMarker) || containsAny(name, methodsNameMarkers):
		return NodeMethod
	case strings.Contains(path, constructorsPathMarker) || containsAny(name, constructorsNameMarkers):
		return NodeConstructor
	default:
		return ""
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
