package bootstrap

import (
	"log/slog"
	"strings"

	"github.com/gobwas/glob"

	"catalogd/internal/catalog"
	"catalogd/internal/catalogerr"
	"catalogd/internal/hbk/container"
	"catalogd/internal/hbk/page"
	"catalogd/internal/hbk/toc"
	"catalogd/internal/jsonload"
)

// enumCatalogMarkers name the root TOC sections the reference
// implementation's pages_visitor.py recognizes as enumeration catalogs:
// their own children are types, but *those* types' children are value
// pages, not member pages (§10 "Enum catalog normalization").
var enumCatalogMarkers = []string{
	"системные перечисления",
	"системные наборы значений",
	"system enumerations",
}

// FromHBK returns a BuildFunc that ingests hbkPath: open the container,
// decode its TOC, walk it dispatching each leaf to the matching HTML page
// parser, and register every resulting Definition into a fresh Catalog.
// excludeGlobs are matched against both a node's page path and its title;
// a match skips that node and its subtree entirely.
func FromHBK(hbkPath string, excludeGlobs []string, logger *slog.Logger) BuildFunc {
	return func() (*catalog.Catalog, []catalogerr.Warning, error) {
		if logger == nil {
			logger = slog.Default()
		}
		archive, err := container.Open(hbkPath)
		if err != nil {
			return nil, nil, err
		}

		root, err := toc.Parse(archive.TOCBytes)
		if err != nil {
			return nil, nil, err
		}

		globs, err := compileGlobs(excludeGlobs)
		if err != nil {
			return nil, nil, catalogerr.Wrap(err, catalogerr.CodeUnsupportedFormat, "compiling source.exclude_globs")
		}

		cat := catalog.New()
		w := &walker{archive: archive, catalog: cat, excluded: globs, logger: logger}
		w.walk(root, false)
		return cat, w.warnings, nil
	}
}

// FromJSON returns a BuildFunc that ingests the pre-exported JSON
// collection under jsonDir (spec §4.4): no TOC, no HTML, just
// jsonload.Load populating a fresh Catalog directly.
func FromJSON(jsonDir string) BuildFunc {
	return func() (*catalog.Catalog, []catalogerr.Warning, error) {
		cat := catalog.New()
		if err := jsonload.Load(jsonDir, cat); err != nil {
			return nil, nil, err
		}
		return cat, nil, nil
	}
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// pageSource is the subset of *container.Archive the walker needs to pull
// page bodies from, narrowed to an interface so tests can drive the walk
// against canned HTML without building a real HBK binary.
type pageSource interface {
	ReadPage(path string) (string, bool)
}

// walker carries the per-ingestion-run state the TOC walk needs: the
// opened archive to pull page HTML from, the catalog being populated, the
// compiled exclude globs, and the warnings collected from skipped pages.
type walker struct {
	archive  pageSource
	catalog  *catalog.Catalog
	excluded []glob.Glob
	logger   *slog.Logger
	warnings []catalogerr.Warning
}

// walk descends the TOC tree. insideEnumCatalog marks that this node's
// root ancestor was an enumeration-catalog section, so any node one level
// below an enum TYPE node is a value page and is normalized to a
// PropertyDefinition rather than parsed as its own type (§10). The title
// of the root, or of a top-level section directly under it, decides
// insideEnumCatalog for everything beneath it; once set, the flag stays
// set on the way down.
//
// Global context collection (§10) needs no flag here: a method/property
// page nested under a non-TYPE root has no TYPE ancestor, so
// page.ownerTypeTitle already resolves it to "" on its own.
func (w *walker) walk(node *toc.TocNode, insideEnumCatalog bool) {
	if node == nil || w.isExcluded(node) {
		return
	}

	if node.NodeType == toc.NodeRoot || node.Parent == nil || node.Parent.NodeType == toc.NodeRoot {
		title := strings.ToLower(node.Title())
		insideEnumCatalog = insideEnumCatalog || containsAny(title, enumCatalogMarkers)
	}

	effectiveType := node.NodeType
	if insideEnumCatalog && node.Parent != nil && node.Parent.NodeType == toc.NodeType && node.PagePath != "" {
		effectiveType = toc.NodeProperty
	}

	if node.PagePath != "" {
		w.parsePage(node, effectiveType)
	}

	for _, child := range node.Children {
		w.walk(child, insideEnumCatalog)
	}
}

// parsePage fetches one page's HTML from the archive and dispatches it to
// page.Parse under effectiveType, which may differ from node.NodeType
// (the enum-value-to-property normalization above). A missing archive
// entry or an unparseable page is a PageSkipped warning, not a fatal
// error: ingestion continues with that member omitted (§4.3).
func (w *walker) parsePage(node *toc.TocNode, effectiveType toc.NodeKind) {
	html, ok := w.archive.ReadPage(node.PagePath)
	if !ok {
		w.skip(node, "archive entry missing for "+node.PagePath)
		return
	}

	dispatchNode := node
	if effectiveType != node.NodeType {
		clone := *node
		clone.NodeType = effectiveType
		dispatchNode = &clone
	}

	def, err := page.Parse(html, dispatchNode)
	if err != nil {
		w.skip(node, err.Error())
		return
	}
	w.register(def)
}

func (w *walker) register(def catalog.Definition) {
	switch d := def.(type) {
	case *catalog.PlatformTypeDefinition:
		w.catalog.AddType(d)
	case *catalog.MethodDefinition:
		w.catalog.AddMethod(d)
	case *catalog.PropertyDefinition:
		w.catalog.AddProperty(d)
	case *catalog.ConstructorSignature:
		w.catalog.AddConstructor(d)
	}
}

func (w *walker) skip(node *toc.TocNode, reason string) {
	w.logger.Warn("skipping page", "path", node.PagePath, "title", node.Title(), "reason", reason)
	w.warnings = append(w.warnings, catalogerr.Warning{
		Code:    catalogerr.CodePageSkipped,
		Message: node.PagePath + ": " + reason,
	})
}

func (w *walker) isExcluded(node *toc.TocNode) bool {
	if len(w.excluded) == 0 {
		return false
	}
	for _, g := range w.excluded {
		if node.PagePath != "" && g.Match(node.PagePath) {
			return true
		}
		if g.Match(node.Title()) {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
