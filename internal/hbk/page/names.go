package page

import (
	"regexp"
	"strings"
)

// bilingualNamePattern matches "RussianName (EnglishName)", the fallback
// form used when a page's name block has no " / " separator.
var bilingualNamePattern = regexp.MustCompile(`^(.+?)\s*\((.+?)\)`)

// splitBilingualName parses "RussianName / EnglishName" or
// "RussianName (EnglishName)" into its two parts; a name with neither
// shape is returned as the sole Russian name.
func splitBilingualName(text string) (ru, en string) {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, " / "); idx >= 0 {
		return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+3:])
	}
	if m := bilingualNamePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return text, ""
}

// pageNames resolves a page's bilingual entity name from its "name" block,
// falling back to the page's <title> when no name block was segmented.
func pageNames(p *parsedPage) (ru, en string) {
	if content := p.blockContent("name"); content != "" {
		return splitBilingualName(content)
	}
	if p.title != "" {
		return p.title, ""
	}
	return "", ""
}
