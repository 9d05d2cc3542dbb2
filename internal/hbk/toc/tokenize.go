// Package toc decodes the bracket-format table of contents embedded in an
// HBK's PackBlock: a hand-written tokenizer plus a recursive-descent parser
// producing a tree of TocNode values.
package toc

import (
	"strings"

	"catalogd/internal/catalogerr"
)

const bom = '\uFEFF'

// tokenize splits bracket-file content into tokens: "{", "}", quoted
// strings (with their quotes retained so the parser can tell a quoted
// literal apart from a bare one), and bare words. Commas are separators
// and are dropped. Whitespace outside quotes is insignificant.
func tokenize(content string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inString := false
	runes := []rune(content)

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tok := strings.TrimSpace(current.String())
		if tok != "" {
			tokens = append(tokens, tok)
		}
		current.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case r == bom:
			continue
		case r == '"':
			if inString {
				if i+1 < len(runes) && runes[i+1] == '"' {
					current.WriteRune('"')
					i++
					continue
				}
				current.WriteRune(r)
				tokens = append(tokens, current.String())
				current.Reset()
				inString = false
			} else {
				flush()
				current.WriteRune(r)
				inString = true
			}
		case inString:
			current.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		case r == '{' || r == '}':
			flush()
			tokens = append(tokens, string(r))
		case r == ',':
			flush()
		default:
			current.WriteRune(r)
		}
	}

	if inString {
		return nil, catalogerr.New(catalogerr.CodeMalformedToc, "unterminated quoted string in TOC")
	}
	flush()
	return tokens, nil
}

// unquote strips a token's surrounding quotes if present; bare tokens are
// returned unchanged.
func unquote(tok string) string {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return tok[1 : len(tok)-1]
	}
	return tok
}
