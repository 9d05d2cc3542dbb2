// Package tokenize implements the CamelCase/separator-aware word splitter
// and Unicode case folder shared by the catalog's lookup keys and the
// WordOrderSearch strategy (spec §4.6).
package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// folder is the Unicode-aware lower mapping used for every case-folded
// lookup key in the catalog. strings.ToLower is naive about Turkish-I and
// about some Cyrillic forms; x/text/cases.Lower is the ecosystem-correct
// choice for a bilingual RU/EN catalog.
var folder = cases.Lower(language.Und)

// Fold case-folds s the same way for every lookup key in the system:
// HashIndex keys, StartWithIndex keys, and tokenize() output all go
// through Fold so "ТаблицаЗначений", "таблицазначений" and
// "ТАБЛИЦАЗНАЧЕНИЙ" compare equal.
func Fold(s string) string {
	return folder.String(s)
}

// Tokenize splits s into lower-case word tokens per spec §4.6:
//  1. case-fold the whole string
//  2. split on anything that is not a letter or digit
//  3. additionally split at CamelCase/PascalCase boundaries
//  4. discard empty tokens
//
// A run whose letters are all Cyrillic is not split at case changes: it is
// emitted as a single token ("ТаблицаЗначений" -> "таблицазначений") — the
// §9 open question is resolved in favor of "single token", not "fixed".
func Tokenize(s string) []string {
	runs := splitNonWord(s)

	tokens := make([]string, 0, len(runs))
	for _, run := range runs {
		cyrillic := true
		for _, r := range run {
			if unicode.IsLetter(r) && !unicode.Is(unicode.Cyrillic, r) {
				cyrillic = false
				break
			}
		}
		if cyrillic {
			tokens = append(tokens, run)
			continue
		}
		tokens = append(tokens, splitCamelCase(run)...)
	}

	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		out = append(out, Fold(t))
	}
	return out
}

// splitNonWord splits on runs of characters that are neither letters nor
// digits (separators, punctuation, whitespace).
func splitNonWord(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// splitCamelCase splits a single word run at CamelCase/PascalCase
// boundaries: a lower→upper transition is a split point, and a run of
// uppercase letters followed by a lowercase letter splits one character
// before that lowercase letter ("HTTPServer" -> "HTTP", "Server").
func splitCamelCase(word string) []string {
	runes := []rune(word)
	if len(runes) == 0 {
		return nil
	}

	var out []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]

		if unicode.IsLower(prev) && unicode.IsUpper(cur) {
			out = append(out, string(runes[start:i]))
			start = i
			continue
		}

		// A run of uppercase letters followed by a lowercase letter splits
		// one character before the lowercase letter, so the last uppercase
		// letter joins the word that follows it: "HTTPServer" -> "HTTP",
		// "Server".
		if unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			out = append(out, string(runes[start:i]))
			start = i
			continue
		}
	}
	out = append(out, string(runes[start:]))
	return out
}
