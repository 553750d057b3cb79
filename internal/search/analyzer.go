package search

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "has": {},
	"have": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {},
	"so": {}, "such": {}, "that": {}, "the": {}, "their": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "to": {}, "was": {},
	"were": {}, "will": {}, "with": {},
}

// Analyze lower-cases text, splits it on anything that is not a letter or
// digit, drops stop words and reduces each remaining word to its english
// stem. Index and query text go through the same path.
func Analyze(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if s := english.Stem(w, false); s != "" {
			terms = append(terms, s)
		}
	}
	return terms
}
