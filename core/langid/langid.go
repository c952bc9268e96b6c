// Package langid decides which language a paragraph is written in by
// counting how many of its words each language's dictionary knows.
//
// A Table maps language codes to word oracles. A Classifier applies one of
// two strategies to a paragraph's words and falls back to the last known
// language when the words say nothing useful.
package langid

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Lexicon reports whether a language knows a word. Words passed to Contains
// are already normalized.
type Lexicon interface {
	Contains(word string) bool
}

// WordSet is a set of normalized words.
type WordSet map[string]struct{}

// NewWordSet builds a WordSet, normalizing every word.
func NewWordSet(words ...string) WordSet {
	ws := make(WordSet, len(words))
	for _, w := range words {
		ws.Add(w)
	}
	return ws
}

// Add normalizes w and adds it. Empty results are dropped.
func (ws WordSet) Add(w string) {
	if n := Normalize(w); n != "" {
		ws[n] = struct{}{}
	}
}

// Contains implements Lexicon.
func (ws WordSet) Contains(word string) bool {
	_, ok := ws[word]
	return ok
}

// Len returns the number of words.
func (ws WordSet) Len() int { return len(ws) }

var folder = cases.Fold()

// Normalize case-folds a word and strips leading and trailing punctuation
// and symbols. Inner apostrophes and hyphens survive, so "l'amour" and
// "kôlï-kôlï" stay whole.
func Normalize(word string) string {
	trimmed := strings.TrimFunc(word, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r)
	})
	if trimmed == "" {
		return ""
	}
	return folder.String(trimmed)
}

// hasDigit reports whether a word contains a decimal digit. Such words are
// numbers, verse references or page labels and belong to every language.
func hasDigit(word string) bool {
	for _, r := range word {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Table is the word frequency table: language codes in a fixed order, each
// with its Lexicon. It is immutable after NewTable.
type Table struct {
	codes    []string
	lexicons map[string]Lexicon
}

// NewTable builds a Table. codes fixes the iteration order used to break
// ties; a code with no lexicon never matches anything.
func NewTable(codes []string, lexicons map[string]Lexicon) *Table {
	t := &Table{
		codes:    append([]string(nil), codes...),
		lexicons: make(map[string]Lexicon, len(codes)),
	}
	for _, c := range codes {
		if lx, ok := lexicons[c]; ok && lx != nil {
			t.lexicons[c] = lx
		}
	}
	return t
}

// Codes returns the language codes in table order.
func (t *Table) Codes() []string {
	return append([]string(nil), t.codes...)
}

// Has reports whether code is one of the table's languages.
func (t *Table) Has(code string) bool {
	for _, c := range t.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Matches returns the codes, in table order, whose lexicon knows word.
// Words containing a digit match every language.
func (t *Table) Matches(word string) []string {
	n := Normalize(word)
	if n == "" {
		return nil
	}
	if hasDigit(n) {
		return t.Codes()
	}
	var out []string
	for _, c := range t.codes {
		if lx, ok := t.lexicons[c]; ok && lx.Contains(n) {
			out = append(out, c)
		}
	}
	return out
}

// Counts returns the number of input words and, per language, how many of
// them that language knows.
func (t *Table) Counts(words []string) (total int, counts map[string]int) {
	counts = make(map[string]int, len(t.codes))
	for _, c := range t.codes {
		counts[c] = 0
	}
	for _, w := range words {
		total++
		for _, c := range t.Matches(w) {
			counts[c]++
		}
	}
	return total, counts
}
