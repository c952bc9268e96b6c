package langid

import (
	"fmt"
	"io"
	"strings"
)

// Summary counts paragraphs by assigned language.
type Summary struct {
	Total   int
	Empty   int
	ByLang  map[string]int
	Unknown int
	codes   []string
}

// Summarize tallies paragraphs. Paragraphs without words count as empty;
// paragraphs with words but no language, or a language outside codes,
// count as unknown.
func Summarize(paragraphs []Paragraph, codes []string) Summary {
	s := Summary{
		Total:  len(paragraphs),
		ByLang: make(map[string]int, len(codes)),
		codes:  append([]string(nil), codes...),
	}
	known := make(map[string]bool, len(codes))
	for _, c := range codes {
		s.ByLang[c] = 0
		known[c] = true
	}
	for _, p := range paragraphs {
		switch {
		case len(p.Words) == 0:
			s.Empty++
		case known[p.Lang]:
			s.ByLang[p.Lang]++
		default:
			s.Unknown++
		}
	}
	return s
}

// WriteTo prints the summary in the tools' report layout.
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	sp := "   "
	fmt.Fprintf(&b, "\n%d paragraphs in the document:\n%s%d are empty\n", s.Total, sp, s.Empty)
	for _, c := range s.codes {
		fmt.Fprintf(&b, "%s%d are %s\n", sp, s.ByLang[c], c)
	}
	fmt.Fprintf(&b, "%s%d are unknown.\n", sp, s.Unknown)
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
