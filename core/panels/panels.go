// Package panels copies comic panel labels between two line-aligned
// translations of the Action Bible. The reference text marks pages with
// "P###" lines and panels with "Kapa #" lines; the other text only has the
// page lines and gets "Panel #" lines at the same offsets.
package panels

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
)

var (
	pagePattern  = regexp.MustCompile(`^P[0-9]{2,3}`)
	panelPattern = regexp.MustCompile(`^Kapa\s?[0-9]{1,2}`)
)

// Page is one page of the reference text.
type Page struct {
	Label string
	// Line is the 0-based index of the page line in the reference text.
	Line int
	// Offsets holds, per panel, its distance in lines from the page line.
	Offsets []int
}

// Pages indexes the reference pages by label, keeping first-seen order.
type Pages struct {
	order  []string
	byName map[string]*Page
}

// Len returns the number of distinct pages.
func (p *Pages) Len() int { return len(p.order) }

// Get returns the page with the given label.
func (p *Pages) Get(label string) (*Page, bool) {
	pg, ok := p.byName[label]
	return pg, ok
}

// Labels returns page labels in first-seen order.
func (p *Pages) Labels() []string {
	return append([]string(nil), p.order...)
}

// Index scans reference lines for pages and panels. A page label seen twice
// keeps the panels of its last occurrence. A panel line before the first
// page is a *errors.ParseError.
func Index(refLines []string) (*Pages, error) {
	pages := &Pages{byName: make(map[string]*Page)}
	var cur *Page
	for i, line := range refLines {
		if m := pagePattern.FindString(line); m != "" {
			cur = &Page{Label: m, Line: i}
			if _, seen := pages.byName[m]; !seen {
				pages.order = append(pages.order, m)
			}
			pages.byName[m] = cur
			continue
		}
		if panelPattern.MatchString(line) {
			if cur == nil {
				return nil, sgerrors.NewLineParse("panel text", i+1, line, "panel before any page")
			}
			cur.Offsets = append(cur.Offsets, i-cur.Line)
		}
	}
	return pages, nil
}

type insertion struct {
	at    int
	seq   int
	label string
}

// Insert returns a copy of outLines with "Panel k" lines placed at the
// reference offsets after every line equal to a page label (ignoring
// surrounding space). Offsets count the inserted panel lines, so the
// result mirrors the reference layout. Labels past the end are appended.
func Insert(pages *Pages, outLines []string) []string {
	out := make([]string, 0, len(outLines))
	var pending []insertion
	seq := 0

	flush := func(final bool) {
		for len(pending) > 0 && (final || pending[0].at <= len(out)) {
			out = append(out, pending[0].label)
			pending = pending[1:]
		}
	}

	for _, line := range outLines {
		flush(false)
		out = append(out, line)
		pg, ok := pages.Get(strings.TrimSpace(line))
		if !ok {
			continue
		}
		at := len(out) - 1
		for k, off := range pg.Offsets {
			pending = append(pending, insertion{at: at + off, seq: seq, label: fmt.Sprintf("Panel %d", k+1)})
			seq++
		}
		sort.SliceStable(pending, func(i, j int) bool {
			if pending[i].at != pending[j].at {
				return pending[i].at < pending[j].at
			}
			return pending[i].seq < pending[j].seq
		})
	}
	flush(true)
	return out
}
