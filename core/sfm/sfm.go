// Package sfm parses Paratext Standard Format Marker text into chapters and
// paragraph units, compares the structure of two parallel texts, and copies
// verse markers from a fully marked base text into a target text.
//
// A paragraph unit starts at a paragraph marker line (\p, \id, \ip by
// default) and runs until the next paragraph marker or chapter marker. Every
// verse marker belongs to the unit open when it appears.
package sfm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
)

const (
	chapterMarker = `\c`
	verseMarker   = `\v`
)

// DefaultParagraphMarkers open a new paragraph unit.
var DefaultParagraphMarkers = []string{`\p`, `\id`, `\ip`}

// ParseOptions configures Parse.
type ParseOptions struct {
	// ParagraphMarkers lists the markers that open a paragraph unit. Empty
	// means DefaultParagraphMarkers.
	ParagraphMarkers []string
}

// Chapter is the structure recorded for one chapter of a text. Chapter 0
// holds everything before the first chapter marker.
type Chapter struct {
	Number int
	// LineNumber is the 1-based line where the chapter starts.
	LineNumber int
	// MarkerLine is the raw \c line, empty for chapter 0.
	MarkerLine string
	// Lead holds lines between the chapter marker and the first paragraph.
	Lead []string
	// Paragraphs holds each paragraph unit: its marker line and the lines
	// that follow it, joined with "\n".
	Paragraphs []string
	// Verses maps a verse number to the index of its paragraph.
	Verses map[int]int
}

// ParagraphCount returns the number of paragraph units.
func (c *Chapter) ParagraphCount() int {
	return len(c.Paragraphs)
}

// VersesIn returns the verse numbers that fall in paragraph i, ascending.
func (c *Chapter) VersesIn(i int) []int {
	var out []int
	for vn, pi := range c.Verses {
		if pi == i {
			out = append(out, vn)
		}
	}
	sort.Ints(out)
	return out
}

func (c *Chapter) clone() *Chapter {
	cp := *c
	cp.Lead = append([]string(nil), c.Lead...)
	cp.Paragraphs = append([]string(nil), c.Paragraphs...)
	cp.Verses = make(map[int]int, len(c.Verses))
	for k, v := range c.Verses {
		cp.Verses[k] = v
	}
	return &cp
}

// Document is a parsed SFM text.
type Document struct {
	// Chapters by number.
	Chapters map[int]*Chapter
	// Order lists chapter numbers in order of appearance. Each number
	// appears once.
	Order []int
	// LineCount is the number of lines in the source text.
	LineCount int
}

// Chapter returns the chapter with number n, or nil.
func (d *Document) Chapter(n int) *Chapter {
	return d.Chapters[n]
}

// ParagraphCount returns the number of paragraph units in all chapters.
func (d *Document) ParagraphCount() int {
	total := 0
	for _, c := range d.Chapters {
		total += c.ParagraphCount()
	}
	return total
}

// Parse parses text with the default paragraph markers.
func Parse(text string) (*Document, error) {
	return ParseWithOptions(text, ParseOptions{})
}

// ParseLines parses text already split into lines.
func ParseLines(lines []string) (*Document, error) {
	return parseLines(lines, ParseOptions{})
}

// ParseWithOptions parses text. A verse marker whose number is not an
// integer, one that appears before any paragraph marker of its chapter, or
// a chapter marker repeating an earlier chapter number is a
// *errors.ParseError.
func ParseWithOptions(text string, opts ParseOptions) (*Document, error) {
	return parseLines(splitLines(text), opts)
}

func parseLines(lines []string, opts ParseOptions) (*Document, error) {
	markers := opts.ParagraphMarkers
	if len(markers) == 0 {
		markers = DefaultParagraphMarkers
	}
	isParagraph := make(map[string]bool, len(markers))
	for _, m := range markers {
		isParagraph[m] = true
	}

	doc := &Document{Chapters: make(map[int]*Chapter), LineCount: len(lines)}
	var cur *Chapter
	chapter := func(n, line int, marker string) *Chapter {
		c := &Chapter{Number: n, LineNumber: line, MarkerLine: marker, Verses: make(map[int]int)}
		doc.Chapters[n] = c
		doc.Order = append(doc.Order, n)
		return c
	}
	appendBody := func(line string) {
		if n := len(cur.Paragraphs); n > 0 {
			cur.Paragraphs[n-1] += "\n" + line
		} else {
			cur.Lead = append(cur.Lead, line)
		}
	}

	for i, line := range lines {
		lineNo := i + 1
		fields := strings.Fields(line)
		start := ""
		if len(fields) > 0 {
			start = fields[0]
		}

		if start == chapterMarker && len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				if prev, ok := doc.Chapters[n]; ok {
					return nil, lineError(lineNo, line, fmt.Sprintf("chapter %d already started at line %d", n, prev.LineNumber))
				}
				cur = chapter(n, lineNo, line)
				continue
			}
		}
		if cur == nil {
			cur = chapter(0, lineNo, "")
		}

		switch {
		case isParagraph[start]:
			cur.Paragraphs = append(cur.Paragraphs, line)
		case start == verseMarker:
			if len(fields) < 2 {
				return nil, lineError(lineNo, line, fmt.Sprintf("verse marker without a number in \\c %d", cur.Number))
			}
			vn, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, lineError(lineNo, line, fmt.Sprintf("verse number %q in \\c %d is not an integer", fields[1], cur.Number))
			}
			if len(cur.Paragraphs) == 0 {
				return nil, lineError(lineNo, line, fmt.Sprintf("verse %d in \\c %d comes before any paragraph marker", vn, cur.Number))
			}
			cur.Verses[vn] = len(cur.Paragraphs) - 1
			appendBody(line)
		default:
			appendBody(line)
		}
	}
	return doc, nil
}

func lineError(line int, context, message string) error {
	return sgerrors.NewLineParse("SFM", line, context, message)
}

// splitLines splits on "\n", drops one trailing newline and any "\r".
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Render serializes a document back to lines. Chapters come out in Order;
// an unmodified parse renders to its input.
func Render(doc *Document) []string {
	lines := make([]string, 0, doc.LineCount)
	for _, n := range doc.Order {
		lines = append(lines, renderChapter(doc.Chapters[n])...)
	}
	return lines
}

func renderChapter(c *Chapter) []string {
	var lines []string
	if c.MarkerLine != "" {
		lines = append(lines, c.MarkerLine)
	}
	lines = append(lines, c.Lead...)
	for _, p := range c.Paragraphs {
		lines = append(lines, strings.Split(p, "\n")...)
	}
	return lines
}

// isVerseLine reports whether a line starts with a verse marker.
func isVerseLine(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && fields[0] == verseMarker
}
