package notes

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/SangoParatext/core/odt"
)

var (
	pagePattern  = regexp.MustCompile(`\s*([Pp])([0-9]{2,3})`)
	panelPattern = regexp.MustCompile(`Panel\s*([0-9]+)`)
)

// DefaultChapterRemap renumbers the pages whose draft numbering drifted
// from the book's chapter numbering.
var DefaultChapterRemap = map[int]int{317: 319, 318: 320, 748: 749}

// Options controls Extract.
type Options struct {
	// Book is the Paratext book code used in verse references.
	Book string
	// Language is stamped on every note.
	Language string
	// ChapterRemap maps page numbers to chapter numbers. Pages not in the
	// map keep their number.
	ChapterRemap map[int]int
	// NewThread generates thread ids. Defaults to NewThread.
	NewThread func() string
}

// Extraction holds every comment found in a document, grouped by reviewer.
type Extraction struct {
	// Users lists reviewers in order of their first comment.
	Users    []string
	ByUser   map[string][]Comment
	Count    int
	Language string
	verses   map[int]map[int][]string
}

// VerseText returns the words collected for a chapter and verse, joined by
// single spaces.
func (e *Extraction) VerseText(chapter, verse int) string {
	return strings.Join(e.verses[chapter][verse], " ")
}

type extractor struct {
	opts    Options
	ex      *Extraction
	chapter int
	verse   int
}

// Extract walks the document's paragraphs. A page marker such as "P12"
// starts chapter 12 at verse 1 and a "Panel 3" label moves to verse 3.
// Each comment is attached to the current verse with the words around it.
// Once every paragraph is read, each note's Verse is filled with the text
// collected for its reference.
func Extract(doc *odt.Document, opts Options) (*Extraction, error) {
	if opts.NewThread == nil {
		opts.NewThread = NewThread
	}
	x := &extractor{
		opts: opts,
		ex: &Extraction{
			ByUser:   make(map[string][]Comment),
			Language: opts.Language,
			verses:   map[int]map[int][]string{0: {1: nil}},
		},
		verse: 1,
	}
	for _, p := range doc.Paragraphs() {
		x.paragraph(p)
	}

	for _, user := range x.ex.Users {
		comments := x.ex.ByUser[user]
		for i := range comments {
			ref, err := ParseVerseRef(comments[i].VerseRef)
			if err != nil {
				return nil, err
			}
			comments[i].Verse = x.ex.VerseText(ref.Chapter, ref.Verse)
		}
	}
	return x.ex, nil
}

func (x *extractor) paragraph(p *odt.Paragraph) {
	text := p.Text()
	if text == "" {
		return
	}

	page := pagePattern.FindStringSubmatch(text)
	panel := panelPattern.FindStringSubmatch(text)
	if page != nil {
		n, _ := strconv.Atoi(page[2])
		if to, ok := x.opts.ChapterRemap[n]; ok {
			n = to
		}
		x.chapter = n
		x.verse = 1
		x.ex.verses[x.chapter] = map[int][]string{1: nil}
	}
	if panel != nil {
		x.verse, _ = strconv.Atoi(panel[1])
		if x.ex.verses[x.chapter] == nil {
			x.ex.verses[x.chapter] = make(map[int][]string)
		}
		x.ex.verses[x.chapter][x.verse] = nil
	}

	words := strings.Fields(toSFM(text))
	x.ex.verses[x.chapter][x.verse] = append(x.ex.verses[x.chapter][x.verse], words...)

	if p.HasAnnotation() {
		ref := VerseRef{Book: x.opts.Book, Chapter: x.chapter, Verse: x.verse}
		x.comments(p.Inlines(), ref)
	}
}

// toSFM rewrites a page marker as \c and a panel label as \v.
func toSFM(text string) string {
	if loc := pagePattern.FindStringSubmatchIndex(text); loc != nil {
		text = text[:loc[2]] + `\c ` + text[loc[3]:]
	}
	if loc := panelPattern.FindStringIndex(text); loc != nil {
		text = text[:loc[0]] + `\v ` + text[loc[0]+len("Panel"):]
	}
	return text
}

// comments records a note for every annotation among the inlines.
func (x *extractor) comments(inlines []odt.Inline, ref VerseRef) {
	var starts []int
	for i, in := range inlines {
		if in.Kind == odt.InlineAnnotationStart {
			starts = append(starts, i)
		}
	}

	for j, i := range starts {
		a := inlines[i].Annotation
		prev := 0
		if j > 0 {
			prev = starts[j-1] + 1
		}
		next := len(inlines)
		if j+1 < len(starts) {
			next = starts[j+1]
		}

		before := wordsIn(inlines[prev:i])
		selected, end := selection(inlines, i)
		var after []string
		if end+1 < next {
			after = wordsIn(inlines[end+1 : next])
		}

		contextBefore := strings.Join(before, " ")
		c := Comment{
			Thread:        x.opts.NewThread(),
			VerseRef:      ref.String(),
			Date:          a.Date,
			User:          a.Creator,
			Language:      x.opts.Language,
			SelectedText:  selected,
			StartPosition: utf8.RuneCountInString(contextBefore),
			ContextBefore: contextBefore,
			ContextAfter:  strings.Join(after, " "),
			ConflictType:  ConflictType,
			Contents:      a.Contents,
		}
		if _, seen := x.ex.ByUser[c.User]; !seen {
			x.ex.Users = append(x.ex.Users, c.User)
		}
		x.ex.ByUser[c.User] = append(x.ex.ByUser[c.User], c)
		x.ex.Count++
	}
}

// selection returns the text between the annotation at start and its
// annotation-end, and the index of that end. A comment without a matching
// end has no selection and ends where it starts.
func selection(inlines []odt.Inline, start int) (string, int) {
	name := inlines[start].Name
	if name == "" {
		return "", start
	}
	var b strings.Builder
	for k := start + 1; k < len(inlines); k++ {
		switch inlines[k].Kind {
		case odt.InlineText:
			b.WriteString(inlines[k].Text)
		case odt.InlineAnnotationEnd:
			if inlines[k].Name == name {
				return b.String(), k
			}
		}
	}
	return "", start
}

func wordsIn(inlines []odt.Inline) []string {
	var words []string
	for _, in := range inlines {
		if in.Kind == odt.InlineText {
			words = append(words, strings.Fields(in.Text)...)
		}
	}
	return words
}
