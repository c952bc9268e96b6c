package sfm

import (
	"fmt"
	"sort"
	"strings"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
)

// ChapterMismatch records a chapter whose paragraph counts differ.
type ChapterMismatch struct {
	Chapter int
	Base    int
	Target  int
	// Diff is Base - Target.
	Diff int
}

// Totals compares whole documents.
type Totals struct {
	BaseParagraphs   int
	TargetParagraphs int
	BaseLines        int
	TargetLines      int
}

// MismatchError is returned when two texts disagree in paragraph structure.
// No harmonized output accompanies it.
type MismatchError struct {
	Chapters []ChapterMismatch
	Totals   Totals
}

func (e *MismatchError) Error() string {
	nums := make([]string, len(e.Chapters))
	for i, m := range e.Chapters {
		nums[i] = fmt.Sprint(m.Chapter)
	}
	return fmt.Sprintf("paragraph counts differ in %d chapter(s): %s", len(e.Chapters), strings.Join(nums, ", "))
}

func (e *MismatchError) Unwrap() error {
	return sgerrors.ErrMismatch
}

// Compare returns the chapters whose paragraph counts differ, ascending. A
// chapter missing from one side counts as zero paragraphs there.
func Compare(base, target *Document) []ChapterMismatch {
	seen := make(map[int]bool)
	var nums []int
	for _, d := range []*Document{base, target} {
		for n := range d.Chapters {
			if !seen[n] {
				seen[n] = true
				nums = append(nums, n)
			}
		}
	}
	sort.Ints(nums)

	var out []ChapterMismatch
	for _, n := range nums {
		b, t := 0, 0
		if c := base.Chapter(n); c != nil {
			b = c.ParagraphCount()
		}
		if c := target.Chapter(n); c != nil {
			t = c.ParagraphCount()
		}
		if b != t {
			out = append(out, ChapterMismatch{Chapter: n, Base: b, Target: t, Diff: b - t})
		}
	}
	return out
}

// Check returns a *MismatchError when the documents differ in structure and
// nil when every chapter has the same number of paragraphs.
func Check(base, target *Document) *MismatchError {
	mismatches := Compare(base, target)
	if len(mismatches) == 0 {
		return nil
	}
	return &MismatchError{Chapters: mismatches, Totals: CompareTotals(base, target)}
}

// CompareTotals counts paragraphs and lines on both sides.
func CompareTotals(base, target *Document) Totals {
	return Totals{
		BaseParagraphs:   base.ParagraphCount(),
		TargetParagraphs: target.ParagraphCount(),
		BaseLines:        base.LineCount,
		TargetLines:      target.LineCount,
	}
}

// Harmonize copies verse markers from base into target and returns the
// target's lines. Any structural mismatch refuses the whole run with a
// *MismatchError. Neither document is modified.
//
// A target paragraph that already holds a verse marker is left as is.
// Otherwise, if the base paragraph at the same index holds verses, the
// lowest one is written in front of the paragraph's first text as
// "\v N text", or added on its own line when the paragraph has no text.
// Text on the paragraph marker's own line counts as its first text.
func Harmonize(base, target *Document) ([]string, error) {
	doc, err := HarmonizeDocument(base, target)
	if err != nil {
		return nil, err
	}
	return Render(doc), nil
}

// HarmonizeDocument is Harmonize without the final Render.
func HarmonizeDocument(base, target *Document) (*Document, error) {
	if err := Check(base, target); err != nil {
		return nil, err
	}

	out := &Document{
		Chapters:  make(map[int]*Chapter, len(target.Chapters)),
		Order:     append([]int(nil), target.Order...),
		LineCount: target.LineCount,
	}
	for _, n := range target.Order {
		tc := target.Chapters[n]
		bc := base.Chapter(n)
		hc := tc.clone()
		if bc != nil {
			for i, p := range tc.Paragraphs {
				verses := bc.VersesIn(i)
				if len(verses) == 0 {
					continue
				}
				hc.Paragraphs[i] = markParagraph(p, verses[0])
				if hc.Paragraphs[i] != p {
					hc.Verses[verses[0]] = i
				}
			}
		}
		out.Chapters[n] = hc
	}
	out.LineCount = len(Render(out))
	return out, nil
}

// markParagraph returns paragraph with verse vn marked, or paragraph
// unchanged when it already holds a verse marker, including one written on
// the paragraph marker's own line. Other text that shares the marker's line
// moves to the verse line, so "\p text" becomes "\p" and "\v N text".
func markParagraph(paragraph string, vn int) string {
	lines := strings.Split(paragraph, "\n")
	for _, l := range lines[1:] {
		if isVerseLine(l) {
			return paragraph
		}
	}
	head, text, ok := splitMarkerLine(lines[0])
	if ok && isVerseLine(text) {
		return paragraph
	}

	marker := fmt.Sprintf(`\v %d`, vn)
	result := make([]string, 0, len(lines)+1)
	if ok {
		result = append(result, head, marker+" "+text)
		result = append(result, lines[1:]...)
		return strings.Join(result, "\n")
	}

	result = append(result, lines[0])
	switch {
	case len(lines) == 1:
		result = append(result, marker)
	case strings.TrimSpace(lines[1]) == "":
		result = append(result, marker)
		result = append(result, lines[1:]...)
	default:
		result = append(result, marker+" "+lines[1])
		result = append(result, lines[2:]...)
	}
	return strings.Join(result, "\n")
}

// splitMarkerLine splits "\p text" into "\p" and "text". ok is false when
// nothing follows the marker.
func splitMarkerLine(line string) (head, text string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	end := strings.IndexAny(trimmed, " \t")
	if end < 0 {
		return line, "", false
	}
	text = strings.TrimLeft(trimmed[end:], " \t")
	if strings.TrimSpace(text) == "" {
		return line, "", false
	}
	return line[:len(line)-len(trimmed)+end], text, true
}

// Report formats the mismatch as a tab-separated table, one row per
// chapter followed by paragraph and line totals. Empty names default to
// "base" and "target".
func (e *MismatchError) Report(baseName, targetName string) string {
	if baseName == "" {
		baseName = "base"
	}
	if targetName == "" {
		targetName = "target"
	}
	var b strings.Builder
	for _, m := range e.Chapters {
		fmt.Fprintf(&b, "\\c %3d:\t\tdiff: %4d\t%s: %5d\t%s: %5d\n",
			m.Chapter, m.Diff, baseName, m.Base, targetName, m.Target)
	}
	t := e.Totals
	fmt.Fprintf(&b, "Total ps:\tdiff: %4d\t%s: %5d\t%s: %5d\n",
		t.BaseParagraphs-t.TargetParagraphs, baseName, t.BaseParagraphs, targetName, t.TargetParagraphs)
	fmt.Fprintf(&b, "Total lines:\tdiff: %4d\t%s: %5d\t%s: %5d\n",
		t.BaseLines-t.TargetLines, baseName, t.BaseLines, targetName, t.TargetLines)
	return b.String()
}
