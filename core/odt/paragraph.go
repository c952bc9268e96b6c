package odt

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	sgxml "github.com/FocuswithJustin/SangoParatext/core/xml"
)

const (
	elemAnnotation    = "office:annotation"
	elemAnnotationEnd = "office:annotation-end"
	attrStyleName     = "text:style-name"
)

var bodyParagraphs = sgxml.MustCompile("//office:body//text:p[not(ancestor::office:annotation)]")

// Paragraph is a body paragraph. Annotation bodies are not paragraphs of
// the document even though they contain text:p elements.
type Paragraph struct {
	// Index is the paragraph's position among body paragraphs.
	Index int
	// Style is the text:style-name of the paragraph.
	Style string
	node  *Node
	elem  *xmlquery.Node
}

// Node returns the paragraph's read-only tree.
func (p *Paragraph) Node() *Node { return p.node }

// Paragraphs returns the body paragraphs in document order.
func (d *Document) Paragraphs() []*Paragraph {
	elems := sgxml.Select(d.content, bodyParagraphs)
	out := make([]*Paragraph, len(elems))
	for i, e := range elems {
		out[i] = &Paragraph{
			Index: i,
			Style: sgxml.Attr(e, attrStyleName),
			node:  FromXML(e),
			elem:  e,
		}
	}
	return out
}

// Text returns the paragraph's text without annotation bodies. Spacing
// elements become the characters they stand for.
func (p *Paragraph) Text() string {
	var b strings.Builder
	Walk(p.node, func(n *Node, _ int) bool {
		return appendText(&b, n)
	})
	return b.String()
}

// Words splits Text on whitespace.
func (p *Paragraph) Words() []string {
	return strings.Fields(p.Text())
}

// appendText writes n's own text to b and reports whether its children
// still need visiting.
func appendText(b *strings.Builder, n *Node) bool {
	if n.IsText() {
		b.WriteString(n.Text)
		return false
	}
	switch n.Name {
	case elemAnnotation, elemAnnotationEnd:
		return false
	case "text:s":
		count := 1
		if c, err := strconv.Atoi(n.Attr("text:c")); err == nil && c > 0 {
			count = c
		}
		b.WriteString(strings.Repeat(" ", count))
		return false
	case "text:tab":
		b.WriteString("\t")
		return false
	case "text:line-break":
		b.WriteString("\n")
		return false
	}
	return true
}

// HasAnnotation reports whether the paragraph holds a comment.
func (p *Paragraph) HasAnnotation() bool {
	found := false
	Walk(p.node, func(n *Node, _ int) bool {
		if n.Name == elemAnnotation {
			found = true
		}
		return !found
	})
	return found
}

// InlineKind tells inline events apart.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineAnnotationStart
	InlineAnnotationEnd
)

// Inline is one event in a paragraph's flattened content: a text run, the
// anchor of a comment, or the end of a comment's selection.
type Inline struct {
	Kind InlineKind
	// Text is set for InlineText.
	Text string
	// Annotation is set for InlineAnnotationStart.
	Annotation *Annotation
	// Name identifies the comment for InlineAnnotationEnd and, when the
	// comment has a selection, for InlineAnnotationStart.
	Name string
}

// Inlines flattens the paragraph into text runs and comment events, in
// document order. Adjacent text is merged into one run.
func (p *Paragraph) Inlines() []Inline {
	var out []Inline
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			out = append(out, Inline{Kind: InlineText, Text: text.String()})
			text.Reset()
		}
	}
	Walk(p.node, func(n *Node, _ int) bool {
		switch n.Name {
		case elemAnnotation:
			flush()
			a := annotationFrom(n)
			out = append(out, Inline{Kind: InlineAnnotationStart, Annotation: a, Name: a.Name})
			return false
		case elemAnnotationEnd:
			flush()
			out = append(out, Inline{Kind: InlineAnnotationEnd, Name: n.Attr("office:name")})
			return false
		}
		return appendText(&text, n)
	})
	flush()
	return out
}

// Annotation is an ODT comment.
type Annotation struct {
	// Name links the comment to its office:annotation-end, if any.
	Name     string
	Creator  string
	Date     string
	Initials string
	// Contents joins the comment's paragraphs with newlines.
	Contents string
}

func annotationFrom(n *Node) *Annotation {
	a := &Annotation{Name: n.Attr("office:name")}
	var paras []string
	for _, c := range n.Children {
		switch c.Name {
		case "dc:creator":
			a.Creator = childText(c)
		case "dc:date":
			a.Date = childText(c)
		case "meta:creator-initials":
			a.Initials = childText(c)
		default:
			Walk(c, func(d *Node, _ int) bool {
				if d.Name == "text:p" {
					paras = append(paras, childText(d))
					return false
				}
				return true
			})
		}
	}
	a.Contents = strings.Join(paras, "\n")
	return a
}

func childText(n *Node) string {
	var b strings.Builder
	Walk(n, func(d *Node, _ int) bool {
		return appendText(&b, d)
	})
	return b.String()
}

// FoundAnnotation is an annotation and its depth inside its paragraph;
// depth 1 is a direct child of the text:p.
type FoundAnnotation struct {
	Paragraph  int
	Depth      int
	Annotation *Annotation
}

// Annotations lists every comment anchored in a body paragraph.
func (d *Document) Annotations() []FoundAnnotation {
	var out []FoundAnnotation
	for _, p := range d.Paragraphs() {
		Walk(p.node, func(n *Node, depth int) bool {
			if n.Name == elemAnnotation {
				out = append(out, FoundAnnotation{Paragraph: p.Index, Depth: depth, Annotation: annotationFrom(n)})
				return false
			}
			return true
		})
	}
	return out
}
