package odt

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	sgerrors "github.com/FocuswithJustin/SangoParatext/core/errors"
	sgxml "github.com/FocuswithJustin/SangoParatext/core/xml"
)

const (
	nsStyle = "urn:oasis:names:tc:opendocument:xmlns:style:1.0"
	nsFO    = "urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"
)

var (
	contentRoot     = sgxml.MustCompile("/office:document-content")
	automaticStyles = sgxml.MustCompile("/office:document-content/office:automatic-styles")
	officeBody      = sgxml.MustCompile("/office:document-content/office:body")
	styleElems      = sgxml.MustCompile("//style:style")
	textProperties  = sgxml.MustCompile("style:text-properties")
	spans           = sgxml.MustCompile(".//text:span[not(ancestor::office:annotation)]")
)

// ParseLangCode splits "en_US" or "en-US" into language and country.
func ParseLangCode(code string) (lang, country string, err error) {
	parts := strings.FieldsFunc(code, func(r rune) bool { return r == '_' || r == '-' })
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &sgerrors.ValidationError{
			Field:   "language",
			Value:   code,
			Message: fmt.Sprintf("%q is not in the form xx_YY", code),
		}
	}
	return parts[0], parts[1], nil
}

// LanguageStyles returns the names of the styles, in content.xml and
// styles.xml, whose text properties carry the given fo:language and
// fo:country.
func (d *Document) LanguageStyles(lang, country string) map[string]bool {
	names := make(map[string]bool)
	for _, root := range []*xmlquery.Node{d.content, d.styles} {
		for _, st := range sgxml.Select(root, styleElems) {
			for _, tp := range sgxml.Select(st, textProperties) {
				if sgxml.Attr(tp, "fo:language") == lang && sgxml.Attr(tp, "fo:country") == country {
					if name := sgxml.Attr(st, "style:name"); name != "" {
						names[name] = true
					}
				}
			}
		}
	}
	return names
}

// SetParagraphStyle points the paragraph at the named style.
func (d *Document) SetParagraphStyle(p *Paragraph, name string) {
	sgxml.SetAttr(p.elem, attrStyleName, name)
	p.Style = name
}

// AddLanguageStyles adds one automatic paragraph style per language code,
// named after the code: "en_US" gets fo:language="en" fo:country="US".
// Styles that already exist are left alone.
func (d *Document) AddLanguageStyles(codes []string) error {
	root := sgxml.SelectFirst(d.content, contentRoot)
	if root == nil {
		return sgerrors.NewParse("ODT", d.Path, "content.xml has no office:document-content root")
	}
	if _, ok := sgxml.LookupAttr(root, "xmlns:style"); !ok {
		sgxml.SetAttr(root, "xmlns:style", nsStyle)
	}
	if _, ok := sgxml.LookupAttr(root, "xmlns:fo"); !ok {
		sgxml.SetAttr(root, "xmlns:fo", nsFO)
	}

	auto := sgxml.SelectFirst(d.content, automaticStyles)
	if auto == nil {
		auto = sgxml.NewElement("office:automatic-styles")
		if body := sgxml.SelectFirst(d.content, officeBody); body != nil {
			sgxml.InsertBefore(body, auto)
		} else {
			sgxml.AppendChild(root, auto)
		}
	}

	existing := make(map[string]bool)
	for _, st := range sgxml.Select(auto, styleElems) {
		existing[sgxml.Attr(st, "style:name")] = true
	}
	for _, code := range codes {
		lang, country, err := ParseLangCode(code)
		if err != nil {
			return err
		}
		if existing[code] {
			continue
		}
		st := sgxml.NewElement("style:style", "style:name", code, "style:family", "paragraph")
		sgxml.AppendChild(st, sgxml.NewElement("style:text-properties", "fo:language", lang, "fo:country", country))
		sgxml.AppendChild(auto, st)
		existing[code] = true
	}
	return nil
}

// TextInLanguage returns the text of every paragraph written in the given
// language: paragraphs whose style carries it, and, for other paragraphs,
// the spans whose style carries it.
func (d *Document) TextInLanguage(lang, country string) []string {
	styles := d.LanguageStyles(lang, country)
	var out []string
	for _, p := range d.Paragraphs() {
		if styles[p.Style] {
			if text := strings.TrimSpace(p.Text()); text != "" {
				out = append(out, text)
			}
			continue
		}
		var parts []string
		for _, sp := range sgxml.Select(p.elem, spans) {
			if !styles[sgxml.Attr(sp, attrStyleName)] {
				continue
			}
			if text := strings.TrimSpace((&Paragraph{node: FromXML(sp)}).Text()); text != "" {
				parts = append(parts, text)
			}
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, " "))
		}
	}
	return out
}
