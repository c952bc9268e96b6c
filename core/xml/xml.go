// Package xml wraps antchfx/xmlquery for the OpenDocument parts the tools
// read and rewrite: parsing, prefixed attribute access, XPath selection,
// element construction and serialization.
//
// Security Notes:
//   - xmlquery parses with Go's encoding/xml, which never fetches external
//     entities.
//   - Serialization escapes every text and attribute value; nothing from the
//     input is written raw except CDATA sections and comments.
package xml

import (
	"bytes"
	stdxml "encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/FocuswithJustin/SangoParatext/core/encoding"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

const xmlNamespaceURL = "http://www.w3.org/XML/1998/namespace"

// Parse parses XML data and returns the document node.
func Parse(data []byte) (*xmlquery.Node, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return root, nil
}

// MustCompile compiles an XPath expression, panicking on error. Use it for
// package-level expressions.
func MustCompile(expr string) *xpath.Expr {
	return xpath.MustCompile(expr)
}

// Compile compiles an XPath expression.
func Compile(expr string) (*xpath.Expr, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}
	return e, nil
}

// Select returns the nodes under top matching expr, in document order.
func Select(top *xmlquery.Node, expr *xpath.Expr) []*xmlquery.Node {
	if top == nil {
		return nil
	}
	return xmlquery.QuerySelectorAll(top, expr)
}

// SelectFirst returns the first node under top matching expr, or nil.
func SelectFirst(top *xmlquery.Node, expr *xpath.Expr) *xmlquery.Node {
	if top == nil {
		return nil
	}
	return xmlquery.QuerySelector(top, expr)
}

// QName returns an element's qualified name, e.g. "text:p".
func QName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

func splitQName(qname string) (prefix, local string) {
	if i := strings.IndexByte(qname, ':'); i > 0 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}

func attrPrefix(a xmlquery.Attr) string {
	if a.Name.Space == xmlNamespaceURL {
		return "xml"
	}
	return a.Name.Space
}

// AttrName returns an attribute's qualified name, e.g. "fo:language".
func AttrName(a xmlquery.Attr) string {
	if p := attrPrefix(a); p != "" {
		return p + ":" + a.Name.Local
	}
	return a.Name.Local
}

// Attr returns the value of the attribute with qualified name qname, e.g.
// "text:style-name", or "" when absent.
func Attr(n *xmlquery.Node, qname string) string {
	v, _ := LookupAttr(n, qname)
	return v
}

// LookupAttr is Attr with a presence flag.
func LookupAttr(n *xmlquery.Node, qname string) (string, bool) {
	prefix, local := splitQName(qname)
	for _, a := range n.Attr {
		if a.Name.Local == local && attrPrefix(a) == prefix {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or adds the attribute with qualified name qname.
func SetAttr(n *xmlquery.Node, qname, value string) {
	prefix, local := splitQName(qname)
	for i, a := range n.Attr {
		if a.Name.Local == local && attrPrefix(a) == prefix {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xmlquery.Attr{
		Name:  stdxml.Name{Space: prefix, Local: local},
		Value: value,
	})
}

// NewElement builds a detached element. attrs are qualified name / value
// pairs.
func NewElement(qname string, attrs ...string) *xmlquery.Node {
	prefix, local := splitQName(qname)
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Prefix: prefix, Data: local}
	for i := 0; i+1 < len(attrs); i += 2 {
		SetAttr(n, attrs[i], attrs[i+1])
	}
	return n
}

// AppendChild attaches child as the last child of parent.
func AppendChild(parent, child *xmlquery.Node) {
	xmlquery.AddChild(parent, child)
}

// InsertBefore attaches n as the previous sibling of ref.
func InsertBefore(ref, n *xmlquery.Node) {
	n.Parent = ref.Parent
	n.NextSibling = ref
	n.PrevSibling = ref.PrevSibling
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = n
	} else if ref.Parent != nil {
		ref.Parent.FirstChild = n
	}
	ref.PrevSibling = n
}

// FormatOptions controls serialization.
type FormatOptions struct {
	// Indent, when set, pretty-prints element-only content. Elements that
	// hold text are written inline so their text is never altered.
	Indent string
}

// Serialize writes n compactly, preserving every text node. Elements are
// written with their own tags; a document node writes its children.
func Serialize(n *xmlquery.Node) []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail.
	_ = writeCompact(&buf, n)
	return buf.Bytes()
}

func writeCompact(w io.Writer, n *xmlquery.Node) error {
	return n.WriteWithOptions(w,
		xmlquery.WithOutputSelf(),
		xmlquery.WithPreserveSpace(),
		xmlquery.WithEmptyTagSupport(),
	)
}

// Write serializes n to w. The output is built in memory first so a
// failing w is reported rather than lost in a buffered flush.
func Write(w io.Writer, n *xmlquery.Node, opts FormatOptions) error {
	var buf bytes.Buffer
	if opts.Indent == "" {
		_ = writeCompact(&buf, n)
	} else {
		writeIndented(&buf, n, 0, opts.Indent)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Format parses data and pretty-prints it. An empty Indent means two spaces.
func Format(data []byte, opts FormatOptions) ([]byte, error) {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writeIndented(&buf, root, 0, opts.Indent)
	return buf.Bytes(), nil
}

// writeIndented lays out element-only content one tag per line. Anything
// holding text goes through writeCompact on a single line.
func writeIndented(w *bytes.Buffer, n *xmlquery.Node, depth int, indent string) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == xmlquery.TextNode && strings.TrimSpace(child.Data) == "" {
				continue
			}
			writeIndented(w, child, depth, indent)
		}

	case xmlquery.DeclarationNode:
		w.WriteString("<?")
		w.WriteString(n.Data)
		for _, attr := range n.Attr {
			w.WriteString(" ")
			w.WriteString(attr.Name.Local)
			w.WriteString(`="`)
			w.WriteString(encoding.EscapeXMLAttr(attr.Value))
			w.WriteString(`"`)
		}
		w.WriteString("?>\n")

	case xmlquery.ElementNode:
		writeIndent(w, depth, indent)
		if !elementOnly(n) {
			_ = writeCompact(w, n)
			w.WriteString("\n")
			return
		}
		w.WriteString("<")
		w.WriteString(QName(n))
		for _, attr := range n.Attr {
			w.WriteString(" ")
			w.WriteString(AttrName(attr))
			w.WriteString(`="`)
			w.WriteString(encoding.EscapeXMLAttr(attr.Value))
			w.WriteString(`"`)
		}
		if n.FirstChild == nil {
			w.WriteString("/>\n")
			return
		}
		w.WriteString(">\n")
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == xmlquery.TextNode {
				continue
			}
			writeIndented(w, child, depth+1, indent)
		}
		writeIndent(w, depth, indent)
		w.WriteString("</")
		w.WriteString(QName(n))
		w.WriteString(">\n")

	case xmlquery.CommentNode:
		writeIndent(w, depth, indent)
		w.WriteString("<!--")
		w.WriteString(n.Data)
		w.WriteString("-->\n")

	default:
		_ = writeCompact(w, n)
	}
}

// elementOnly reports whether n's children are elements, comments or
// whitespace, so reindenting it cannot change any text.
func elementOnly(n *xmlquery.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode:
			if strings.TrimSpace(child.Data) != "" {
				return false
			}
		case xmlquery.CharDataNode:
			return false
		}
	}
	return true
}

func writeIndent(w *bytes.Buffer, depth int, indent string) {
	for i := 0; i < depth; i++ {
		w.WriteString(indent)
	}
}
