package odt

import (
	"github.com/antchfx/xmlquery"

	sgxml "github.com/FocuswithJustin/SangoParatext/core/xml"
)

// Node is a read-only view of an XML element or text run. A parent owns
// its children; nothing in this package mutates a Node after FromXML.
type Node struct {
	// Name is the qualified element name, empty for text.
	Name  string
	Attrs map[string]string
	// Text holds the character data of a text node.
	Text     string
	Children []*Node
}

// IsText reports whether n is a text run.
func (n *Node) IsText() bool { return n.Name == "" }

// Attr returns an attribute by qualified name.
func (n *Node) Attr(qname string) string { return n.Attrs[qname] }

// FromXML copies an xmlquery subtree into a Node tree. Comments,
// declarations and processing instructions are dropped.
func FromXML(x *xmlquery.Node) *Node {
	if x == nil {
		return nil
	}
	root := convert(x)
	type frame struct {
		src *xmlquery.Node
		dst *Node
	}
	stack := []frame{{x, root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := f.src.FirstChild; c != nil; c = c.NextSibling {
			n := convert(c)
			if n == nil {
				continue
			}
			f.dst.Children = append(f.dst.Children, n)
			if c.FirstChild != nil {
				stack = append(stack, frame{c, n})
			}
		}
	}
	return root
}

func convert(x *xmlquery.Node) *Node {
	switch x.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		return &Node{Text: x.Data}
	case xmlquery.ElementNode:
		n := &Node{Name: sgxml.QName(x)}
		if len(x.Attr) > 0 {
			n.Attrs = make(map[string]string, len(x.Attr))
			for _, a := range x.Attr {
				n.Attrs[sgxml.AttrName(a)] = a.Value
			}
		}
		return n
	case xmlquery.DocumentNode:
		return &Node{Name: "#document"}
	default:
		return nil
	}
}

// WalkFunc is called for every node in pre-order with its depth below the
// starting node. Returning false skips the node's children.
type WalkFunc func(n *Node, depth int) bool

// Walk visits root and its descendants in document order using an
// explicit stack.
func Walk(root *Node, fn WalkFunc) {
	if root == nil {
		return
	}
	type item struct {
		n     *Node
		depth int
	}
	stack := []item{{root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.n, it.depth) {
			continue
		}
		for i := len(it.n.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.n.Children[i], it.depth + 1})
		}
	}
}
