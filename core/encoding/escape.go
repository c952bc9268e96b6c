// Package encoding provides shared text escaping utilities.
package encoding

import (
	"strings"
)

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\t", "&#9;",
		"\n", "&#10;",
		"\r", "&#13;",
	)
)

// EscapeXMLText escapes the basic XML entities for text content.
func EscapeXMLText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeXMLAttr escapes text for use in a double-quoted XML attribute.
// Whitespace control characters become character references so they
// survive attribute value normalization.
func EscapeXMLAttr(s string) string {
	return attrEscaper.Replace(s)
}
